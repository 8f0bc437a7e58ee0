package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/zprune/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zprune.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "{}\n")

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRetentionPolicy(), cfg.Policy())
	assert.Equal(t, 0, cfg.Prune.MaxPurge)
	assert.False(t, cfg.Prune.DryRun)
	assert.Equal(t, 1, cfg.Prune.Parallel)
	assert.Equal(t, "zfs", cfg.ZFS.Binary)
	assert.Zero(t, cfg.ZFS.CommandTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, OutputText, cfg.Output.Format)
	assert.Equal(t, "@hourly", cfg.Daemon.Schedule)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
retention:
  hours: 24
  days: 14
  years: 0
prune:
  max_purge: 10
  dry_run: true
  prefix: auto-
  ignore_exit_codes: [1]
  parallel: 4
zfs:
  binary: /sbin/zfs
  command_timeout: 30s
output:
  format: JSON
daemon:
  schedule: "0 * * * *"
  datasets: [tank/home, tank/vm]
`)

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, domain.RetentionPolicy{Hours: 24, Days: 14, Weeks: 6, Months: 6, Years: 0}, cfg.Policy())
	assert.Equal(t, 10, cfg.Prune.MaxPurge)
	assert.True(t, cfg.Prune.DryRun)
	assert.Equal(t, "auto-", cfg.Prune.Prefix)
	assert.Equal(t, []int{1}, cfg.Prune.IgnoreExitCodes)
	assert.Equal(t, 4, cfg.Prune.Parallel)
	assert.Equal(t, "/sbin/zfs", cfg.ZFS.Binary)
	assert.Equal(t, 30*time.Second, cfg.ZFS.CommandTimeout)
	assert.Equal(t, OutputJSON, cfg.Output.Format)
	assert.Equal(t, "0 * * * *", cfg.Daemon.Schedule)
	assert.Equal(t, []string{"tank/home", "tank/vm"}, cfg.Daemon.Datasets)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "retention:\n  days: 14\n")
	t.Setenv("ZPRUNE_RETENTION_DAYS", "21")
	t.Setenv("ZPRUNE_PRUNE_DRY_RUN", "true")

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 21, cfg.Retention.Days)
	assert.True(t, cfg.Prune.DryRun)
}

func TestLoadConfigFlagOverridesEnv(t *testing.T) {
	path := writeConfigFile(t, "retention:\n  days: 14\n")
	t.Setenv("ZPRUNE_RETENTION_DAYS", "21")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("days", 0, "")
	require.NoError(t, flags.Parse([]string{"--days", "3"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag("retention.days", flags.Lookup("days")))

	cfg, err := LoadConfig(v, path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Retention.Days)
}

func TestLoadConfigUnsetFlagKeepsFileValue(t *testing.T) {
	path := writeConfigFile(t, "retention:\n  days: 14\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("days", 7, "")
	require.NoError(t, flags.Parse(nil))

	v := viper.New()
	require.NoError(t, v.BindPFlag("retention.days", flags.Lookup("days")))

	cfg, err := LoadConfig(v, path)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Retention.Days)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     string
	}{
		{name: "negative keep count", content: "retention:\n  days: -1\n", err: "day=-1"},
		{name: "negative max purge", content: "prune:\n  max_purge: -2\n", err: "prune.max_purge"},
		{name: "negative parallel", content: "prune:\n  parallel: -1\n", err: "prune.parallel"},
		{name: "unknown output", content: "output:\n  format: xml\n", err: "output.format"},
		{name: "unknown log format", content: "logging:\n  format: pretty\n", err: "logging.format"},
		{name: "negative timeout", content: "zfs:\n  command_timeout: -1s\n", err: "zfs.command_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(viper.New(), writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestConfigPruneRequest(t *testing.T) {
	var cfg Config
	cfg.Retention.Hours = 1
	cfg.Retention.Days = 2
	cfg.Retention.Weeks = 3
	cfg.Retention.Months = 4
	cfg.Retention.Years = 5
	cfg.Prune.MaxPurge = 6
	cfg.Prune.DryRun = true
	cfg.Prune.Prefix = "auto-"
	cfg.Prune.IgnoreExitCodes = []int{1}
	cfg.Prune.Parallel = 2

	datasets := []string{"tank/a", "tank/b"}
	req := cfg.PruneRequest(datasets)
	datasets[0] = "changed"

	assert.Equal(t, domain.PruneRequest{
		Datasets: []string{"tank/a", "tank/b"},
		Policy:   domain.RetentionPolicy{Hours: 1, Days: 2, Weeks: 3, Months: 4, Years: 5},
		Options: domain.PurgeOptions{
			DryRun:          true,
			MaxPurge:        6,
			IgnoreExitCodes: []int{1},
		},
		Prefix:   "auto-",
		Parallel: 2,
	}, req)
	require.NoError(t, req.Validate())
}

func TestResolveLogFilePath(t *testing.T) {
	var cfg Config
	assert.Equal(t, filepath.Join(DefaultStateDir(), "zprune.log"), resolveLogFilePath(cfg))

	cfg.Logging.File.Path = "/tmp/custom.log"
	assert.Equal(t, "/tmp/custom.log", resolveLogFilePath(cfg))
}
