package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/zprune/internal/domain"
)

// ErrInvalidConfig is returned when a configuration value cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Report output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// EnvPrefix is the prefix of environment overrides, e.g. ZPRUNE_RETENTION_DAYS.
const EnvPrefix = "ZPRUNE"

// Config holds the zprune configuration.
type Config struct {
	Retention struct {
		Hours  int `mapstructure:"hours"`
		Days   int `mapstructure:"days"`
		Weeks  int `mapstructure:"weeks"`
		Months int `mapstructure:"months"`
		Years  int `mapstructure:"years"`
	} `mapstructure:"retention"`

	Prune struct {
		MaxPurge        int    `mapstructure:"max_purge"`
		DryRun          bool   `mapstructure:"dry_run"`
		Prefix          string `mapstructure:"prefix"`
		IgnoreExitCodes []int  `mapstructure:"ignore_exit_codes"`
		Parallel        int    `mapstructure:"parallel"`
	} `mapstructure:"prune"`

	ZFS struct {
		Binary         string        `mapstructure:"binary"`
		CommandTimeout time.Duration `mapstructure:"command_timeout"`
	} `mapstructure:"zfs"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`

	Output struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"output"`

	Metrics struct {
		Textfile string `mapstructure:"textfile"`
	} `mapstructure:"metrics"`

	Daemon struct {
		Schedule   string   `mapstructure:"schedule"`
		Datasets   []string `mapstructure:"datasets"`
		RunOnStart bool     `mapstructure:"run_on_start"`
	} `mapstructure:"daemon"`
}

// LoadConfig reads configuration into v and decodes it. Flags bound to v
// before the call take precedence over environment, file and defaults.
func LoadConfig(v *viper.Viper, configPath string) (Config, error) {
	if err := loadConfig(v, configPath); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.ZFS.Binary == "" {
		cfg.ZFS.Binary = "zfs"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfig(v *viper.Viper, configPath string) error {
	policy := domain.DefaultRetentionPolicy()
	v.SetDefault("retention.hours", policy.Hours)
	v.SetDefault("retention.days", policy.Days)
	v.SetDefault("retention.weeks", policy.Weeks)
	v.SetDefault("retention.months", policy.Months)
	v.SetDefault("retention.years", policy.Years)
	v.SetDefault("prune.max_purge", 0)
	v.SetDefault("prune.dry_run", false)
	v.SetDefault("prune.prefix", "")
	v.SetDefault("prune.ignore_exit_codes", []int{})
	v.SetDefault("prune.parallel", 1)
	v.SetDefault("zfs.binary", "zfs")
	v.SetDefault("zfs.command_timeout", "0s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("output.format", OutputText)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("daemon.schedule", "@hourly")
	v.SetDefault("daemon.datasets", []string{})
	v.SetDefault("daemon.run_on_start", false)

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// Validate rejects values that would make a run misbehave.
func (c Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Prune.MaxPurge < 0 {
		return fmt.Errorf("%w: prune.max_purge must be >= 0, got %d", ErrInvalidConfig, c.Prune.MaxPurge)
	}
	if c.Prune.Parallel < 0 {
		return fmt.Errorf("%w: prune.parallel must be >= 0, got %d", ErrInvalidConfig, c.Prune.Parallel)
	}
	if c.ZFS.CommandTimeout < 0 {
		return fmt.Errorf("%w: zfs.command_timeout must not be negative", ErrInvalidConfig)
	}
	if !slices.Contains([]string{OutputText, OutputJSON, OutputYAML}, c.Output.Format) {
		return fmt.Errorf("%w: output.format must be one of text, json, yaml, got %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Policy returns the retention policy described by the config.
func (c Config) Policy() domain.RetentionPolicy {
	return domain.RetentionPolicy{
		Hours:  c.Retention.Hours,
		Days:   c.Retention.Days,
		Weeks:  c.Retention.Weeks,
		Months: c.Retention.Months,
		Years:  c.Retention.Years,
	}
}

// PruneRequest builds the request for one run over datasets.
func (c Config) PruneRequest(datasets []string) domain.PruneRequest {
	return domain.PruneRequest{
		Datasets: slices.Clone(datasets),
		Policy:   c.Policy(),
		Options: domain.PurgeOptions{
			DryRun:          c.Prune.DryRun,
			MaxPurge:        c.Prune.MaxPurge,
			IgnoreExitCodes: slices.Clone(c.Prune.IgnoreExitCodes),
		},
		Prefix:   c.Prune.Prefix,
		Parallel: c.Prune.Parallel,
	}
}
