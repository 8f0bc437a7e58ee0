package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/zerowrap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bnema/zprune/internal/app"
	"github.com/bnema/zprune/internal/boundaries/in"
	"github.com/bnema/zprune/internal/domain"
)

type pruneOptions struct {
	configPath string
	verbose    bool
	debug      bool
}

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	"hours":            "retention.hours",
	"days":             "retention.days",
	"weeks":            "retention.weeks",
	"months":           "retention.months",
	"years":            "retention.years",
	"max-purge":        "prune.max_purge",
	"dry-run":          "prune.dry_run",
	"prefix":           "prune.prefix",
	"parallel":         "prune.parallel",
	"ignore-exit-code": "prune.ignore_exit_codes",
	"zfs-bin":          "zfs.binary",
	"command-timeout":  "zfs.command_timeout",
	"metrics-file":     "metrics.textfile",
	"output":           "output.format",
	"schedule":         "daemon.schedule",
	"run-on-start":     "daemon.run_on_start",
}

func addConfigFlags(cmd *cobra.Command, opts *pruneOptions) {
	policy := domain.DefaultRetentionPolicy()
	flags := cmd.PersistentFlags()

	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print every keep and purge decision with its reasons")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	flags.Int("hours", policy.Hours, "Number of hourly snapshots to keep")
	flags.Int("days", policy.Days, "Number of daily snapshots to keep")
	flags.Int("weeks", policy.Weeks, "Number of weekly snapshots to keep")
	flags.Int("months", policy.Months, "Number of monthly snapshots to keep")
	flags.Int("years", policy.Years, "Number of yearly snapshots to keep")
	flags.Int("max-purge", 0, "Maximum snapshots destroyed per dataset and run (0 = unlimited)")
	flags.BoolP("dry-run", "n", false, "Show what would be destroyed without destroying anything")
	flags.String("prefix", "", "Only consider snapshots whose name starts with this prefix")
	flags.Int("parallel", 1, "Number of datasets processed at once")
	flags.IntSlice("ignore-exit-code", nil, "zfs destroy exit code treated as a skip instead of a failure (repeatable)")
	flags.String("zfs-bin", "zfs", "Path to the zfs binary")
	flags.Duration("command-timeout", 0, "Timeout of each zfs command (0 = none)")
	flags.String("metrics-file", "", "Write node_exporter textfile metrics to this path after each run")
	flags.StringP("output", "o", app.OutputText, "Report format: text, json or yaml")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// invocation holds the configuration and logger of one command run.
type invocation struct {
	v       *viper.Viper
	cfg     app.Config
	log     zerowrap.Logger
	cleanup func()
}

func loadInvocation(cmd *cobra.Command, d deps, opts pruneOptions) (*invocation, error) {
	v := viper.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := app.LoadConfig(v, opts.configPath)
	if err != nil {
		return nil, err
	}

	log, cleanup, err := d.newLogger(cfg, opts.debug)
	if err != nil {
		return nil, err
	}

	return &invocation{v: v, cfg: cfg, log: log, cleanup: cleanup}, nil
}

func (r *invocation) close() {
	if r.cleanup != nil {
		r.cleanup()
	}
}

func runPruneCmd(cmd *cobra.Command, d deps, opts pruneOptions, datasets []string) error {
	rt, err := loadInvocation(cmd, d, opts)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = zerowrap.WithCtx(ctx, rt.log)

	svc, err := d.newService(rt.cfg)
	if err != nil {
		return err
	}

	view := reportView{
		format:    rt.cfg.Output.Format,
		decisions: opts.verbose || rt.cfg.Prune.DryRun,
	}
	req := rt.cfg.PruneRequest(datasets)
	req.Options.Verbose = opts.verbose
	return runPrune(ctx, svc, req, view, cmd.OutOrStdout())
}

// runPrune executes one run and writes its report, including partial reports
// of failed runs.
func runPrune(ctx context.Context, svc in.PruneService, req domain.PruneRequest, view reportView, out io.Writer) error {
	report, err := svc.Prune(ctx, req)
	if report == nil {
		if err == nil {
			err = errors.New("prune returned no report")
		}
		return err
	}

	if werr := writeReport(out, report, view); werr != nil {
		return errors.Join(err, fmt.Errorf("failed to write report: %w", werr))
	}
	return err
}
