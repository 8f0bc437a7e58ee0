package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/zprune/internal/app"
)

func newDaemonCmd(d deps, opts *pruneOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon [flags] [dataset...]",
		Short: "Prune on a cron schedule",
		Long: `Run prune passes on a cron schedule until interrupted.

Datasets come from the arguments or from daemon.datasets in the config file.
Changes to the config file apply from the next pass on; flags keep their
values for the lifetime of the daemon.`,
		Example: `  zprune daemon --schedule "@hourly" tank/home
  zprune daemon --schedule "15 */4 * * *" --run-on-start -c /etc/zprune/zprune.yaml`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemonCmd(cmd, d, *opts, args)
		},
	}

	cmd.Flags().String("schedule", "@hourly", "Cron expression or descriptor such as @hourly or @daily (UTC)")
	cmd.Flags().Bool("run-on-start", false, "Run one pass immediately at startup")

	return cmd
}

func runDaemonCmd(cmd *cobra.Command, d deps, opts pruneOptions, datasets []string) error {
	rt, err := loadInvocation(cmd, d, opts)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt.log.Info().
		Str("schedule", rt.cfg.Daemon.Schedule).
		Bool("dry_run", rt.cfg.Prune.DryRun).
		Msg("starting zprune daemon")

	return app.NewDaemon(rt.v, rt.cfg, datasets, d.newService, rt.log).Run(ctx)
}
