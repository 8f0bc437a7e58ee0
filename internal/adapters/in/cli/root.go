// Package cli implements the zprune command line.
// Commands parse flags, load configuration through the app layer and
// delegate to the prune use case.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/bnema/zerowrap"
	"github.com/spf13/cobra"

	"github.com/bnema/zprune/internal/app"
	"github.com/bnema/zprune/internal/domain"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// UsageError marks an invalid invocation. It maps to ExitUsage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// BuildInfo is the version information injected at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// deps are the collaborators a command needs. Tests replace them.
type deps struct {
	newService app.ServiceFactory
	newLogger  func(cfg app.Config, debug bool) (zerowrap.Logger, func(), error)
}

func defaultDeps() deps {
	return deps{
		newService: app.DefaultServiceFactory,
		newLogger:  app.NewLogger,
	}
}

// NewRootCmd creates the root command for the zprune CLI.
func NewRootCmd(info BuildInfo) *cobra.Command {
	return newRootCmd(defaultDeps(), info)
}

func newRootCmd(d deps, info BuildInfo) *cobra.Command {
	var opts pruneOptions

	cmd := &cobra.Command{
		Use:   "zprune [flags] dataset...",
		Short: "Prune ZFS snapshots with a tiered retention policy",
		Long: `zprune keeps the newest snapshot of each dataset plus the newest snapshot of
each of the last N hours, days, weeks, months and years, and destroys the rest.

Snapshot times are read from the snapshot names (for example
tank/home@2024-03-13_04:00). Snapshots whose names carry no date are never
touched. Use --dry-run to see every decision before anything is destroyed.`,
		Example: `  zprune --dry-run tank/home
  zprune --days 14 --weeks 8 --max-purge 20 tank/home tank/vm
  zprune -o json --prefix auto- pool/data`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return &UsageError{Err: domain.ErrNoDatasets}
			}
			return runPruneCmd(cmd, d, opts, args)
		},
	}

	addConfigFlags(cmd, &opts)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		_ = c.Usage()
		return &UsageError{Err: err}
	})

	cmd.AddCommand(newDaemonCmd(d, &opts))
	cmd.AddCommand(newVersionCmd(info))

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute(info BuildInfo) int {
	cmd := NewRootCmd(info)
	err := cmd.Execute()
	if err != nil {
		_ = cliWriteLine(os.Stderr, cliRenderError(err.Error()))
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if isUsageError(err) {
		return ExitUsage
	}
	return ExitError
}

func isUsageError(err error) bool {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return true
	}
	for _, target := range []error{
		app.ErrInvalidConfig,
		domain.ErrNoDatasets,
		domain.ErrInvalidDataset,
		domain.ErrInvalidKeepCount,
		domain.ErrInvalidMaxPurge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeVersion(cmd.OutOrStdout(), info)
		},
	}
}

func writeVersion(out io.Writer, info BuildInfo) error {
	version := info.Version
	if version == "" {
		version = "dev"
	}
	if err := cliWritef(out, "zprune %s\n", version); err != nil {
		return err
	}
	if info.Commit != "" {
		if err := cliWriteLine(out, cliRenderMeta("Commit:", info.Commit)); err != nil {
			return err
		}
	}
	if info.Date != "" {
		if err := cliWriteLine(out, cliRenderMeta("Built:", info.Date)); err != nil {
			return err
		}
	}
	return nil
}
