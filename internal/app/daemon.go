package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/zerowrap"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/bnema/zprune/internal/domain"
	"github.com/bnema/zprune/internal/usecase/schedule"
)

// Daemon runs prune passes on a cron schedule. Changes to the config file
// apply from the next pass on.
type Daemon struct {
	v          *viper.Viper
	newService ServiceFactory
	scheduler  *schedule.Scheduler
	datasets   []string
	log        zerowrap.Logger

	mu  sync.RWMutex
	cfg Config
}

// NewDaemon creates a daemon. datasets given on the command line replace
// daemon.datasets from the config.
func NewDaemon(v *viper.Viper, cfg Config, datasets []string, newService ServiceFactory, log zerowrap.Logger) *Daemon {
	return &Daemon{
		v:          v,
		newService: newService,
		scheduler:  schedule.NewScheduler(log),
		datasets:   slices.Clone(datasets),
		log:        log,
		cfg:        cfg,
	}
}

// Run schedules the prune pass and blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	cfg := d.config()
	if len(d.targets(cfg)) == 0 {
		return domain.ErrNoDatasets
	}
	if err := d.scheduler.Schedule(cfg.Daemon.Schedule, d.runPass); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	d.watchConfig()

	if cfg.Daemon.RunOnStart {
		if err := d.scheduler.RunNow(ctx); err != nil {
			d.log.Error().Err(err).Msg("initial prune failed")
		}
	}

	return d.scheduler.Run(ctx)
}

// Reload decodes the current viper state. On error the previous config is
// kept.
func (d *Daemon) Reload() error {
	cfg, err := decodeConfig(d.v)
	if err != nil {
		return err
	}

	previous := d.config()
	if cfg.Daemon.Schedule != previous.Daemon.Schedule {
		if err := d.scheduler.Schedule(cfg.Daemon.Schedule, d.runPass); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		d.log.Info().Str("schedule", cfg.Daemon.Schedule).Msg("schedule updated")
	}

	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()

	d.log.Info().Strs("datasets", d.targets(cfg)).Msg("configuration reloaded")
	return nil
}

func (d *Daemon) config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

func (d *Daemon) targets(cfg Config) []string {
	if len(d.datasets) > 0 {
		return d.datasets
	}
	return cfg.Daemon.Datasets
}

func (d *Daemon) runPass(ctx context.Context) error {
	cfg := d.config()
	datasets := d.targets(cfg)
	if len(datasets) == 0 {
		return domain.ErrNoDatasets
	}

	svc, err := d.newService(cfg)
	if err != nil {
		return err
	}

	report, err := svc.Prune(ctx, cfg.PruneRequest(datasets))
	if report != nil {
		zerowrap.FromCtx(ctx).Info().
			Str("run_id", report.RunID).
			Int("purged", report.TotalPurged()).
			Bool("success", report.Succeeded()).
			Msg("scheduled prune complete")
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (d *Daemon) watchConfig() {
	if d.v.ConfigFileUsed() == "" {
		d.log.Info().Msg("no config file in use, reload disabled")
		return
	}

	d.v.OnConfigChange(func(e fsnotify.Event) {
		d.log.Info().Str("file", e.Name).Msg("config file changed")
		if err := d.Reload(); err != nil {
			d.log.Error().Err(err).Msg("failed to reload config, keeping previous")
		}
	})
	d.v.WatchConfig()
	d.log.Info().Str(zerowrap.FieldPath, d.v.ConfigFileUsed()).Msg("watching for configuration changes")
}
