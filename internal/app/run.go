package app

import (
	"fmt"

	"github.com/bnema/zprune/internal/adapters/out/telemetry"
	"github.com/bnema/zprune/internal/adapters/out/zfs"
	"github.com/bnema/zprune/internal/boundaries/in"
	"github.com/bnema/zprune/internal/boundaries/out"
	"github.com/bnema/zprune/internal/usecase/prune"
)

// ServiceFactory builds a prune service for a configuration.
type ServiceFactory func(cfg Config) (in.PruneService, error)

// NewPruneService wires the zfs adapters and the optional metrics recorder
// into a prune service.
func NewPruneService(cfg Config) (*prune.Service, error) {
	runner := zfs.NewExecRunner(cfg.ZFS.CommandTimeout)
	client := zfs.NewClient(runner, cfg.ZFS.Binary)

	var recorder out.RunRecorder
	if cfg.Metrics.Textfile != "" {
		textfile, err := telemetry.NewTextfileRecorder(cfg.Metrics.Textfile)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
		}
		recorder = textfile
	}

	return prune.NewService(client, client, recorder), nil
}

// DefaultServiceFactory is the ServiceFactory used outside tests.
func DefaultServiceFactory(cfg Config) (in.PruneService, error) {
	svc, err := NewPruneService(cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
