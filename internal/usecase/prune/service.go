// Package prune implements the prune use case: list, classify and purge
// the snapshots of one or more datasets.
package prune

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/zprune/internal/boundaries/out"
	"github.com/bnema/zprune/internal/domain"
	"github.com/bnema/zprune/internal/usecase/retention"
)

const abortedMessage = "not processed: run aborted"

// Service orchestrates prune runs.
type Service struct {
	source   out.SnapshotSource
	planner  *Planner
	recorder out.RunRecorder
	nowFn    func() time.Time
	newRunID func() string
}

// NewService creates a prune service. recorder may be nil.
func NewService(source out.SnapshotSource, destroyer out.SnapshotDestroyer, recorder out.RunRecorder) *Service {
	return &Service{
		source:   source,
		planner:  NewPlanner(destroyer),
		recorder: recorder,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		newRunID: uuid.NewString,
	}
}

// Prune runs one retention pass over every dataset of the request.
//
// A listing failure aborts only its dataset; the others still run and the
// failure is part of the returned error. A destroy failure aborts the run.
// The report is returned together with any error.
func (s *Service) Prune(ctx context.Context, req domain.PruneRequest) (*domain.RunReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := s.newRunID()
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Prune",
		"run_id":              runID,
		"dry_run":             req.Options.DryRun,
	})
	log := zerowrap.FromCtx(ctx)

	started := s.nowFn()
	report := &domain.RunReport{
		RunID:     runID,
		DryRun:    req.Options.DryRun,
		StartedAt: started,
		Policy:    req.Policy,
	}

	log.Info().
		Int(zerowrap.FieldCount, len(req.Datasets)).
		Int("max_purge", req.Options.MaxPurge).
		Msg("prune run started")

	results := make([]*domain.DatasetReport, len(req.Datasets))
	errs := make([]error, len(req.Datasets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(req.Parallel, 1))
	for i, dataset := range req.Datasets {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			ds, err := s.pruneDataset(gctx, dataset, req)
			results[i] = &ds
			errs[i] = err
			if err != nil && !errors.Is(err, domain.ErrListingFailed) {
				return err
			}
			return nil
		})
	}
	abortErr := g.Wait()

	notProcessed := false
	for i, dataset := range req.Datasets {
		if results[i] == nil {
			results[i] = &domain.DatasetReport{Dataset: dataset, Error: abortedMessage}
			notProcessed = true
		}
		report.Datasets = append(report.Datasets, *results[i])
	}
	report.Duration = s.nowFn().Sub(started)

	runErr := errors.Join(errs...)
	if runErr == nil {
		switch {
		case abortErr != nil:
			runErr = abortErr
		case notProcessed:
			runErr = ctx.Err()
		}
	}

	s.record(ctx, report)

	if runErr != nil {
		log.Error().Err(runErr).Int("purged", report.TotalPurged()).Msg("prune run finished with errors")
		return report, runErr
	}

	log.Info().Int("purged", report.TotalPurged()).Dur("duration", report.Duration).Msg("prune run finished")
	return report, nil
}

func (s *Service) pruneDataset(ctx context.Context, dataset string, req domain.PruneRequest) (domain.DatasetReport, error) {
	ctx = zerowrap.CtxWithField(ctx, "dataset", dataset)
	log := zerowrap.FromCtx(ctx)

	refs, err := s.source.ListSnapshots(ctx, dataset)
	if err != nil {
		if !errors.Is(err, domain.ErrListingFailed) {
			err = &domain.ListingError{Dataset: dataset, Err: err}
		}
		log.Error().Err(err).Msg("snapshot listing failed, dataset skipped")
		return domain.DatasetReport{Dataset: dataset, Error: err.Error()}, err
	}

	snapshots, filtered, unparsed := collect(ctx, refs, req.Prefix)
	retention.SortNewestFirst(snapshots)
	retention.Classify(snapshots, req.Policy)

	report, err := s.planner.Execute(ctx, dataset, snapshots, req.Options)
	report.Listed = len(refs)
	report.Filtered = filtered
	report.Unparsed = unparsed
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	log.Info().
		Int("listed", report.Listed).
		Int("kept", report.Kept).
		Int("purged", report.Purged).
		Int("would_purge", report.WouldPurge).
		Int("deferred", report.Deferred).
		Msg("dataset processed")

	return report, nil
}

// collect parses the refs that match prefix. Refs without a timestamp are
// left out and only logged.
func collect(ctx context.Context, refs []domain.SnapshotRef, prefix string) ([]domain.Snapshot, int, int) {
	log := zerowrap.FromCtx(ctx)

	snapshots := make([]domain.Snapshot, 0, len(refs))
	filtered, unparsed := 0, 0
	for _, ref := range refs {
		if prefix != "" && !strings.HasPrefix(ref.Name, prefix) {
			filtered++
			continue
		}

		ts, err := retention.ParseSnapshotTime(ref.Name)
		if err != nil {
			unparsed++
			log.Debug().Err(err).Str("snapshot", ref.FullName).Msg("ignoring snapshot without timestamp")
			continue
		}

		snapshots = append(snapshots, domain.Snapshot{
			FullName:  ref.FullName,
			Name:      ref.Name,
			Timestamp: ts,
		})
	}

	return snapshots, filtered, unparsed
}

func (s *Service) record(ctx context.Context, report *domain.RunReport) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordRun(ctx, report); err != nil {
		zerowrap.FromCtx(ctx).Warn().Err(err).Msg("failed to record run metrics")
	}
}
