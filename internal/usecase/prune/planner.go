package prune

import (
	"context"

	"github.com/bnema/zerowrap"

	"github.com/bnema/zprune/internal/boundaries/out"
	"github.com/bnema/zprune/internal/domain"
)

// Planner turns classified snapshots into keep and purge decisions.
type Planner struct {
	destroyer out.SnapshotDestroyer
}

// NewPlanner creates a planner that destroys through destroyer.
func NewPlanner(destroyer out.SnapshotDestroyer) *Planner {
	return &Planner{destroyer: destroyer}
}

// Execute walks snapshots oldest first and purges those without keep reasons.
//
// snapshots must be sorted newest first and classified. Kept snapshots are
// never destroyed. In dry-run mode no destroy is issued but would-purge
// decisions count toward MaxPurge, so the preview stops where a live run would.
// This departs from counting only actual deletes: a live run with ignorable
// destroy failures may purge further down the list than its dry run showed.
// Once MaxPurge is reached the remaining snapshots are left alone and reported
// as deferred. A destroy failure with a non-ignorable exit code stops the pass
// and returns a *domain.DestroyError.
//
// With opts.Verbose every keep and purge decision is logged at info level
// before the first destroy, and each destroy is announced before it runs.
func (p *Planner) Execute(ctx context.Context, dataset string, snapshots []domain.Snapshot, opts domain.PurgeOptions) (domain.DatasetReport, error) {
	log := zerowrap.FromCtx(ctx)

	if opts.Verbose {
		logPlan(log, dataset, snapshots)
	}

	report := domain.DatasetReport{
		Dataset:   dataset,
		Decisions: make([]domain.Decision, 0, len(snapshots)),
	}
	removed := 0

	for i := len(snapshots) - 1; i >= 0; i-- {
		snap := snapshots[i]
		decision := domain.Decision{
			Snapshot:  snap.Name,
			Timestamp: snap.Timestamp,
			Reasons:   snap.Reasons,
		}

		if snap.Kept() {
			decision.Action = domain.ActionKeep
			report.Kept++
			report.Decisions = append(report.Decisions, decision)
			log.Debug().Str("snapshot", snap.Name).Str("reasons", snap.Reasons.String()).Msg("keep")
			continue
		}

		if opts.MaxPurge > 0 && removed >= opts.MaxPurge {
			report.CapReached = true
			decision.Action = domain.ActionDefer
			report.Deferred++
			report.Decisions = append(report.Decisions, decision)
			continue
		}

		if opts.DryRun {
			decision.Action = domain.ActionWouldPurge
			report.WouldPurge++
			removed++
			report.Decisions = append(report.Decisions, decision)
			log.Info().Str("snapshot", snap.Name).Msg("would purge")
			continue
		}

		if err := ctx.Err(); err != nil {
			return report, err
		}

		destroyLog := log.Debug()
		if opts.Verbose {
			destroyLog = log.Info()
		}
		destroyLog.Str("snapshot", snap.FullName).Msg("purging")

		// An in-flight destroy is never interrupted; cancellation is honored
		// between snapshots.
		result, err := p.destroyer.Destroy(context.WithoutCancel(ctx), snap.FullName)
		if err != nil {
			decision.Action = domain.ActionFailed
			decision.Detail = err.Error()
			report.Decisions = append(report.Decisions, decision)
			log.Error().Err(err).Str("snapshot", snap.FullName).Msg("destroy could not run")
			return report, &domain.DestroyError{Snapshot: snap.FullName, Err: err}
		}

		if !result.Succeeded() {
			decision.ExitCode = result.ExitCode
			decision.Detail = result.Stderr
			if opts.Ignorable(result.ExitCode) {
				decision.Action = domain.ActionSkip
				report.Skipped++
				report.Decisions = append(report.Decisions, decision)
				log.Warn().Str("snapshot", snap.FullName).Int("exit_code", result.ExitCode).Msg("destroy failed with ignorable exit code, skipped")
				continue
			}

			decision.Action = domain.ActionFailed
			report.Decisions = append(report.Decisions, decision)
			log.Error().Str("snapshot", snap.FullName).Int("exit_code", result.ExitCode).Str("stderr", result.Stderr).Msg("destroy failed")
			return report, &domain.DestroyError{
				Snapshot: snap.FullName,
				ExitCode: result.ExitCode,
				Stderr:   result.Stderr,
			}
		}

		decision.Action = domain.ActionPurge
		report.Purged++
		removed++
		report.Decisions = append(report.Decisions, decision)
		log.Info().Str("snapshot", snap.FullName).Msg("purged")
	}

	if report.CapReached {
		log.Warn().Int("max_purge", opts.MaxPurge).Int("deferred", report.Deferred).Msg("max purge reached, remaining candidates deferred")
	}

	return report, nil
}

// logPlan logs the decision of every snapshot of dataset, oldest first.
func logPlan(log zerowrap.Logger, dataset string, snapshots []domain.Snapshot) {
	for i := len(snapshots) - 1; i >= 0; i-- {
		snap := snapshots[i]
		if snap.Kept() {
			log.Info().Str("dataset", dataset).Str("snapshot", snap.Name).Str("reasons", snap.Reasons.String()).Msg("plan: keep")
			continue
		}
		log.Info().Str("dataset", dataset).Str("snapshot", snap.Name).Msg("plan: purge")
	}
}
