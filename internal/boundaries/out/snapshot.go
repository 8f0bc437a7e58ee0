// Package out defines output ports (interfaces) implemented by driven adapters.
package out

import (
	"context"

	"github.com/bnema/zprune/internal/domain"
)

// SnapshotSource enumerates the snapshots of a dataset.
type SnapshotSource interface {
	// ListSnapshots returns the dataset's snapshots in source order.
	// A failed listing must return an error, never an empty slice.
	ListSnapshots(ctx context.Context, dataset string) ([]domain.SnapshotRef, error)
}

// SnapshotDestroyer removes a single snapshot.
type SnapshotDestroyer interface {
	// Destroy runs the destroy command for fullName. A non-zero exit code is
	// reported in the result; the error is reserved for commands that could not run.
	Destroy(ctx context.Context, fullName string) (domain.DestroyResult, error)
}
