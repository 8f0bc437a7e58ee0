package out

import (
	"context"

	"github.com/bnema/zprune/internal/domain"
)

// RunRecorder publishes the outcome of a prune run.
type RunRecorder interface {
	RecordRun(ctx context.Context, report *domain.RunReport) error
}
