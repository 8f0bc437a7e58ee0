// Package in defines input ports (interfaces) for use cases.
// These interfaces define the contract between driving adapters (CLI, daemon)
// and the business logic (use cases).
package in

import (
	"context"

	"github.com/bnema/zprune/internal/domain"
)

// PruneService applies a retention policy to datasets.
type PruneService interface {
	// Prune runs one pass over every dataset in the request. Once the request
	// is valid the report is returned even when the error is non-nil.
	Prune(ctx context.Context, req domain.PruneRequest) (*domain.RunReport, error)
}
