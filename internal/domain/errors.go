package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent retention-level failures shared across layers.
var (
	// Usage errors
	ErrNoDatasets       = errors.New("at least one dataset is required")
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrInvalidKeepCount = errors.New("keep count must not be negative")
	ErrInvalidMaxPurge  = errors.New("max purge must not be negative")

	// Snapshot errors
	ErrUnparseableName = errors.New("no timestamp found in snapshot name")
	ErrListingFailed   = errors.New("snapshot listing failed")
	ErrDestroyFailed   = errors.New("snapshot destroy failed")
)

// ListingError reports a snapshot source failure for a dataset.
type ListingError struct {
	Dataset  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ListingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "list snapshots of %s", e.Dataset)
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, ": exit code %d", e.ExitCode)
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		fmt.Fprintf(&b, ": %s", msg)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ListingError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrListingFailed}
	}
	return []error{ErrListingFailed, e.Err}
}

// DestroyError reports a destroy that failed with a non-ignorable result.
type DestroyError struct {
	Snapshot string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *DestroyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "destroy %s", e.Snapshot)
	if e.ExitCode != 0 {
		fmt.Fprintf(&b, ": exit code %d", e.ExitCode)
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		fmt.Fprintf(&b, ": %s", msg)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DestroyError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDestroyFailed}
	}
	return []error{ErrDestroyFailed, e.Err}
}
