package domain

import (
	"fmt"
	"slices"
	"time"
)

// PurgeOptions controls how a purge pass acts on unkept snapshots.
type PurgeOptions struct {
	DryRun bool
	// MaxPurge caps purges per dataset. Zero means unlimited.
	MaxPurge int
	// IgnoreExitCodes lists destroy exit codes that are skipped instead of failing the run.
	IgnoreExitCodes []int
	// Verbose logs the whole plan of a dataset at info level before its first destroy.
	Verbose bool
}

// Ignorable reports whether a failed destroy with this exit code may be skipped.
func (o PurgeOptions) Ignorable(exitCode int) bool {
	return exitCode != 0 && slices.Contains(o.IgnoreExitCodes, exitCode)
}

// Validate rejects option values that cannot be honored.
func (o PurgeOptions) Validate() error {
	if o.MaxPurge < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxPurge, o.MaxPurge)
	}
	return nil
}

// PruneRequest is the input of one prune run across datasets.
type PruneRequest struct {
	Datasets []string
	Policy   RetentionPolicy
	Options  PurgeOptions
	// Prefix restricts the run to snapshots whose name starts with it.
	Prefix string
	// Parallel is the number of datasets processed at once. Values below 1 mean 1.
	Parallel int
}

// Validate checks the request before anything is listed or destroyed.
func (r PruneRequest) Validate() error {
	if len(r.Datasets) == 0 {
		return ErrNoDatasets
	}
	for _, ds := range r.Datasets {
		if ds == "" {
			return fmt.Errorf("%w: empty dataset name", ErrInvalidDataset)
		}
	}
	if err := r.Policy.Validate(); err != nil {
		return err
	}
	return r.Options.Validate()
}

// Action is what the planner did with one snapshot.
type Action string

const (
	ActionKeep       Action = "keep"
	ActionPurge      Action = "purge"
	ActionWouldPurge Action = "would-purge"
	ActionSkip       Action = "skipped"
	ActionDefer      Action = "deferred"
	ActionFailed     Action = "failed"
)

// Decision records the planner outcome for one snapshot.
type Decision struct {
	Snapshot  string      `json:"snapshot" yaml:"snapshot"`
	Timestamp time.Time   `json:"timestamp" yaml:"timestamp"`
	Action    Action      `json:"action" yaml:"action"`
	Reasons   KeepReasons `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	ExitCode  int         `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`
	Detail    string      `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// DatasetReport summarizes one dataset pass.
type DatasetReport struct {
	Dataset    string     `json:"dataset" yaml:"dataset"`
	Listed     int        `json:"listed" yaml:"listed"`
	Filtered   int        `json:"filtered" yaml:"filtered"`
	Unparsed   int        `json:"unparsed" yaml:"unparsed"`
	Kept       int        `json:"kept" yaml:"kept"`
	Purged     int        `json:"purged" yaml:"purged"`
	WouldPurge int        `json:"would_purge" yaml:"would_purge"`
	Skipped    int        `json:"skipped" yaml:"skipped"`
	Deferred   int        `json:"deferred" yaml:"deferred"`
	CapReached bool       `json:"cap_reached" yaml:"cap_reached"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
	Decisions  []Decision `json:"decisions,omitempty" yaml:"decisions,omitempty"`
}

// Failed reports whether the dataset pass ended in an error.
func (r DatasetReport) Failed() bool {
	return r.Error != ""
}

// RunReport summarizes a prune run across datasets.
type RunReport struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	DryRun    bool            `json:"dry_run" yaml:"dry_run"`
	StartedAt time.Time       `json:"started_at" yaml:"started_at"`
	Duration  time.Duration   `json:"duration" yaml:"duration"`
	Policy    RetentionPolicy `json:"policy" yaml:"policy"`
	Datasets  []DatasetReport `json:"datasets" yaml:"datasets"`
}

// TotalPurged sums purged snapshots across datasets.
func (r RunReport) TotalPurged() int {
	total := 0
	for _, ds := range r.Datasets {
		total += ds.Purged
	}
	return total
}

// Succeeded reports whether every dataset completed without error.
func (r RunReport) Succeeded() bool {
	for _, ds := range r.Datasets {
		if ds.Failed() {
			return false
		}
	}
	return true
}
