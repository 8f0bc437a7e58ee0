package domain

import (
	"strings"
	"time"
)

// SnapshotSeparator splits a dataset path from the snapshot's own name.
const SnapshotSeparator = "@"

// KeepReason records why a snapshot is retained.
type KeepReason string

const (
	ReasonLatest KeepReason = "latest"
	ReasonHour   KeepReason = "hour"
	ReasonDay    KeepReason = "day"
	ReasonWeek   KeepReason = "week"
	ReasonMonth  KeepReason = "month"
	ReasonYear   KeepReason = "year"
)

// KeepReasons is an insertion-ordered set of keep reasons.
// An empty set means the snapshot is eligible for purge.
type KeepReasons []KeepReason

// Add inserts r unless it is already present.
func (k *KeepReasons) Add(r KeepReason) {
	if k.Has(r) {
		return
	}
	*k = append(*k, r)
}

// Has reports whether r is in the set.
func (k KeepReasons) Has(r KeepReason) bool {
	for _, existing := range k {
		if existing == r {
			return true
		}
	}
	return false
}

// String joins the reasons with commas.
func (k KeepReasons) String() string {
	parts := make([]string, len(k))
	for i, r := range k {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

// SnapshotRef is a snapshot as reported by a snapshot source.
type SnapshotRef struct {
	FullName string
	Name     string
}

// NewSnapshotRef builds a ref from a full "dataset@name" identifier.
func NewSnapshotRef(fullName string) SnapshotRef {
	name := fullName
	if idx := strings.LastIndex(fullName, SnapshotSeparator); idx >= 0 {
		name = fullName[idx+len(SnapshotSeparator):]
	}
	return SnapshotRef{FullName: fullName, Name: name}
}

// Snapshot is a parsed snapshot taking part in retention.
type Snapshot struct {
	FullName  string
	Name      string
	Timestamp time.Time
	Reasons   KeepReasons
}

// Kept reports whether any rule retains the snapshot.
func (s Snapshot) Kept() bool {
	return len(s.Reasons) > 0
}
