// Package retention implements the tiered keep/purge classification of snapshots.
package retention

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/zprune/internal/domain"
)

// timestampPattern matches YYYY[sep]MM[sep]DD with an optional time of day.
// The minute/second separator is captured so it can be checked against the
// hour/minute one, since RE2 has no backreferences.
var timestampPattern = regexp.MustCompile(
	`(\d{4})[-:_]?(\d{2})[-:_]?(\d{2})` +
		`(?:[ Tt_](\d{2})` +
		`(?:([:-]?)(\d{2})` +
		`(?:([:-]?)(\d{2})` +
		`(?:[.,](\d+))?)?)?)?`,
)

const (
	groupYear = iota + 1
	groupMonth
	groupDay
	groupHour
	groupSep1
	groupMinute
	groupSep2
	groupSecond
	groupFraction
)

// ParseSnapshotTime extracts the timestamp embedded in a snapshot name.
//
// The first date-like sequence in the name is used. Hour and minute default
// to zero. Seconds are only honored when they reuse the hour/minute separator.
// Names without a valid calendar date return domain.ErrUnparseableName. An
// out of range time of day fails the whole name rather than falling back to
// the date, so "snap_2024-03-15_30days" is never purged.
func ParseSnapshotTime(name string) (time.Time, error) {
	m := timestampPattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrUnparseableName, name)
	}

	year := atoi(m[groupYear])
	month := atoi(m[groupMonth])
	day := atoi(m[groupDay])
	hour := atoi(m[groupHour])
	minute := atoi(m[groupMinute])

	second, nsec := 0, 0
	if m[groupSecond] != "" && m[groupSep1] == m[groupSep2] {
		second = atoi(m[groupSecond])
		nsec = fractionToNanos(m[groupFraction])
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, nsec, time.UTC)
	if ts.Year() != year || int(ts.Month()) != month || ts.Day() != day ||
		ts.Hour() != hour || ts.Minute() != minute || ts.Second() != second {
		return time.Time{}, fmt.Errorf("%w: %q has out of range date %q", domain.ErrUnparseableName, name, m[0])
	}

	return ts, nil
}

// atoi converts a digits-only capture; empty captures are zero.
func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

func fractionToNanos(frac string) int {
	if frac == "" {
		return 0
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	return atoi(frac + strings.Repeat("0", 9-len(frac)))
}
