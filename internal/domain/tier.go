package domain

import "time"

// Tier is a retention granularity.
type Tier int

const (
	TierHour Tier = iota
	TierDay
	TierWeek
	TierMonth
	TierYear
)

var tierOrder = []Tier{TierHour, TierDay, TierWeek, TierMonth, TierYear}

// Tiers returns all tiers in classification order.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// Reason returns the keep reason recorded for this tier.
func (t Tier) Reason() KeepReason {
	switch t {
	case TierHour:
		return ReasonHour
	case TierDay:
		return ReasonDay
	case TierWeek:
		return ReasonWeek
	case TierMonth:
		return ReasonMonth
	case TierYear:
		return ReasonYear
	default:
		return ""
	}
}

func (t Tier) String() string {
	return string(t.Reason())
}

// BucketKey returns the calendar field that identifies the tier's bucket.
//
// Keys are single fields, not compound ones: the day key is the day of month,
// so the 15th of March and the 15th of April share a bucket.
func (t Tier) BucketKey(ts time.Time) int {
	switch t {
	case TierHour:
		return ts.Hour()
	case TierDay:
		return ts.Day()
	case TierWeek:
		_, week := ts.ISOWeek()
		return week
	case TierMonth:
		return int(ts.Month())
	case TierYear:
		return ts.Year()
	default:
		return -1
	}
}
