package domain

import "fmt"

// Default keep counts per tier.
const (
	DefaultKeepHours  = 5
	DefaultKeepDays   = 7
	DefaultKeepWeeks  = 6
	DefaultKeepMonths = 6
	DefaultKeepYears  = 3
)

// RetentionPolicy defines how many snapshots to keep per tier.
type RetentionPolicy struct {
	Hours  int `json:"hours" yaml:"hours"`
	Days   int `json:"days" yaml:"days"`
	Weeks  int `json:"weeks" yaml:"weeks"`
	Months int `json:"months" yaml:"months"`
	Years  int `json:"years" yaml:"years"`
}

// DefaultRetentionPolicy returns the built-in keep counts.
func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		Hours:  DefaultKeepHours,
		Days:   DefaultKeepDays,
		Weeks:  DefaultKeepWeeks,
		Months: DefaultKeepMonths,
		Years:  DefaultKeepYears,
	}
}

// KeepCount returns the keep count configured for a tier.
func (p RetentionPolicy) KeepCount(t Tier) int {
	switch t {
	case TierHour:
		return p.Hours
	case TierDay:
		return p.Days
	case TierWeek:
		return p.Weeks
	case TierMonth:
		return p.Months
	case TierYear:
		return p.Years
	default:
		return 0
	}
}

// Validate rejects negative keep counts.
func (p RetentionPolicy) Validate() error {
	for _, tier := range Tiers() {
		if n := p.KeepCount(tier); n < 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidKeepCount, tier, n)
		}
	}
	return nil
}
