package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTiers_FixedOrder(t *testing.T) {
	assert.Equal(t, []Tier{TierHour, TierDay, TierWeek, TierMonth, TierYear}, Tiers())
}

func TestTier_BucketKey(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		tier Tier
		want int
	}{
		{tier: TierHour, want: 9},
		{tier: TierDay, want: 15},
		{tier: TierWeek, want: 11},
		{tier: TierMonth, want: 3},
		{tier: TierYear, want: 2024},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tier.BucketKey(ts))
		})
	}
}

func TestTier_BucketKeyUsesSingleField(t *testing.T) {
	march := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	nextYear := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, TierDay.BucketKey(march), TierDay.BucketKey(april))
	assert.Equal(t, TierMonth.BucketKey(march), TierMonth.BucketKey(nextYear))
}

func TestTier_BucketKeyISOWeekIgnoresYear(t *testing.T) {
	// 2024-12-30 belongs to ISO week 1 of 2025.
	ts := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, TierWeek.BucketKey(ts))
}

func TestTier_Reason(t *testing.T) {
	for _, tier := range Tiers() {
		assert.NotEmpty(t, tier.Reason())
	}
	assert.Equal(t, ReasonWeek, TierWeek.Reason())
}
