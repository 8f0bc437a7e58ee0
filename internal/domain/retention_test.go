package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetentionPolicy(t *testing.T) {
	p := DefaultRetentionPolicy()
	assert.Equal(t, RetentionPolicy{Hours: 5, Days: 7, Weeks: 6, Months: 6, Years: 3}, p)
	require.NoError(t, p.Validate())
}

func TestRetentionPolicy_KeepCount(t *testing.T) {
	p := RetentionPolicy{Hours: 1, Days: 2, Weeks: 3, Months: 4, Years: 5}
	assert.Equal(t, 1, p.KeepCount(TierHour))
	assert.Equal(t, 2, p.KeepCount(TierDay))
	assert.Equal(t, 3, p.KeepCount(TierWeek))
	assert.Equal(t, 4, p.KeepCount(TierMonth))
	assert.Equal(t, 5, p.KeepCount(TierYear))
}

func TestRetentionPolicy_ValidateRejectsNegative(t *testing.T) {
	p := DefaultRetentionPolicy()
	p.Weeks = -1

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidKeepCount))
	assert.Contains(t, err.Error(), "week=-1")
}

func TestRetentionPolicy_ZeroCountsAreValid(t *testing.T) {
	assert.NoError(t, RetentionPolicy{}.Validate())
}
