package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	now := GetCurrentTimeMillis()

	tests := []struct {
		name         string
		expiryMillis int64
		expected     bool
	}{
		{
			name:         "past expiry is expired",
			expiryMillis: now - 1000,
			expected:     true,
		},
		{
			name:         "future expiry is not expired",
			expiryMillis: now + 60000,
			expected:     false,
		},
		{
			name:         "zero means no expiry",
			expiryMillis: 0,
			expected:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsExpired(tt.expiryMillis))
		})
	}
}

func TestDaysFromNow(t *testing.T) {
	before := GetCurrentTimeMillis()
	got := DaysFromNow(3)
	after := GetCurrentTimeMillis()

	threeDays := int64(3 * 24 * 60 * 60 * 1000)
	assert.GreaterOrEqual(t, got, before+threeDays)
	assert.LessOrEqual(t, got, after+threeDays)
}

func TestMillisRoundTrip(t *testing.T) {
	ts := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	assert.True(t, MillisToTime(TimeToMillis(ts)).Equal(ts))
}
