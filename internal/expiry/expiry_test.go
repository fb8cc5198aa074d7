package expiry_test

import (
	"testing"
	"time"

	"LinkGate-Backend/internal/expiry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func TestComputeExpiry(t *testing.T) {
	tests := []struct {
		name  string
		unit  expiry.Unit
		value int
		want  time.Time
	}{
		{"3 days", expiry.Days, 3, now.Add(72 * time.Hour)},
		{"2 weeks", expiry.Weeks, 2, now.Add(14 * 24 * time.Hour)},
		{"1 month is 4 weeks", expiry.Months, 1, now.Add(28 * 24 * time.Hour)},
		{"1 year is 52 weeks", expiry.Years, 1, now.Add(364 * 24 * time.Hour)},
		{"100 years is the maximum", expiry.Years, 100, now.Add(100 * expiry.Year)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expiry.ComputeExpiry(now, tt.unit, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.After(now))
		})
	}
}

func TestComputeExpiry_Rejects(t *testing.T) {
	_, err := expiry.ComputeExpiry(now, expiry.Days, 0)
	assert.ErrorIs(t, err, expiry.ErrInvalidDuration)

	_, err = expiry.ComputeExpiry(now, expiry.Weeks, -1)
	assert.ErrorIs(t, err, expiry.ErrInvalidDuration)

	_, err = expiry.ComputeExpiry(now, expiry.Years, 101)
	assert.ErrorIs(t, err, expiry.ErrInvalidDuration)

	_, err = expiry.ComputeExpiry(now, expiry.Days, int(^uint(0)>>1))
	assert.ErrorIs(t, err, expiry.ErrInvalidDuration)

	_, err = expiry.ComputeExpiry(now, expiry.Unit("hours"), 5)
	assert.ErrorIs(t, err, expiry.ErrInvalidUnit)
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want expiry.Unit
	}{
		{"days", expiry.Days},
		{"Day", expiry.Days},
		{" weeks ", expiry.Weeks},
		{"MONTHS", expiry.Months},
		{"year", expiry.Years},
	}
	for _, tt := range tests {
		got, err := expiry.ParseUnit(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "hours", "fortnight", "d"} {
		_, err := expiry.ParseUnit(bad)
		assert.ErrorIs(t, err, expiry.ErrInvalidUnit, bad)
	}
}

func TestIsExpired_Boundary(t *testing.T) {
	assert.True(t, expiry.IsExpired(now, now), "now == expiresAt is expired")
	assert.True(t, expiry.IsExpired(now, now.Add(time.Millisecond)))
	assert.False(t, expiry.IsExpired(now, now.Add(-time.Millisecond)))
}
