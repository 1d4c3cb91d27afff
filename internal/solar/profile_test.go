package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_TenHour(t *testing.T) {
	p, err := NewProfile(10)
	require.NoError(t, err)
	assert.Equal(t, 10, p.PeakHours)

	want := [24]float64{0.25, 0.75, 1, 1, 1, 1, 1, 1, 0.75, 0.25}
	assert.Equal(t, want, p.HourlyFactor)
}

func TestNewProfile_EightHour(t *testing.T) {
	p, err := NewProfile(8)
	require.NoError(t, err)

	want := [24]float64{0.25, 0.75, 1, 1, 1, 1, 0.75, 0.25}
	assert.Equal(t, want, p.HourlyFactor)
}

func TestNewProfile_SixHour(t *testing.T) {
	p, err := NewProfile(6)
	require.NoError(t, err)

	// Two hour ramp on each side leaves a two hour flat peak
	want := [24]float64{0.25, 0.75, 1, 1, 0.75, 0.25}
	assert.Equal(t, want, p.HourlyFactor)
	assert.InDelta(t, 4.0, p.SolarHours(), 1e-9)
}

func TestNewProfile_OutOfRange(t *testing.T) {
	for _, h := range []int{-1, 0, 3, 25} {
		_, err := NewProfile(h)
		assert.ErrorIs(t, err, ErrInvalidPeakHours, "peak hours %d", h)
	}
}

func TestScaleAt(t *testing.T) {
	p, err := NewProfile(8)
	require.NoError(t, err)

	tests := []struct {
		hour  int
		scale float64
		solar bool
	}{
		{0, 0.25, true},
		{1, 0.75, true},
		{4, 1.0, true},
		{6, 0.75, true},
		{7, 0.25, true},
		{8, 0, false},
		{23, 0, false},
		{24, 0.25, true}, // next day
		{31, 0.25, true},
		{32, 0, false},
		{-1, 0, false}, // wraps to 23
	}
	for _, tt := range tests {
		scale, solar := p.ScaleAt(tt.hour)
		assert.Equal(t, tt.scale, scale, "hour %d", tt.hour)
		assert.Equal(t, tt.solar, solar, "hour %d", tt.hour)
	}
}

func TestStandardProfiles(t *testing.T) {
	profiles := StandardProfiles()
	require.Len(t, profiles, 3)
	assert.Equal(t, 10, profiles[0].PeakHours)
	assert.Equal(t, 8, profiles[1].PeakHours)
	assert.Equal(t, 6, profiles[2].PeakHours)

	for _, p := range profiles {
		solarCount := 0
		for h := 0; h < 24; h++ {
			if _, ok := p.ScaleAt(h); ok {
				solarCount++
			}
		}
		assert.Equal(t, p.PeakHours, solarCount)
	}
}
