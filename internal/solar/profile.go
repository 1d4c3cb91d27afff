package solar

import (
	"errors"
	"fmt"
)

// Ramp factors for the dawn/dusk hours at either end of the solar window.
const (
	EdgeFactor  = 0.25
	RampFactor  = 0.75
	PeakFactor  = 1.0
	minPeakHour = 4
)

// StandardPeakHours are the daily profiles evaluated on every run, in run order.
var StandardPeakHours = []int{10, 8, 6}

// ErrInvalidPeakHours is returned by NewProfile for windows outside 4-24 hours.
var ErrInvalidPeakHours = errors.New("peak solar hours out of range")

// Profile describes a day with a contiguous solar window starting at hour 0.
type Profile struct {
	// PeakHours is the length of the solar window.
	PeakHours int
	// HourlyFactor holds the panel output scale for each hour [0-23].
	// Hours outside the window are 0.
	HourlyFactor [24]float64
	solar        [24]bool
}

// NewProfile builds the hourly scale table for a window of peakHours hours.
// The first and last window hours run at EdgeFactor, the second and
// second-to-last at RampFactor, everything in between at PeakFactor.
func NewProfile(peakHours int) (Profile, error) {
	if peakHours < minPeakHour || peakHours > 24 {
		return Profile{}, fmt.Errorf("%w: %d (want %d-24)", ErrInvalidPeakHours, peakHours, minPeakHour)
	}

	p := Profile{PeakHours: peakHours}
	last := peakHours - 1
	for h := 0; h < peakHours; h++ {
		p.solar[h] = true
		switch h {
		case 0, last:
			p.HourlyFactor[h] = EdgeFactor
		case 1, last - 1:
			p.HourlyFactor[h] = RampFactor
		default:
			p.HourlyFactor[h] = PeakFactor
		}
	}
	return p, nil
}

// StandardProfiles returns the 10, 8 and 6 hour profiles.
func StandardProfiles() []Profile {
	profiles := make([]Profile, 0, len(StandardPeakHours))
	for _, h := range StandardPeakHours {
		p, err := NewProfile(h)
		if err != nil {
			panic(err) // StandardPeakHours are all in range
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// ScaleAt returns the panel scale factor for an elapsed hour and whether that
// hour falls inside the solar window. The hour is reduced modulo 24.
func (p *Profile) ScaleAt(hour int) (float64, bool) {
	h := hour % 24
	if h < 0 {
		h += 24
	}
	return p.HourlyFactor[h], p.solar[h]
}

// SolarHours returns the equivalent number of full-sun hours per day.
func (p *Profile) SolarHours() float64 {
	var sum float64
	for _, f := range p.HourlyFactor {
		sum += f
	}
	return sum
}
