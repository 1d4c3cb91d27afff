package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidHorizon    = errors.New("horizon must be at least 1 hour")
	ErrInvalidEfficiency = errors.New("panel efficiency must be within [0, 1]")
	ErrInvalidParams     = errors.New("invalid simulation parameters")
)

// Params holds the scalar inputs of one simulation run.
type Params struct {
	SolarCurrentA  float64 // optimum panel output current
	SystemCurrentA float64 // constant load draw
	CapacityAh     float64
	// SystemVoltageV is only shown on charts and in the banner.
	SystemVoltageV float64
	HorizonHours   int
	Efficiencies   []float64
}

// DefaultEfficiencies returns 0.0 through 1.0 in steps of 0.1.
func DefaultEfficiencies() []float64 {
	effs := make([]float64, 0, 11)
	for i := 0; i <= 10; i++ {
		effs = append(effs, float64(i)/10)
	}
	return effs
}

// UniqueEfficiencies drops exact duplicates, keeping first-seen order.
func UniqueEfficiencies(effs []float64) []float64 {
	out := make([]float64, 0, len(effs))
	seen := make(map[float64]bool, len(effs))
	for _, e := range effs {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Validate checks the parameters before any simulation runs.
func (p Params) Validate() error {
	scalars := []struct {
		name string
		v    float64
	}{
		{"solar current", p.SolarCurrentA},
		{"system current", p.SystemCurrentA},
		{"battery capacity", p.CapacityAh},
		{"system voltage", p.SystemVoltageV},
	}
	for _, s := range scalars {
		if math.IsNaN(s.v) || math.IsInf(s.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, s.name)
		}
	}
	if p.CapacityAh <= 0 {
		return fmt.Errorf("%w: battery capacity must be positive, got %v", ErrInvalidParams, p.CapacityAh)
	}
	if p.SolarCurrentA < 0 {
		return fmt.Errorf("%w: solar current must not be negative, got %v", ErrInvalidParams, p.SolarCurrentA)
	}
	if p.SystemCurrentA < 0 {
		return fmt.Errorf("%w: system current must not be negative, got %v", ErrInvalidParams, p.SystemCurrentA)
	}
	if p.HorizonHours < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidHorizon, p.HorizonHours)
	}
	if len(p.Efficiencies) == 0 {
		return fmt.Errorf("%w: no panel efficiencies specified", ErrInvalidParams)
	}
	for _, e := range p.Efficiencies {
		if math.IsNaN(e) || e < 0 || e > 1 {
			return fmt.Errorf("%w, got %v", ErrInvalidEfficiency, e)
		}
	}
	return nil
}

// FloorAh returns the charge level matching a maximum discharge depth fraction.
func (p Params) FloorAh(depth float64) float64 {
	return depth * p.CapacityAh
}
