package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validParams = Params{
	SolarCurrentA:  2.79,
	SystemCurrentA: 0.3,
	CapacityAh:     10,
	SystemVoltageV: 12,
	HorizonHours:   168,
	Efficiencies:   []float64{0.1, 0.5, 1.0},
}

func TestDefaultEfficiencies(t *testing.T) {
	effs := DefaultEfficiencies()
	require.Len(t, effs, 11)
	assert.Equal(t, 0.0, effs[0])
	assert.Equal(t, 0.3, effs[3]) // exact, not 0.30000000000000004
	assert.Equal(t, 1.0, effs[10])
}

func TestUniqueEfficiencies(t *testing.T) {
	got := UniqueEfficiencies([]float64{0.5, 0.1, 0.5, 1.0, 0.1})
	assert.Equal(t, []float64{0.5, 0.1, 1.0}, got)
}

func TestParams_ValidateOK(t *testing.T) {
	assert.NoError(t, validParams.Validate())

	p := validParams
	p.HorizonHours = 1
	assert.NoError(t, p.Validate())
}

func TestParams_ValidateHorizon(t *testing.T) {
	for _, h := range []int{0, -5} {
		p := validParams
		p.HorizonHours = h
		assert.ErrorIs(t, p.Validate(), ErrInvalidHorizon)
	}
}

func TestParams_ValidateEfficiency(t *testing.T) {
	for _, e := range []float64{-0.1, 1.01, math.NaN()} {
		p := validParams
		p.Efficiencies = []float64{0.5, e}
		assert.ErrorIs(t, p.Validate(), ErrInvalidEfficiency)
	}

	p := validParams
	p.Efficiencies = nil
	assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
}

func TestParams_ValidateScalars(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero capacity", func(p *Params) { p.CapacityAh = 0 }},
		{"negative solar current", func(p *Params) { p.SolarCurrentA = -1 }},
		{"negative system current", func(p *Params) { p.SystemCurrentA = -0.5 }},
		{"infinite voltage", func(p *Params) { p.SystemVoltageV = math.Inf(1) }},
		{"nan capacity", func(p *Params) { p.CapacityAh = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams
			tt.modify(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
}

func TestParams_FloorAh(t *testing.T) {
	p := validParams
	p.CapacityAh = 50
	assert.InDelta(t, 10, p.FloorAh(0.20), 1e-9)
}
