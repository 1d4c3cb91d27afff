package simulator

// Battery tracks the charge of a solar-fed battery under a constant load.
// Each Step covers one hour.
type Battery struct {
	CapacityAh     float64
	SolarCurrentA  float64
	SystemCurrentA float64
	Efficiency     float64

	// State
	ChargeAh float64
}

// NewBattery creates a fully charged battery.
func NewBattery(capacityAh, solarA, systemA, efficiency float64) *Battery {
	return &Battery{
		CapacityAh:     capacityAh,
		SolarCurrentA:  solarA,
		SystemCurrentA: systemA,
		Efficiency:     efficiency,
		ChargeAh:       capacityAh,
	}
}

// Step advances the battery by one hour and returns the new charge.
// During solar hours the panel adds SolarCurrentA scaled by the profile factor
// and the panel efficiency; the load is drawn every hour. The result is
// clamped to [0, CapacityAh].
func (b *Battery) Step(scale float64, solar bool) float64 {
	var next float64
	if solar {
		next = b.ChargeAh + b.SolarCurrentA*scale*b.Efficiency - b.SystemCurrentA
	} else {
		next = b.ChargeAh - b.SystemCurrentA
	}

	if next > b.CapacityAh {
		next = b.CapacityAh
	} else if next < 0 {
		next = 0
	}
	b.ChargeAh = next
	return next
}

// Reset recharges the battery to full.
func (b *Battery) Reset() {
	b.ChargeAh = b.CapacityAh
}

// SoCPercent returns the state of charge as a percentage of capacity.
func (b *Battery) SoCPercent() float64 {
	if b.CapacityAh <= 0 {
		return 0
	}
	return b.ChargeAh / b.CapacityAh * 100
}
