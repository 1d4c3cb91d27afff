package simulator

import (
	"github.com/tpowell-gbuapcd/Solar/internal/model"
	"github.com/tpowell-gbuapcd/Solar/internal/solar"
)

// Series is the hourly charge trajectory for one panel efficiency.
type Series struct {
	Efficiency float64
	ChargeAh   []float64 // aligned with Result.Hours
}

// Result is the output of one simulation over a single daily profile.
type Result struct {
	PeakHours  int
	SunHours   float64 // equivalent full-sun hours per day
	CapacityAh float64
	Hours      []int
	Series     []Series // same order as Params.Efficiencies
}

// Simulate runs the hourly charge recurrence once per efficiency in params.
// Every series starts at full capacity. Hour i (counted from the start of the
// horizon, not reset per day) uses the profile slot i mod 24.
// A horizon of zero or less yields empty series.
func Simulate(params model.Params, profile solar.Profile) Result {
	n := params.HorizonHours
	if n < 0 {
		n = 0
	}

	res := Result{
		PeakHours:  profile.PeakHours,
		SunHours:   profile.SolarHours(),
		CapacityAh: params.CapacityAh,
		Hours:      make([]int, n),
		Series:     make([]Series, 0, len(params.Efficiencies)),
	}
	for i := range res.Hours {
		res.Hours[i] = i
	}

	b := NewBattery(params.CapacityAh, params.SolarCurrentA, params.SystemCurrentA, 0)
	for _, eff := range params.Efficiencies {
		charge := make([]float64, n)
		if n > 0 {
			b.Efficiency = eff
			b.Reset()
			charge[0] = b.ChargeAh
			for i := 1; i < n; i++ {
				charge[i] = b.Step(profile.ScaleAt(i))
			}
		}
		res.Series = append(res.Series, Series{Efficiency: eff, ChargeAh: charge})
	}
	return res
}

// Horizon returns the number of simulated hours.
func (r Result) Horizon() int {
	return len(r.Hours)
}

// Efficiencies returns the efficiency tag of every series, in order.
func (r Result) Efficiencies() []float64 {
	effs := make([]float64, len(r.Series))
	for i, s := range r.Series {
		effs[i] = s.Efficiency
	}
	return effs
}
