package simulator

// SeriesSummary holds per-efficiency statistics measured against the
// discharge floor.
type SeriesSummary struct {
	Efficiency        float64
	MinAh             float64
	FinalAh           float64
	FinalSoCPercent   float64
	HoursBelowFloor   int
	FirstBelowFloorAt int // -1 when the charge never drops below the floor
	Depleted          bool
}

// Summarize computes a SeriesSummary for every series in r, in order.
// An hour counts as below the floor when its charge is strictly less than floorAh.
func Summarize(r Result, floorAh float64) []SeriesSummary {
	out := make([]SeriesSummary, 0, len(r.Series))
	for _, s := range r.Series {
		sum := SeriesSummary{
			Efficiency:        s.Efficiency,
			FirstBelowFloorAt: -1,
		}
		if len(s.ChargeAh) == 0 {
			out = append(out, sum)
			continue
		}

		sum.MinAh = s.ChargeAh[0]
		sum.FinalAh = s.ChargeAh[len(s.ChargeAh)-1]
		final := Battery{CapacityAh: r.CapacityAh, ChargeAh: sum.FinalAh}
		sum.FinalSoCPercent = final.SoCPercent()
		for i, v := range s.ChargeAh {
			if v < sum.MinAh {
				sum.MinAh = v
			}
			if v < floorAh {
				sum.HoursBelowFloor++
				if sum.FirstBelowFloorAt < 0 {
					sum.FirstBelowFloorAt = r.Hours[i]
				}
			}
			if v == 0 {
				sum.Depleted = true
			}
		}
		out = append(out, sum)
	}
	return out
}
