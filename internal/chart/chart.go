package chart

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/tpowell-gbuapcd/Solar/internal/model"
	"github.com/tpowell-gbuapcd/Solar/internal/simulator"
)

const (
	Width  = 15 * vg.Inch
	Height = 10 * vg.Inch

	suffixLayout = "01-02-2006_15-04-05"
)

// DefaultSuffix returns the timestamp suffix used when no file name is given.
func DefaultSuffix(t time.Time) string {
	return t.Format(suffixLayout)
}

// FileName builds the PNG name for a result. It encodes the horizon, every
// efficiency (dot removed, e.g. 0.1 -> 01, 1.0 -> 10), the peak solar hours
// and the suffix, so the three profiles of one run never collide.
func FileName(r simulator.Result, suffix string) string {
	var eff strings.Builder
	for _, e := range r.Efficiencies() {
		eff.WriteString(efficiencyToken(e))
		eff.WriteByte('_')
	}
	return fmt.Sprintf("solar_plot_%dHours_eff_%s%dSolarHours_%s.png",
		r.Horizon(), eff.String(), r.PeakHours, suffix)
}

// FloorLine returns a flat line at floorAh spanning every simulated hour.
func FloorLine(r simulator.Result, floorAh float64) plotter.XYs {
	pts := make(plotter.XYs, len(r.Hours))
	for i, h := range r.Hours {
		pts[i].X = float64(h)
		pts[i].Y = floorAh
	}
	return pts
}

// Title describes the run so a chart needs no external metadata.
func Title(r simulator.Result, params model.Params, depth float64) string {
	return fmt.Sprintf("%d Hours Solar Input, %s AHr Battery, %sA Solar Input, %sA System Load\n%sV System Voltage, %s%% Maximum Battery Discharge Depth",
		r.PeakHours,
		formatNumber(params.CapacityAh),
		formatNumber(params.SolarCurrentA),
		formatNumber(params.SystemCurrentA),
		formatNumber(params.SystemVoltageV),
		percent(depth),
	)
}

// NewPlot draws one line per efficiency plus the discharge floor.
func NewPlot(r simulator.Result, params model.Params, depth float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title(r, params, depth)
	p.X.Label.Text = "Hours Elapsed"
	p.Y.Label.Text = "Battery Remaining (Ah)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range r.Series {
		line, err := plotter.NewLine(seriesXYs(r.Hours, s.ChargeAh))
		if err != nil {
			return nil, fmt.Errorf("efficiency %v: %w", s.Efficiency, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Panel Efficiency: %s%%", percent(s.Efficiency)), line)
	}

	floorAh := params.FloorAh(depth)
	if len(r.Hours) > 0 {
		floor, err := plotter.NewLine(FloorLine(r, floorAh))
		if err != nil {
			return nil, fmt.Errorf("discharge floor: %w", err)
		}
		floor.Color = color.Black
		floor.Width = vg.Points(2)
		p.Add(floor)
		p.Legend.Add(fmt.Sprintf("Maximum Discharge Depth (%s Ah)", formatNumber(floorAh)), floor)
	}

	p.Y.Min = 0
	p.Y.Max = params.CapacityAh * 1.05
	return p, nil
}

// Render writes the chart for r into dir and returns the file path.
// An empty suffix falls back to DefaultSuffix of the current time.
func Render(r simulator.Result, params model.Params, depth float64, dir, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultSuffix(time.Now())
	}
	p, err := NewPlot(r, params, depth)
	if err != nil {
		return "", fmt.Errorf("building %d hour plot: %w", r.PeakHours, err)
	}

	path := filepath.Join(dir, FileName(r, suffix))
	if err := p.Save(Width, Height, path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

func seriesXYs(hours []int, charge []float64) plotter.XYs {
	pts := make(plotter.XYs, len(charge))
	for i, v := range charge {
		pts[i].X = float64(hours[i])
		pts[i].Y = v
	}
	return pts
}

func efficiencyToken(e float64) string {
	s := strconv.FormatFloat(e, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return strings.ReplaceAll(s, ".", "")
}

// percent formats a fraction as a percentage rounded to 0.1.
func percent(frac float64) string {
	return formatNumber(math.Round(frac*1000) / 10)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
