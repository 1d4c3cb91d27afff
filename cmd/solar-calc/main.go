// solar-calc simulates the charge of a solar-fed battery under a constant
// load for 10, 8 and 6 hour peak-sun profiles and writes one chart per
// profile.
//
// Usage:
//
//	solar-calc -si 2.79 -di 0.3 -b 10 -v 12
//	solar-calc -solar-current 2.79 -device-current 0.3 -battery-size 10 -voltage 12 -t 96 -ef 0.1,0.5,0.9
//	solar-calc -si 2.79 -di 0.3 -b 10 -v 12 -fn 2790mA_300mA_10AHr_12V
//	solar-calc -si 2.79 -di 0.3 -b 10 -v 12 -ef 0.1 0.3 0.9
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tpowell-gbuapcd/Solar/internal/chart"
	"github.com/tpowell-gbuapcd/Solar/internal/logging"
	"github.com/tpowell-gbuapcd/Solar/internal/model"
	"github.com/tpowell-gbuapcd/Solar/internal/simulator"
	"github.com/tpowell-gbuapcd/Solar/internal/solar"
	"github.com/tpowell-gbuapcd/Solar/internal/store"
)

var errUsage = errors.New("usage error")

type options struct {
	params    model.Params
	depth     float64
	suffix    string
	outputDir string
	logLevel  string
}

// efficiencyList is a flag.Value accepting comma or space separated fractions.
// The first Set replaces the defaults.
type efficiencyList struct {
	values []float64
	set    bool
}

func (l *efficiencyList) String() string {
	if l == nil {
		return ""
	}
	return formatEfficiencies(l.values)
}

func (l *efficiencyList) Set(s string) error {
	effs, err := parseEfficiencies(s)
	if err != nil {
		return err
	}
	if !l.set {
		l.values = nil
		l.set = true
	}
	l.values = append(l.values, effs...)
	return nil
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, logging.LevelFromString(opts.logLevel))
	slog.SetDefault(logger)

	if err := run(context.Background(), opts, logger, os.Stdout); err != nil {
		logger.Error("solar-calc failed", "err", err)
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("solar-calc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	effs := &efficiencyList{values: model.DefaultEfficiencies()}

	floatFlag := func(p *float64, name, short string, value float64, usage string) {
		fs.Float64Var(p, name, value, usage)
		fs.Float64Var(p, short, value, "shorthand for -"+name)
	}
	floatFlag(&o.params.SolarCurrentA, "solar-current", "si", 0, "optimum solar panel output current in amps, e.g. 1.0 (required)")
	floatFlag(&o.params.SystemCurrentA, "device-current", "di", 0, "maximum current consumed by the system in amps, e.g. 0.5 (required)")
	floatFlag(&o.params.CapacityAh, "battery-size", "b", 0, "battery size in amp-hours, e.g. 50.0 (required)")
	floatFlag(&o.params.SystemVoltageV, "voltage", "v", 0, "voltage supplied by the solar charger to the load, e.g. 12.0 (required)")
	floatFlag(&o.depth, "max-discharge-depth", "dd", 0.20, "maximum discharge depth of the battery as a fraction (LiFePO4 is generally 0.20)")
	fs.IntVar(&o.params.HorizonHours, "time-hours", 168, "number of hours to simulate")
	fs.IntVar(&o.params.HorizonHours, "t", 168, "shorthand for -time-hours")
	fs.StringVar(&o.suffix, "plot-file-name", "", "plot file name suffix, e.g. 2790mA_300mA_10AHr_12V (default: timestamp)")
	fs.StringVar(&o.suffix, "fn", "", "shorthand for -plot-file-name")
	fs.Var(effs, "panel-efficiencies", "panel efficiencies between 0.0 and 1.0, comma or space separated")
	fs.Var(effs, "ef", "shorthand for -panel-efficiencies")
	fs.StringVar(&o.outputDir, "output-dir", "plots", "directory the charts are written to")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	if err := fs.Parse(joinEfficiencyArgs(args)); err != nil {
		return options{}, err
	}

	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })

	var missing []string
	for _, req := range [][2]string{
		{"solar-current", "si"},
		{"device-current", "di"},
		{"battery-size", "b"},
		{"voltage", "v"},
	} {
		if !visited[req[0]] && !visited[req[1]] {
			missing = append(missing, "-"+req[0])
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(stderr, "missing required flags: %s\n", strings.Join(missing, ", "))
		fs.Usage()
		return options{}, fmt.Errorf("%w: missing %s", errUsage, strings.Join(missing, ", "))
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return options{}, fmt.Errorf("%w: unexpected arguments", errUsage)
	}

	o.params.Efficiencies = model.UniqueEfficiencies(effs.values)
	if err := o.params.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		return options{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	if o.depth < 0 || o.depth > 1 {
		fmt.Fprintf(stderr, "invalid arguments: max discharge depth must be within [0, 1], got %v\n", o.depth)
		return options{}, fmt.Errorf("%w: max discharge depth %v", errUsage, o.depth)
	}
	return o, nil
}

func run(ctx context.Context, o options, logger *slog.Logger, stdout io.Writer) error {
	printBanner(stdout, o.params)

	if o.suffix == "" {
		o.suffix = chart.DefaultSuffix(time.Now())
	}
	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	results := store.New()
	g, ctx := errgroup.WithContext(ctx)
	for _, profile := range solar.StandardProfiles() {
		profile := profile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := simulator.Simulate(o.params, profile)
			results.Add(res)
			logger.Debug("Simulated profile", "peak_hours", res.PeakHours, "hours", res.Horizon())

			path, err := chart.Render(res, o.params, o.depth, o.outputDir, o.suffix)
			if err != nil {
				return err
			}
			logger.Info("Wrote chart", "peak_hours", res.PeakHours, "path", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Debug("All profiles rendered", "profiles", results.Len())

	floorAh := o.params.FloorAh(o.depth)
	for _, res := range results.Results() {
		printSummary(stdout, res, floorAh)
	}
	return nil
}

func printBanner(w io.Writer, p model.Params) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Solar Panel Optimum Current Output: %s Amps\n", formatFloat(p.SolarCurrentA))
	fmt.Fprintf(w, "Battery Size: %s Amp-Hours\n", formatFloat(p.CapacityAh))
	fmt.Fprintf(w, "System Current Draw: %s A\n", formatFloat(p.SystemCurrentA))
	fmt.Fprintf(w, "System Voltage: %s V\n", formatFloat(p.SystemVoltageV))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Time Interval: %d Hours\n", p.HorizonHours)
	fmt.Fprintf(w, "Panel Efficiencies: %s\n", formatEfficiencies(p.Efficiencies))
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, r simulator.Result, floorAh float64) {
	fmt.Fprintf(w, "%d Hours Solar Input (%.1f full-sun hours/day, discharge floor %.2f Ah)\n", r.PeakHours, r.SunHours, floorAh)
	fmt.Fprintf(w, " %10s │ %9s │ %10s │ %9s │ %11s │ %11s │ %8s\n",
		"Efficiency", "Min (Ah)", "Final (Ah)", "Final SoC", "Below Floor", "First Below", "Depleted")
	fmt.Fprintf(w, "────────────┼───────────┼────────────┼───────────┼─────────────┼─────────────┼──────────\n")

	for _, s := range simulator.Summarize(r, floorAh) {
		first := "-"
		if s.FirstBelowFloorAt >= 0 {
			first = fmt.Sprintf("hour %d", s.FirstBelowFloorAt)
		}
		depleted := "no"
		if s.Depleted {
			depleted = "yes"
		}
		fmt.Fprintf(w, " %9.0f%% │ %9.2f │ %10.2f │ %8.1f%% │ %9d h │ %11s │ %8s\n",
			s.Efficiency*100, s.MinAh, s.FinalAh, s.FinalSoCPercent, s.HoursBelowFloor, first, depleted)
	}
	fmt.Fprintln(w)
}

// joinEfficiencyArgs folds bare numbers following -ef/-panel-efficiencies
// into that flag's value, so "-ef 0.1 0.3 0.9" reads as "-ef 0.1,0.3,0.9".
func joinEfficiencyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || arg == "--" || (name != "ef" && name != "panel-efficiencies") {
			out = append(out, arg)
			if arg == "--" {
				out = append(out, args[i+1:]...)
				break
			}
			continue
		}

		values := []string{}
		if hasValue {
			values = append(values, value)
		} else if i+1 < len(args) {
			i++
			values = append(values, args[i])
		}
		for i+1 < len(args) {
			if _, err := strconv.ParseFloat(args[i+1], 64); err != nil {
				break
			}
			i++
			values = append(values, args[i])
		}
		out = append(out, "-"+name)
		if len(values) > 0 {
			out = append(out, strings.Join(values, ","))
		}
	}
	return out
}

func parseEfficiencies(s string) ([]float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	effs := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("efficiency must be within [0, 1], got %v", v)
		}
		effs = append(effs, v)
	}
	if len(effs) == 0 {
		return nil, fmt.Errorf("no efficiencies specified")
	}
	return effs, nil
}

func formatEfficiencies(effs []float64) string {
	parts := make([]string, len(effs))
	for i, e := range effs {
		parts[i] = strconv.FormatFloat(e, 'f', 1, 64)
		if s := formatFloat(e); len(s) > len(parts[i]) {
			parts[i] = s
		}
	}
	return strings.Join(parts, ", ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
