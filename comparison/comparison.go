// Package comparison draws the cross-protocol, cross-scenario charts and the
// textual summary report.
package comparison

import (
	"errors"
	"fmt"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/M-Ravali/PA3-Assignment/common"
	"github.com/M-Ravali/PA3-Assignment/config"
	"github.com/M-Ravali/PA3-Assignment/evaluation"
	"github.com/M-Ravali/PA3-Assignment/perflog"
)

const (
	AvgRTTChart        = "avg_rtt_comparison"
	RTTThroughputChart = "rtt_vs_throughput"
	LossRateChart      = "loss_rate_comparison"
	OverviewChart      = "comparison_overview"
)

var ErrMismatch = errors.New("scenarios and metrics do not line up")

// TimeSeriesChart names the per-scenario curve chart of a kind, e.g.
// high_bw_throughput_timeseries.
func TimeSeriesChart(scenario string, kind common.Kind) string {
	return scenario + "_" + kind.String() + "_timeseries"
}

func DelayCDFChart(scenario string) string {
	return scenario + "_delay_cdf"
}

type Renderer struct {
	OutDir string
	Format string
	//size of the time-series charts; comparison charts are 10x6 in
	Width  vg.Length
	Height vg.Length
}

// NewRenderer creates the output directory if needed.
func NewRenderer(outdir, format string) (*Renderer, error) {
	if err := common.MakeOutputDir(outdir); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outdir, err)
	}
	if format == "" {
		format = config.DefaultFormat
	}
	return &Renderer{OutDir: outdir, Format: format, Width: 12 * vg.Inch, Height: 6 * vg.Inch}, nil
}

func (r *Renderer) Path(name string) string {
	return common.ArtifactPath(r.OutDir, name, r.Format)
}

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) (string, error) {
	path := r.Path(name)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	log.WithField("chart", path).Debug("Saved chart")
	return path, nil
}

// Render draws every chart and returns the written paths. Time-series
// charts are drawn only when ts is available. metrics[i] must belong to
// scenarios[i].
func (r *Renderer) Render(scenarios []config.Scenario, metrics []evaluation.ScenarioMetrics, ts perflog.Outcome) ([]string, error) {
	if len(scenarios) != len(metrics) {
		return nil, fmt.Errorf("%w: %d scenarios, %d metric sets", ErrMismatch, len(scenarios), len(metrics))
	}
	var written []string
	if ts.IsAvailable() {
		for _, sc := range scenarios {
			ss, _ := ts.Scenario(sc.Key)
			paths, err := r.renderTimeSeries(sc, ss)
			if err != nil {
				return written, err
			}
			written = append(written, paths...)
		}
	}

	protocols := evaluation.Protocols(metrics...)
	rtt, err := GroupedBars("Average RTT Comparison", "Average RTT (ms)", scenarios, metrics, protocols,
		func(m evaluation.Metrics) float64 { return m.Delay })
	if err != nil {
		return written, err
	}
	scatter, err := RTTvsThroughput(scenarios, metrics, protocols)
	if err != nil {
		return written, err
	}
	loss, err := GroupedBars("Loss Rate Comparison", "Loss Rate", scenarios, metrics, protocols,
		func(m evaluation.Metrics) float64 { return m.Loss })
	if err != nil {
		return written, err
	}
	for _, c := range []struct {
		p    *plot.Plot
		name string
	}{{rtt, AvgRTTChart}, {scatter, RTTThroughputChart}, {loss, LossRateChart}} {
		path, err := r.save(c.p, c.name, 10*vg.Inch, 6*vg.Inch)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	path, err := r.saveTiled([]*plot.Plot{rtt, scatter, loss}, OverviewChart, 10*vg.Inch, 18*vg.Inch)
	if err != nil {
		return written, err
	}
	return append(written, path), nil
}

func (r *Renderer) renderTimeSeries(sc config.Scenario, ss *perflog.ScenarioSeries) ([]string, error) {
	var written []string
	charts := []struct {
		kind   common.Kind
		title  string
		ylabel string
	}{
		{common.Throughput, "Throughput", "Throughput (Mbps)"},
		{common.Loss, "Loss Rate", "Loss Rate"},
		{common.Delay, "One-way Delay", "Delay (ms)"},
	}
	for _, c := range charts {
		p, err := TimeSeriesPlot(sc, ss.Kind(c.kind), c.title, c.ylabel)
		if err != nil {
			return written, err
		}
		path, err := r.save(p, TimeSeriesChart(sc.Key, c.kind), r.Width, r.Height)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	p, err := DelayCDF(sc, ss.Kind(common.Delay))
	if err != nil {
		return written, err
	}
	path, err := r.save(p, DelayCDFChart(sc.Key), 8*vg.Inch, 6*vg.Inch)
	if err != nil {
		return written, err
	}
	return append(written, path), nil
}

//one column of plots aligned on a single canvas
func (r *Renderer) saveTiled(plots []*plot.Plot, name string, w, h vg.Length) (string, error) {
	path := r.Path(name)
	img, err := draw.NewFormattedCanvas(w, h, r.Format)
	if err != nil {
		return "", err
	}
	dc := draw.New(img)
	t := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	grid := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		grid[i] = []*plot.Plot{p}
	}
	canvases := plot.Align(grid, t, dc)
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// TimeSeriesPlot draws one curve per protocol. Empty series get no curve.
func TimeSeriesPlot(sc config.Scenario, set *perflog.Set, title, ylabel string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s over Time (%s)", title, sc.Name())
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	for i, ts := range set.Ordered() {
		if ts.Empty() {
			log.WithFields(log.Fields{"scenario": sc.Key, "kind": ts.Kind, "protocol": ts.Protocol}).
				Debug("Empty series, no curve drawn")
			continue
		}
		l, err := plotter.NewLine(ts.Points)
		if err != nil {
			return nil, fmt.Errorf("%s %s curve: %w", ts.Protocol, ts.Kind, err)
		}
		l.Color = lineColor(ts.Protocol, i)
		l.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(common.ProtocolLabel(ts.Protocol), l)
	}
	p.Legend.Top = true
	return p, nil
}

// DelayCDF draws the empirical distribution of one-way delay per protocol.
func DelayCDF(sc config.Scenario, set *perflog.Set) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("One-way Delay CDF (%s)", sc.Name())
	p.X.Label.Text = "Delay (ms)"
	p.Y.Label.Text = "CDF"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())
	for i, ts := range set.Ordered() {
		if ts.Empty() {
			continue
		}
		l, err := plotter.NewLine(common.ECDF(ts.Values()))
		if err != nil {
			return nil, fmt.Errorf("%s delay cdf: %w", ts.Protocol, err)
		}
		l.Color = lineColor(ts.Protocol, i)
		p.Add(l)
		p.Legend.Add(common.ProtocolLabel(ts.Protocol), l)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// GroupedBars draws one group per protocol with a bar per scenario. A
// protocol missing from a scenario leaves a gap instead of a zero bar.
func GroupedBars(title, ylabel string, scenarios []config.Scenario, metrics []evaluation.ScenarioMetrics,
	protocols []string, value func(evaluation.Metrics) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Protocol"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	w := vg.Points(20)
	n := len(metrics)
	for j, sm := range metrics {
		offset := vg.Length(float64(j)-float64(n-1)/2) * w
		col := plotutil.Color(j)
		inLegend := false
		for i, proto := range protocols {
			m, ok := sm.Get(proto)
			if !ok {
				continue
			}
			bar, err := plotter.NewBarChart(plotter.Values{value(m)}, w)
			if err != nil {
				return nil, fmt.Errorf("%s bar for %s: %w", proto, scenarios[j].Key, err)
			}
			bar.XMin = float64(i)
			bar.Offset = offset
			bar.Color = col
			bar.LineStyle.Width = vg.Length(0)
			p.Add(bar)
			if !inLegend {
				p.Legend.Add(scenarios[j].Name(), bar)
				inLegend = true
			}
		}
	}
	if len(protocols) > 0 {
		labels := make([]string, len(protocols))
		for i, proto := range protocols {
			labels[i] = common.ProtocolLabel(proto)
		}
		p.NominalX(labels...)
		p.X.Min = -0.5
		p.X.Max = float64(len(protocols)) - 0.5
	}
	p.Legend.Top = true
	return p, nil
}

// ScatterPoint is one (protocol, scenario) point of the RTT vs throughput
// chart.
type ScatterPoint struct {
	Protocol string
	Scenario int
	X        float64 //1/RTT
	Y        float64 //Mbps
}

// ScatterPoints returns a point for every (protocol, scenario) pair with
// metrics. Pairs with a non-positive delay have no finite 1/RTT and are
// left out.
func ScatterPoints(scenarios []config.Scenario, metrics []evaluation.ScenarioMetrics, protocols []string) []ScatterPoint {
	var pts []ScatterPoint
	for _, proto := range protocols {
		for j, sm := range metrics {
			m, ok := sm.Get(proto)
			if !ok {
				continue
			}
			if m.Delay <= 0 || math.IsInf(1/m.Delay, 0) {
				log.WithFields(log.Fields{"scenario": scenarios[j].Key, "protocol": proto, "delay": m.Delay}).
					Warn("Non-positive delay, point left out of RTT vs throughput")
				continue
			}
			pts = append(pts, ScatterPoint{Protocol: proto, Scenario: j, X: 1 / m.Delay, Y: m.Throughput})
		}
	}
	return pts
}

func RTTvsThroughput(scenarios []config.Scenario, metrics []evaluation.ScenarioMetrics, protocols []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "RTT vs Throughput for Different CC Algorithms"
	p.X.Label.Text = "1/RTT (higher RTT closer to origin)"
	p.Y.Label.Text = "Throughput (Mbps)"
	p.Add(plotter.NewGrid())
	for _, pt := range ScatterPoints(scenarios, metrics, protocols) {
		s, err := plotter.NewScatter(plotter.XYs{{X: pt.X, Y: pt.Y}})
		if err != nil {
			return nil, fmt.Errorf("%s scatter point: %w", pt.Protocol, err)
		}
		c, g := ProtocolStyle(pt.Protocol)
		s.GlyphStyle.Color = withAlpha(c, scenarioAlpha(pt.Scenario))
		s.GlyphStyle.Shape = g
		s.GlyphStyle.Radius = vg.Points(5)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s (%s)", common.ProtocolLabel(pt.Protocol), scenarios[pt.Scenario].Name()), s)
	}
	p.Legend.Top = true
	return p, nil
}
