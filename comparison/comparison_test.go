package comparison_test

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/M-Ravali/PA3-Assignment/common"
	"github.com/M-Ravali/PA3-Assignment/comparison"
	"github.com/M-Ravali/PA3-Assignment/config"
	"github.com/M-Ravali/PA3-Assignment/evaluation"
	"github.com/M-Ravali/PA3-Assignment/perflog"
)

func seriesOutcome(dir string) perflog.Outcome {
	for _, sc := range config.DefaultScenarios() {
		d := filepath.Join(dir, sc.Dir)
		Expect(os.MkdirAll(d, 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(d, "cubic_throughput.log"), []byte("0 40\n1 42\n2 45\n"), 0644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(d, "bbr_throughput.log"), nil, 0644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(d, "cubic_delay.log"), []byte("0 11\n1 13\n2 12\n"), 0644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(d, "cubic_loss.log"), []byte("0 0\n1 0.01\n"), 0644)).To(Succeed())
	}
	cfg := config.Default()
	cfg.DataPath = dir
	out := perflog.LoadAll(cfg)
	Expect(out.IsAvailable()).To(BeTrue())
	return out
}

var _ = Describe("Renderer", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "comparison")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("creates the output directory", func() {
		out := filepath.Join(dir, "graphs", "nested")
		r, err := comparison.NewRenderer(out, "png")
		Expect(err).ToNot(HaveOccurred())
		Expect(r.Path("avg_rtt_comparison")).To(Equal(filepath.Join(out, "avg_rtt_comparison.png")))
		info, err := os.Stat(out)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("draws only the summary charts without time series", func() {
		r, err := comparison.NewRenderer(filepath.Join(dir, "graphs"), "png")
		Expect(err).ToNot(HaveOccurred())
		paths, err := r.Render(config.DefaultScenarios(), cubicOnly(), perflog.Unavailable(errors.New("bad log")))
		Expect(err).ToNot(HaveOccurred())
		Expect(paths).To(Equal([]string{
			r.Path(comparison.AvgRTTChart),
			r.Path(comparison.RTTThroughputChart),
			r.Path(comparison.LossRateChart),
			r.Path(comparison.OverviewChart),
		}))
		for _, p := range paths {
			Expect(p).To(BeAnExistingFile())
		}
		Expect(r.Path("high_bw_throughput_timeseries")).ToNot(BeAnExistingFile())
	})

	It("draws time-series charts when available, skipping empty series", func() {
		r, err := comparison.NewRenderer(filepath.Join(dir, "graphs"), "png")
		Expect(err).ToNot(HaveOccurred())
		paths, err := r.Render(config.DefaultScenarios(), cubicOnly(), seriesOutcome(dir))
		Expect(err).ToNot(HaveOccurred())
		for _, name := range []string{
			"high_bw_throughput_timeseries", "low_bw_throughput_timeseries",
			"high_bw_loss_timeseries", "low_bw_loss_timeseries",
			"high_bw_delay_timeseries", "low_bw_delay_timeseries",
			"high_bw_delay_cdf", "low_bw_delay_cdf",
			"avg_rtt_comparison", "rtt_vs_throughput", "loss_rate_comparison",
		} {
			Expect(paths).To(ContainElement(r.Path(name)))
			Expect(r.Path(name)).To(BeAnExistingFile())
		}
		seen := map[string]bool{}
		for _, p := range paths {
			Expect(seen[p]).To(BeFalse(), "artifact written twice: %s", p)
			seen[p] = true
		}
	})

	It("writes other formats", func() {
		r, err := comparison.NewRenderer(filepath.Join(dir, "svg"), "svg")
		Expect(err).ToNot(HaveOccurred())
		paths, err := r.Render(config.DefaultScenarios(), cubicOnly(), perflog.Unavailable(nil))
		Expect(err).ToNot(HaveOccurred())
		for _, p := range paths {
			Expect(strings.HasSuffix(p, ".svg")).To(BeTrue())
		}
	})

	It("handles protocols missing from a scenario and unknown names", func() {
		metrics := []evaluation.ScenarioMetrics{
			{Protocols: []string{"cubic", "copa"}, ByProtocol: map[string]evaluation.Metrics{
				"cubic": {Throughput: 45, Delay: 12, Loss: 0.001}, "copa": {Throughput: 40, Delay: 11, Loss: 0}}},
			{Protocols: []string{"cubic"}, ByProtocol: map[string]evaluation.Metrics{
				"cubic": {Throughput: 0.9, Delay: 210, Loss: 0.02}}},
		}
		r, err := comparison.NewRenderer(filepath.Join(dir, "graphs"), "png")
		Expect(err).ToNot(HaveOccurred())
		_, err = r.Render(config.DefaultScenarios(), metrics, perflog.Unavailable(nil))
		Expect(err).ToNot(HaveOccurred())
	})

	It("draws nothing for no protocols", func() {
		r, err := comparison.NewRenderer(filepath.Join(dir, "graphs"), "png")
		Expect(err).ToNot(HaveOccurred())
		empty := []evaluation.ScenarioMetrics{{}, {}}
		_, err = r.Render(config.DefaultScenarios(), empty, perflog.Unavailable(nil))
		Expect(err).ToNot(HaveOccurred())
	})
})

var _ = Describe("Chart data", func() {
	It("does not merge scatter points of identical protocols", func() {
		same := evaluation.Metrics{Throughput: 10, Delay: 20, Loss: 0}
		metrics := []evaluation.ScenarioMetrics{
			{Protocols: []string{"cubic", "bbr"}, ByProtocol: map[string]evaluation.Metrics{"cubic": same, "bbr": same}},
			{Protocols: []string{"cubic", "bbr"}, ByProtocol: map[string]evaluation.Metrics{"cubic": same, "bbr": same}},
		}
		pts := comparison.ScatterPoints(config.DefaultScenarios(), metrics, []string{"cubic", "bbr"})
		Expect(pts).To(HaveLen(4))
		for _, pt := range pts {
			Expect(pt.X).To(Equal(1.0 / 20))
			Expect(pt.Y).To(Equal(10.0))
		}
		Expect(pts[0]).To(Equal(comparison.ScatterPoint{Protocol: "cubic", Scenario: 0, X: 0.05, Y: 10}))
		Expect(pts[1].Scenario).To(Equal(1))
	})

	It("leaves out points with no finite inverse delay", func() {
		metrics := []evaluation.ScenarioMetrics{
			{Protocols: []string{"cubic"}, ByProtocol: map[string]evaluation.Metrics{"cubic": {Throughput: 1, Delay: 0}}},
			{Protocols: []string{"cubic"}, ByProtocol: map[string]evaluation.Metrics{"cubic": {Throughput: 1, Delay: 100}}},
		}
		pts := comparison.ScatterPoints(config.DefaultScenarios(), metrics, []string{"cubic"})
		Expect(pts).To(HaveLen(1))
		Expect(pts[0].Scenario).To(Equal(1))
	})

	It("styles known and unknown protocols", func() {
		c, g := comparison.ProtocolStyle("bbr")
		Expect(c).To(Equal(color.Color(color.RGBA{G: 128, A: 255})))
		Expect(g).To(Equal(draw.GlyphDrawer(draw.BoxGlyph{})))

		c, g = comparison.ProtocolStyle("copa")
		Expect(c).To(Equal(color.Color(color.RGBA{A: 255})))
		Expect(g).To(Equal(draw.GlyphDrawer(draw.CircleGlyph{})))
	})

	It("draws a time-series chart with only empty series", func() {
		set := &perflog.Set{
			Kind:      common.Throughput,
			Protocols: []string{"bbr"},
			Series:    map[string]common.TimeSeries{"bbr": {Protocol: "bbr", Kind: common.Throughput, Points: plotter.XYs{}}},
		}
		p, err := comparison.TimeSeriesPlot(config.HighBandwidth, set, "Throughput", "Throughput (Mbps)")
		Expect(err).ToNot(HaveOccurred())
		Expect(p.Title.Text).To(Equal("Throughput over Time (50 Mbps, 10 ms RTT)"))
	})
})
