package savedata

import (
	"strconv"

	"github.com/M-Ravali/PA3-Assignment/evaluation"
)

var (
	MetricsHeader = []string{"scenario", "protocol", "throughput_mbps", "delay_ms", "loss"}
	StatsHeader   = []string{"scenario", "protocol", "kind", "count", "duration_s", "mean", "p95", "max"}
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SaveMetrics writes one row per (scenario, protocol) in report order.
func SaveMetrics(filename string, metrics []evaluation.ScenarioMetrics) error {
	out := &SaveCSV{}
	if err := out.NewCSV(filename); err != nil {
		return err
	}
	out.AddOneToCSV(MetricsHeader)
	for _, sm := range metrics {
		for _, p := range sm.Protocols {
			m := sm.ByProtocol[p]
			out.AddOneToCSV([]string{sm.Scenario, p, ftoa(m.Throughput), ftoa(m.Delay), ftoa(m.Loss)})
		}
	}
	return out.CloseCSV()
}

func SaveSeriesStats(filename string, stats []evaluation.Stats) error {
	out := &SaveCSV{}
	if err := out.NewCSV(filename); err != nil {
		return err
	}
	out.AddOneToCSV(StatsHeader)
	for _, st := range stats {
		out.AddOneToCSV([]string{
			st.Scenario, st.Protocol, st.Kind.String(), strconv.Itoa(st.Count),
			ftoa(st.Duration), ftoa(st.Mean), ftoa(st.P95), ftoa(st.Max),
		})
	}
	return out.CloseCSV()
}
