package comparison

import (
	"fmt"
	"io"
	"strings"

	"github.com/M-Ravali/PA3-Assignment/common"
	"github.com/M-Ravali/PA3-Assignment/config"
	"github.com/M-Ravali/PA3-Assignment/evaluation"
)

const reportTitle = "SUMMARY STATISTICS FOR ANALYSIS"

// FormatMetrics renders one protocol line of the summary report.
func FormatMetrics(protocol string, m evaluation.Metrics) string {
	return fmt.Sprintf("%s: Throughput = %.4f Mbps, RTT = %.2f ms, Loss = %.4f",
		common.ProtocolLabel(protocol), m.Throughput, m.Delay, m.Loss)
}

// WriteReport prints the per-scenario metrics table. Protocols are listed in
// the order of each scenario's summary.
func WriteReport(w io.Writer, scenarios []config.Scenario, metrics []evaluation.ScenarioMetrics, outdir string) error {
	if len(scenarios) != len(metrics) {
		return fmt.Errorf("%w: %d scenarios, %d metric sets", ErrMismatch, len(scenarios), len(metrics))
	}
	var b strings.Builder
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, reportTitle)
	fmt.Fprintln(&b, rule)
	for i, sm := range metrics {
		fmt.Fprintf(&b, "\n%s:\n", scenarios[i].Heading())
		for _, p := range sm.Protocols {
			fmt.Fprintln(&b, FormatMetrics(p, sm.ByProtocol[p]))
		}
	}
	fmt.Fprintf(&b, "\nAnalysis complete! All graphs saved to the '%s' directory.\n", outdir)
	_, err := io.WriteString(w, b.String())
	return err
}
