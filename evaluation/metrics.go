package evaluation

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/M-Ravali/PA3-Assignment/pantheon"
)

// Metrics is the aggregate of one protocol in one scenario.
type Metrics struct {
	Throughput float64 `json:"throughput"` // Mbps
	Delay      float64 `json:"delay"`      // ms
	Loss       float64 `json:"loss"`       // fraction
}

// ScenarioMetrics maps protocol to Metrics, keeping the summary's order.
type ScenarioMetrics struct {
	Scenario   string
	Protocols  []string
	ByProtocol map[string]Metrics
}

func (sm ScenarioMetrics) Get(protocol string) (Metrics, bool) {
	m, ok := sm.ByProtocol[protocol]
	return m, ok
}

func (sm ScenarioMetrics) Has(protocol string) bool {
	_, ok := sm.ByProtocol[protocol]
	return ok
}

// ExtractMetrics projects every summary record unchanged. A record missing
// any of throughput, delay or loss is an ingestion error.
func ExtractMetrics(scenario string, sum *pantheon.Summary) (ScenarioMetrics, error) {
	sm := ScenarioMetrics{
		Scenario:   scenario,
		Protocols:  make([]string, 0, sum.Len()),
		ByProtocol: make(map[string]Metrics, sum.Len()),
	}
	for _, p := range sum.Protocols {
		rec := sum.Records[p]
		missing := ""
		switch {
		case rec.Throughput == nil:
			missing = pantheon.TputKey
		case rec.Delay == nil:
			missing = pantheon.DelayKey
		case rec.Loss == nil:
			missing = pantheon.LossKey
		}
		if missing != "" {
			return ScenarioMetrics{}, &pantheon.IngestionError{
				Source:   sum.Source,
				Protocol: p,
				Err:      fmt.Errorf("%w %q", pantheon.ErrMissingField, missing),
			}
		}
		sm.Protocols = append(sm.Protocols, p)
		sm.ByProtocol[p] = Metrics{Throughput: *rec.Throughput, Delay: *rec.Delay, Loss: *rec.Loss}
	}
	return sm, nil
}

// Protocols is the comparison axis shared by all cross-scenario charts: the
// protocols of the first scenario in order, then any new ones from the rest.
func Protocols(all ...ScenarioMetrics) []string {
	var out []string
	for _, sm := range all {
		for _, p := range sm.Protocols {
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	return out
}
