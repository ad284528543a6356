package savedata_test

import (
	"encoding/csv"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/M-Ravali/PA3-Assignment/common"
	"github.com/M-Ravali/PA3-Assignment/evaluation"
	"github.com/M-Ravali/PA3-Assignment/savedata"
)

func readCSV(path string) [][]string {
	f, err := os.Open(path)
	Expect(err).ToNot(HaveOccurred())
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	Expect(err).ToNot(HaveOccurred())
	return rows
}

var _ = Describe("CSV export", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "savedata")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("refuses rows before NewCSV", func() {
		c := &savedata.SaveCSV{}
		Expect(c.AddOneToCSV([]string{"a"})).To(MatchError(savedata.ErrNotOpen))
		Expect(c.CloseCSV()).To(MatchError(savedata.ErrNotOpen))
	})

	It("writes metrics in scenario and protocol order", func() {
		path := filepath.Join(dir, "summary_metrics.csv")
		err := savedata.SaveMetrics(path, []evaluation.ScenarioMetrics{
			{Scenario: "high_bw", Protocols: []string{"cubic"}, ByProtocol: map[string]evaluation.Metrics{
				"cubic": {Throughput: 45.2, Delay: 12.5, Loss: 0.001}}},
			{Scenario: "low_bw", Protocols: []string{"cubic"}, ByProtocol: map[string]evaluation.Metrics{
				"cubic": {Throughput: 0.9, Delay: 210, Loss: 0.02}}},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(readCSV(path)).To(Equal([][]string{
			savedata.MetricsHeader,
			{"high_bw", "cubic", "45.2", "12.5", "0.001"},
			{"low_bw", "cubic", "0.9", "210", "0.02"},
		}))
	})

	It("writes series statistics", func() {
		path := filepath.Join(dir, "timeseries_stats.csv")
		err := savedata.SaveSeriesStats(path, []evaluation.Stats{
			{Scenario: "low_bw", Protocol: "bbr", Kind: common.Loss},
		})
		Expect(err).ToNot(HaveOccurred())
		rows := readCSV(path)
		Expect(rows).To(HaveLen(2))
		Expect(rows[1]).To(Equal([]string{"low_bw", "bbr", "loss", "0", "0", "0", "0", "0"}))
	})
})
