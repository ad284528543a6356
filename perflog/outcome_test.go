package perflog_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/M-Ravali/PA3-Assignment/common"
	"github.com/M-Ravali/PA3-Assignment/config"
	"github.com/M-Ravali/PA3-Assignment/perflog"
)

var _ = Describe("LoadAll", func() {
	var (
		root string
		cfg  *config.Config
	)

	scenarioDir := func(s config.Scenario) string {
		d := filepath.Join(root, s.Dir)
		Expect(os.MkdirAll(d, 0755)).To(Succeed())
		return d
	}

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "perflog")
		Expect(err).ToNot(HaveOccurred())
		cfg = config.Default()
		cfg.DataPath = root

		high := scenarioDir(config.HighBandwidth)
		writeLog(high, "cubic_throughput.log", "0 40\n1 45\n")
		writeLog(high, "cubic_delay.log", "0 11\n1 12\n")
		writeLog(high, "cubic_loss.log", "0 0\n1 0.01\n")
		low := scenarioDir(config.LowBandwidth)
		writeLog(low, "cubic_throughput.log", "0 0.8\n1 0.9\n")
		writeLog(low, "cubic_loss.log", "")
	})

	AfterEach(func() {
		os.RemoveAll(root)
	})

	It("makes every scenario available", func() {
		out := perflog.LoadAll(cfg)
		Expect(out.IsAvailable()).To(BeTrue())
		Expect(out.Reason()).ToNot(HaveOccurred())

		high, ok := out.Scenario("high_bw")
		Expect(ok).To(BeTrue())
		Expect(high.Kind(common.Throughput).Protocols).To(Equal([]string{"cubic"}))

		low, ok := out.Scenario("low_bw")
		Expect(ok).To(BeTrue())
		Expect(low.Kind(common.Delay).Len()).To(Equal(0))
		ts, ok := low.Kind(common.Loss).Get("cubic")
		Expect(ok).To(BeTrue())
		Expect(ts.Empty()).To(BeTrue())
	})

	It("gives the same result with parallel workers", func() {
		seq := perflog.LoadAll(cfg)
		cfg.Workers = 4
		par := perflog.LoadAll(cfg)
		for _, s := range cfg.Scenarios {
			a, _ := seq.Scenario(s.Key)
			b, _ := par.Scenario(s.Key)
			Expect(b).To(Equal(a))
		}
	})

	It("is unavailable everywhere when one delay log is bad", func() {
		writeLog(filepath.Join(root, config.LowBandwidth.Dir), "bbr_delay.log", "1 2\n2 oops\n")
		out := perflog.LoadAll(cfg)
		Expect(out.IsAvailable()).To(BeFalse())
		Expect(out.Reason().Error()).To(ContainSubstring("bbr_delay.log"))
		var pe *perflog.ParseError
		Expect(errors.As(out.Reason(), &pe)).To(BeTrue())

		_, ok := out.Scenario("high_bw")
		Expect(ok).To(BeFalse())
	})

	It("stays available when only a loss log is bad", func() {
		writeLog(filepath.Join(root, config.HighBandwidth.Dir), "bbr_loss.log", "garbage here too\n1 2\nx")
		out := perflog.LoadAll(cfg)
		Expect(out.IsAvailable()).To(BeTrue())
		high, _ := out.Scenario("high_bw")
		Expect(high.Kind(common.Loss).Protocols).To(Equal([]string{"cubic"}))
	})

	It("treats missing scenario directories as having no logs", func() {
		cfg.DataPath = filepath.Join(root, "elsewhere")
		out := perflog.LoadAll(cfg)
		Expect(out.IsAvailable()).To(BeTrue())
		high, _ := out.Scenario("high_bw")
		Expect(high.Kind(common.Throughput).Len()).To(Equal(0))
	})

	It("always carries a reason when unavailable", func() {
		out := perflog.Unavailable(nil)
		Expect(out.IsAvailable()).To(BeFalse())
		Expect(out.Reason()).To(HaveOccurred())
	})
})
