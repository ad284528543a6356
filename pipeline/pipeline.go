// Package pipeline runs one full analysis pass: load the summaries, parse
// the time-series logs, draw the charts and print the report.
package pipeline

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/M-Ravali/PA3-Assignment/common"
	"github.com/M-Ravali/PA3-Assignment/comparison"
	"github.com/M-Ravali/PA3-Assignment/config"
	"github.com/M-Ravali/PA3-Assignment/evaluation"
	"github.com/M-Ravali/PA3-Assignment/pantheon"
	"github.com/M-Ravali/PA3-Assignment/perflog"
	"github.com/M-Ravali/PA3-Assignment/savedata"
)

const (
	MetricsCSV = "summary_metrics"
	StatsCSV   = "timeseries_stats"
)

type Result struct {
	Metrics    []evaluation.ScenarioMetrics
	TimeSeries perflog.Outcome
	Artifacts  []string
}

// LoadMetrics loads and projects the summary of every scenario, in
// configuration order. Any error is an ingestion error and ends the run.
func LoadMetrics(cfg *config.Config) ([]evaluation.ScenarioMetrics, error) {
	metrics := make([]evaluation.ScenarioMetrics, len(cfg.Scenarios))
	var g errgroup.Group
	g.SetLimit(max(cfg.Workers, 1))
	for i, sc := range cfg.Scenarios {
		i, sc := i, sc
		g.Go(func() error {
			fp := common.CheckDataFiles(cfg.ScenarioDir(sc), cfg.SummaryFile)
			if !fp.SummaryExist {
				return &pantheon.IngestionError{Source: fp.Summary, Err: pantheon.ErrMissingSource}
			}
			sum, err := pantheon.Load(fp.Summary)
			if err != nil {
				return err
			}
			sm, err := evaluation.ExtractMetrics(sc.Key, sum)
			if err != nil {
				return err
			}
			metrics[i] = sm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}

// restrict drops series whose protocol has no summary record, so the
// metrics of a scenario always cover its time series.
func restrict(out perflog.Outcome, scenarios []config.Scenario, metrics []evaluation.ScenarioMetrics) {
	if !out.IsAvailable() {
		return
	}
	for i, sc := range scenarios {
		ss, ok := out.Scenario(sc.Key)
		if !ok {
			continue
		}
		for _, set := range ss.Sets {
			kept := set.Protocols[:0]
			for _, p := range set.Protocols {
				if metrics[i].Has(p) {
					kept = append(kept, p)
					continue
				}
				log.WithFields(log.Fields{"scenario": sc.Key, "kind": set.Kind, "protocol": p}).
					Warn("Time series without summary record, ignored")
				delete(set.Series, p)
			}
			set.Protocols = kept
		}
	}
}

func seriesStats(out perflog.Outcome, scenarios []config.Scenario) []evaluation.Stats {
	var stats []evaluation.Stats
	for _, sc := range scenarios {
		ss, ok := out.Scenario(sc.Key)
		if !ok {
			continue
		}
		for _, kind := range common.Kinds {
			for _, ts := range ss.Kind(kind).Ordered() {
				stats = append(stats, evaluation.SeriesStats(ts))
			}
		}
	}
	return stats
}

// Run executes the analysis and writes the report to stdout. Summary
// problems abort before anything is written. Time-series problems only
// reduce the output to the summary charts.
func Run(cfg *config.Config, stdout io.Writer) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	metrics, err := LoadMetrics(cfg)
	if err != nil {
		return nil, err
	}

	ts := perflog.LoadAll(cfg)
	if ts.IsAvailable() {
		restrict(ts, cfg.Scenarios, metrics)
	} else {
		log.Warnf("Unable to parse time-series logs: %v. Drawing summary charts only", ts.Reason())
	}

	r, err := comparison.NewRenderer(cfg.OutputDir, cfg.Format)
	if err != nil {
		return nil, err
	}
	res := &Result{Metrics: metrics, TimeSeries: ts}
	res.Artifacts, err = r.Render(cfg.Scenarios, metrics, ts)
	if err != nil {
		return res, fmt.Errorf("render charts: %w", err)
	}

	path := common.ArtifactPath(cfg.OutputDir, MetricsCSV, "csv")
	if err := savedata.SaveMetrics(path, metrics); err != nil {
		return res, fmt.Errorf("save %s: %w", path, err)
	}
	res.Artifacts = append(res.Artifacts, path)
	if ts.IsAvailable() {
		path := common.ArtifactPath(cfg.OutputDir, StatsCSV, "csv")
		if err := savedata.SaveSeriesStats(path, seriesStats(ts, cfg.Scenarios)); err != nil {
			return res, fmt.Errorf("save %s: %w", path, err)
		}
		res.Artifacts = append(res.Artifacts, path)
	}

	if err := comparison.WriteReport(stdout, cfg.Scenarios, metrics, cfg.OutputDir); err != nil {
		return res, err
	}
	log.WithField("artifacts", len(res.Artifacts)).Info("Analysis complete")
	return res, nil
}
