package perflog

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/M-Ravali/PA3-Assignment/common"
	"github.com/M-Ravali/PA3-Assignment/config"
)

var errNoReason = errors.New("time series unavailable")

// ScenarioSeries holds the parsed logs of all kinds for one scenario.
type ScenarioSeries struct {
	Scenario string
	Sets     map[common.Kind]*Set
}

// Kind returns the set of the given kind, empty if nothing was parsed.
func (ss *ScenarioSeries) Kind(kind common.Kind) *Set {
	if ss != nil {
		if s, ok := ss.Sets[kind]; ok {
			return s
		}
	}
	name := ""
	if ss != nil {
		name = ss.Scenario
	}
	return newSet(name, kind)
}

func ParseScenario(scenario, dir string) (*ScenarioSeries, error) {
	ss := &ScenarioSeries{Scenario: scenario, Sets: make(map[common.Kind]*Set, len(common.Kinds))}
	for _, kind := range common.Kinds {
		set, err := ParseKind(dir, scenario, kind)
		if err != nil {
			return nil, fmt.Errorf("%s logs: %w", kind, err)
		}
		ss.Sets[kind] = set
	}
	return ss, nil
}

// Outcome is the result of the time-series stage: either every scenario's
// logs (Available) or the reason none can be used (Unavailable).
type Outcome struct {
	series map[string]*ScenarioSeries
	reason error
}

func Available(series map[string]*ScenarioSeries) Outcome {
	if series == nil {
		series = make(map[string]*ScenarioSeries)
	}
	return Outcome{series: series}
}

func Unavailable(reason error) Outcome {
	if reason == nil {
		reason = errNoReason
	}
	return Outcome{reason: reason}
}

func (o Outcome) IsAvailable() bool {
	return o.reason == nil
}

func (o Outcome) Reason() error {
	return o.reason
}

func (o Outcome) Scenario(key string) (*ScenarioSeries, bool) {
	if !o.IsAvailable() {
		return nil, false
	}
	ss, ok := o.series[key]
	return ss, ok
}

// LoadAll parses the logs of every configured scenario. A throughput or
// delay log that cannot be read or parsed, in any scenario, makes the whole
// outcome Unavailable. Scenarios are parsed by up to cfg.Workers goroutines.
func LoadAll(cfg *config.Config) Outcome {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	results := make([]*ScenarioSeries, len(cfg.Scenarios))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i, sc := range cfg.Scenarios {
		i, sc := i, sc
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			ss, err := ParseScenario(sc.Key, cfg.ScenarioDir(sc))
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Key, err)
			}
			results[i] = ss
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Unavailable(err)
	}
	series := make(map[string]*ScenarioSeries, len(results))
	for i, ss := range results {
		series[cfg.Scenarios[i].Key] = ss
		log.WithFields(log.Fields{
			"scenario":   ss.Scenario,
			"throughput": ss.Kind(common.Throughput).Len(),
			"delay":      ss.Kind(common.Delay).Len(),
			"loss":       ss.Kind(common.Loss).Len(),
		}).Debug("Loaded time series")
	}
	return Available(series)
}
