// Package config holds the scenarios under comparison and where their
// results and the generated charts live.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSummaryFile = "pantheon_perf.json"
	DefaultOutputDir   = "graphs"
	DefaultFormat      = "png"
	DefaultWorkers     = 1
)

// Scenario is one emulated network condition.
type Scenario struct {
	// Key prefixes the per-scenario artifact names, e.g. high_bw.
	Key           string  `yaml:"key"`
	Label         string  `yaml:"label"`
	Title         string  `yaml:"title"`
	Dir           string  `yaml:"dir"`
	BandwidthMbps float64 `yaml:"bandwidth_mbps"`
	RTTMs         float64 `yaml:"rtt_ms"`
}

type Config struct {
	DataPath    string     `yaml:"data_path"`
	OutputDir   string     `yaml:"output_dir"`
	SummaryFile string     `yaml:"summary_file"`
	Format      string     `yaml:"format"`
	Workers     int        `yaml:"workers"`
	Scenarios   []Scenario `yaml:"scenarios"`
}

var (
	HighBandwidth = Scenario{
		Key:           "high_bw",
		Label:         "50 Mbps, 10 ms RTT",
		Title:         "High Bandwidth, Low Latency",
		Dir:           "results_50mbps_10ms",
		BandwidthMbps: 50,
		RTTMs:         10,
	}
	LowBandwidth = Scenario{
		Key:           "low_bw",
		Label:         "1 Mbps, 200 ms RTT",
		Title:         "Low Bandwidth, High Latency",
		Dir:           "results_1mbps_200ms",
		BandwidthMbps: 1,
		RTTMs:         200,
	}
)

// DefaultScenarios returns the two conditions the experiments are run under.
func DefaultScenarios() []Scenario {
	return []Scenario{HighBandwidth, LowBandwidth}
}

func Default() *Config {
	return &Config{
		DataPath:    ".",
		OutputDir:   DefaultOutputDir,
		SummaryFile: DefaultSummaryFile,
		Format:      DefaultFormat,
		Workers:     DefaultWorkers,
		Scenarios:   DefaultScenarios(),
	}
}

// Load reads a YAML config. Fields left out keep their default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.DataPath == "" {
		c.DataPath = def.DataPath
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.SummaryFile == "" {
		c.SummaryFile = def.SummaryFile
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = def.Scenarios
	}
}

var (
	ErrNoScenarios = errors.New("no scenarios configured")
	ErrBadScenario = errors.New("invalid scenario")
)

func (c *Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return ErrNoScenarios
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.Key == "" {
			return fmt.Errorf("%w: scenario %d has no key", ErrBadScenario, i)
		}
		if s.Dir == "" {
			return fmt.Errorf("%w: scenario %q has no dir", ErrBadScenario, s.Key)
		}
		if seen[s.Key] {
			return fmt.Errorf("%w: duplicate key %q", ErrBadScenario, s.Key)
		}
		seen[s.Key] = true
	}
	switch c.Format {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
	default:
		return fmt.Errorf("unsupported chart format %q", c.Format)
	}
	return nil
}

// ScenarioDir is the scenario's result directory resolved against DataPath.
func (c *Config) ScenarioDir(s Scenario) string {
	if filepath.IsAbs(s.Dir) {
		return s.Dir
	}
	return filepath.Join(c.DataPath, s.Dir)
}

// Heading is the scenario line used in reports, e.g.
// "High Bandwidth, Low Latency (50 Mbps, 10 ms RTT)".
func (s Scenario) Heading() string {
	if s.Title == "" {
		return s.Name()
	}
	if s.Label == "" {
		return s.Title
	}
	return fmt.Sprintf("%s (%s)", s.Title, s.Label)
}

//label used in legends, falls back to the key
func (s Scenario) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Key
}
