// Package perflog parses the per-protocol time-series logs of an experiment
// run: <protocol>_throughput.log, <protocol>_delay.log and <protocol>_loss.log.
// Each log is a headerless two column table of "timestamp value" rows.
package perflog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/plotter"

	"github.com/M-Ravali/PA3-Assignment/common"
)

var (
	ErrBadName      = errors.New("no protocol name in file name")
	ErrBadRow       = errors.New("malformed row")
	ErrEncoding     = errors.New("invalid UTF-8")
	ErrNonMonotonic = errors.New("timestamp goes backwards")
)

type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Source is a discovered log file and the protocol it belongs to.
type Source struct {
	Protocol string
	Path     string
}

func Pattern(kind common.Kind) string {
	return "*_" + kind.String() + ".log"
}

func nameRegexp(kind common.Kind) *regexp.Regexp {
	return regexp.MustCompile(`([a-z]+)_` + regexp.QuoteMeta(kind.String()) + `\.log`)
}

// ProtocolFromName extracts the protocol from a log file name, e.g. "cubic"
// from "cubic_delay.log". The match is not anchored, so a prefixed name such
// as "tcp_cubic_delay.log" also yields "cubic".
func ProtocolFromName(name string, kind common.Kind) (string, bool) {
	m := nameRegexp(kind).FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Discover lists the logs of one kind in dir, sorted by file name. A missing
// directory has no logs.
func Discover(dir string, kind common.Kind) ([]Source, error) {
	matches, err := filepath.Glob(filepath.Join(dir, Pattern(kind)))
	if err != nil {
		return nil, err
	}
	sources := make([]Source, 0, len(matches))
	for _, m := range matches {
		protocol, ok := ProtocolFromName(m, kind)
		if !ok {
			return nil, &ParseError{Path: m, Err: ErrBadName}
		}
		sources = append(sources, Source{Protocol: protocol, Path: m})
	}
	return sources, nil
}

func ParseFile(path string) (plotter.XYs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	pts, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return pts, nil
}

// Parse reads "timestamp value" rows. X of each point is the timestamp minus
// the first row's timestamp, Y the value. Blank lines and lines starting
// with '#' are skipped, as is a first row made only of non-numeric fields.
// Timestamps must not decrease. No rows gives an empty, non-nil series.
func Parse(r io.Reader) (plotter.XYs, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	pts := make(plotter.XYs, 0)
	var start, prev float64
	lineno := 0
	first := true
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if !utf8.ValidString(line) {
			return nil, &ParseError{Line: lineno, Err: ErrEncoding}
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if first {
			first = false
			if isHeader(fields) {
				continue
			}
		}
		if len(fields) != 2 {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("%w: want 2 columns, got %d", ErrBadRow, len(fields))}
		}
		ts, err := parseFinite(fields[0])
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("%w: timestamp %q", ErrBadRow, fields[0])}
		}
		val, err := parseFinite(fields[1])
		if err != nil {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("%w: value %q", ErrBadRow, fields[1])}
		}
		if len(pts) == 0 {
			start = ts
		} else if ts < prev {
			return nil, &ParseError{Line: lineno, Err: fmt.Errorf("%w: %v after %v", ErrNonMonotonic, ts, prev)}
		}
		prev = ts
		pts = append(pts, plotter.XY{X: ts - start, Y: val})
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: lineno + 1, Err: err}
	}
	return pts, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not finite: %v", v)
	}
	return v, nil
}

//a header row has no numeric field at all
func isHeader(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.ParseFloat(f, 64); err == nil {
			return false
		}
	}
	return true
}

// Tolerant reports whether a parse failure of a single log of this kind is
// skipped instead of failing the whole kind. Only loss logs are tolerated;
// a bad throughput or delay log disables time series for the whole run.
func Tolerant(kind common.Kind) bool {
	return kind == common.Loss
}

// Set is every series of one kind in one scenario, in discovery order.
type Set struct {
	Scenario  string
	Kind      common.Kind
	Protocols []string
	Series    map[string]common.TimeSeries
}

func newSet(scenario string, kind common.Kind) *Set {
	return &Set{Scenario: scenario, Kind: kind, Series: make(map[string]common.TimeSeries)}
}

func (s *Set) add(ts common.TimeSeries) {
	if _, ok := s.Series[ts.Protocol]; ok {
		log.WithFields(log.Fields{"scenario": s.Scenario, "kind": s.Kind, "protocol": ts.Protocol}).
			Warn("Duplicate log for protocol, keeping the last one")
	} else {
		s.Protocols = append(s.Protocols, ts.Protocol)
	}
	s.Series[ts.Protocol] = ts
}

func (s *Set) Get(protocol string) (common.TimeSeries, bool) {
	if s == nil {
		return common.TimeSeries{}, false
	}
	ts, ok := s.Series[protocol]
	return ts, ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Protocols)
}

// Ordered returns the series in discovery order.
func (s *Set) Ordered() []common.TimeSeries {
	if s == nil {
		return nil
	}
	out := make([]common.TimeSeries, 0, len(s.Protocols))
	for _, p := range s.Protocols {
		out = append(out, s.Series[p])
	}
	return out
}

// ParseKind discovers and parses every log of one kind in dir.
func ParseKind(dir, scenario string, kind common.Kind) (*Set, error) {
	sources, err := Discover(dir, kind)
	if err != nil {
		return nil, err
	}
	set := newSet(scenario, kind)
	for _, src := range sources {
		pts, err := ParseFile(src.Path)
		if err != nil {
			if Tolerant(kind) {
				log.WithFields(log.Fields{"scenario": scenario, "protocol": src.Protocol}).
					Warnf("Couldn't parse %s: %v", src.Path, err)
				continue
			}
			return nil, err
		}
		log.WithFields(log.Fields{"scenario": scenario, "kind": kind, "protocol": src.Protocol, "points": len(pts)}).
			Debug("Parsed log")
		set.add(common.TimeSeries{Scenario: scenario, Protocol: src.Protocol, Kind: kind, Points: pts})
	}
	return set, nil
}
