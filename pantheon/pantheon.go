// Package pantheon reads the per-scenario performance summary written by
// the experiment harness (pantheon_perf.json).
//
// The file is keyed protocol -> run id -> flow selector -> metric. Only the
// aggregate of run "1" across all flows is used:
//
//	{"cubic": {"1": {"all": {"tput": 45.2, "delay": 12.5, "loss": 0.001}}}}
package pantheon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	RunKey       = "1"
	AggregateKey = "all"

	TputKey  = "tput"
	DelayKey = "delay"
	LossKey  = "loss"
)

var (
	ErrMissingSource = errors.New("summary source missing")
	ErrMalformed     = errors.New("malformed summary")
	ErrMissingField  = errors.New("missing field")
)

// IngestionError means the summary data cannot be used. Nothing downstream
// can run without it.
type IngestionError struct {
	Source   string
	Protocol string
	Err      error
}

func (e *IngestionError) Error() string {
	if e.Protocol == "" {
		return fmt.Sprintf("summary %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("summary %s: protocol %s: %v", e.Source, e.Protocol, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// Record is the raw aggregate triple of one protocol. A nil field was not
// present in the source.
type Record struct {
	Throughput *float64
	Delay      *float64
	Loss       *float64
}

// Summary holds the records of one scenario. Protocols keeps the order the
// protocols appear in the file.
type Summary struct {
	Source    string
	Protocols []string
	Records   map[string]Record
}

func (s *Summary) Record(protocol string) (Record, bool) {
	r, ok := s.Records[protocol]
	return r, ok
}

func (s *Summary) Len() int {
	return len(s.Protocols)
}

func Load(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &IngestionError{Source: path, Err: ErrMissingSource}
		}
		return nil, &IngestionError{Source: path, Err: err}
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode reads a summary from r. source only names the input in errors.
func Decode(r io.Reader, source string) (*Summary, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, malformed(source, "", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, malformed(source, "", fmt.Errorf("top level is %v, want object", tok))
	}
	sum := &Summary{Source: source, Records: make(map[string]Record)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(source, "", err)
		}
		protocol, ok := tok.(string)
		if !ok {
			return nil, malformed(source, "", fmt.Errorf("unexpected token %v", tok))
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, malformed(source, protocol, err)
		}
		rec, found, err := decodeRecord(raw)
		if err != nil {
			return nil, malformed(source, protocol, err)
		}
		if !found {
			log.WithFields(log.Fields{"source": source, "protocol": protocol}).
				Debugf("No run %q/%q aggregate, protocol omitted", RunKey, AggregateKey)
			continue
		}
		if _, dup := sum.Records[protocol]; !dup {
			sum.Protocols = append(sum.Protocols, protocol)
		}
		sum.Records[protocol] = rec
	}
	if _, err := dec.Token(); err != nil {
		return nil, malformed(source, "", err)
	}
	return sum, nil
}

//found is false when the run or aggregate entry does not exist
func decodeRecord(raw json.RawMessage) (rec Record, found bool, err error) {
	var runs map[string]json.RawMessage
	if err = json.Unmarshal(raw, &runs); err != nil {
		return rec, false, err
	}
	run, ok := runs[RunKey]
	if !ok {
		return rec, false, nil
	}
	var flows map[string]json.RawMessage
	if err = json.Unmarshal(run, &flows); err != nil {
		return rec, false, fmt.Errorf("run %s: %w", RunKey, err)
	}
	all, ok := flows[AggregateKey]
	if !ok {
		return rec, false, nil
	}
	var fields map[string]json.RawMessage
	if err = json.Unmarshal(all, &fields); err != nil {
		return rec, false, fmt.Errorf("run %s/%s: %w", RunKey, AggregateKey, err)
	}
	if fields == nil {
		return rec, false, nil
	}
	for key, dst := range map[string]**float64{
		TputKey:  &rec.Throughput,
		DelayKey: &rec.Delay,
		LossKey:  &rec.Loss,
	} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if err = json.Unmarshal(v, dst); err != nil {
			return rec, false, fmt.Errorf("run %s/%s %s: %w", RunKey, AggregateKey, key, err)
		}
	}
	return rec, true, nil
}

func malformed(source, protocol string, err error) error {
	return &IngestionError{Source: source, Protocol: protocol, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
}
