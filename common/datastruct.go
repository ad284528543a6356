package common

import (
	"gonum.org/v1/plot/plotter"
)

//measurement kind carried by a per-protocol log
type Kind string

const (
	Throughput Kind = "throughput"
	Delay      Kind = "delay"
	Loss       Kind = "loss"
)

//parse order used by the pipeline
var Kinds = []Kind{Throughput, Delay, Loss}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Unit() string {
	switch k {
	case Throughput:
		return "Mbps"
	case Delay:
		return "ms"
	}
	return "fraction"
}

// TimeSeries is one protocol's measurements of one kind in one scenario.
// X is the elapsed time in seconds since the first row, Y the value in the
// kind's unit. A series with no points means the log was empty.
type TimeSeries struct {
	Scenario string
	Protocol string
	Kind     Kind
	Points   plotter.XYs
}

func (ts TimeSeries) Len() int {
	return len(ts.Points)
}

func (ts TimeSeries) Empty() bool {
	return len(ts.Points) == 0
}

//values only, in series order
func (ts TimeSeries) Values() []float64 {
	vals := make([]float64, len(ts.Points))
	for i, p := range ts.Points {
		vals[i] = p.Y
	}
	return vals
}

//elapsed time of the last point
func (ts TimeSeries) Duration() float64 {
	if len(ts.Points) == 0 {
		return 0
	}
	return ts.Points[len(ts.Points)-1].X
}
