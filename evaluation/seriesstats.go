package evaluation

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/M-Ravali/PA3-Assignment/common"
)

// Stats summarizes one time series. All fields are zero for an empty series.
type Stats struct {
	Scenario string
	Protocol string
	Kind     common.Kind
	Count    int
	Duration float64 //seconds
	Mean     float64
	P95      float64
	Max      float64
}

func SeriesStats(ts common.TimeSeries) Stats {
	st := Stats{Scenario: ts.Scenario, Protocol: ts.Protocol, Kind: ts.Kind, Count: ts.Len()}
	if ts.Empty() {
		return st
	}
	vals := ts.Values()
	st.Duration = ts.Duration()
	st.Mean = stat.Mean(vals, nil)
	st.Max = floats.Max(vals)
	//Quantile needs sorted input
	stat.SortWeighted(vals, nil)
	st.P95 = stat.Quantile(0.95, stat.Empirical, vals, nil)
	return st
}
