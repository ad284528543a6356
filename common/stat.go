package common

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// ECDF returns the empirical CDF of samples. The input slice is not modified.
func ECDF(samples []float64) plotter.XYs {
	n := len(samples)
	sorted := make([]float64, n)
	copy(sorted, samples)
	stat.SortWeighted(sorted, nil)
	ecdfs := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		ecdfs[i].X = sorted[i]
		ecdfs[i].Y = stat.CDF(sorted[i], stat.Empirical, sorted, nil)
	}
	return ecdfs
}
