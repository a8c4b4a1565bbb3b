package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Correlate computes the pairwise Pearson correlation matrix of a view.
// Pairs that cannot be correlated (constant columns, no rows) come out NaN.
func Correlate(view *NumericView) [][]float64 {
	n := len(view.Columns)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}

	constant := make([]bool, n)
	for i, col := range view.Data {
		sdev, err := stats.StandardDeviationPopulation(col)
		constant[i] = err != nil || sdev == 0
	}

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			r := math.NaN()
			if !constant[i] && !constant[j] {
				var err error
				r, err = stats.Pearson(view.Data[i], view.Data[j])
				if err != nil {
					r = math.NaN()
				}
			}
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return matrix
}

// CorrPair is one strongly correlated column pair.
type CorrPair struct {
	A, B string
	R    float64
}

// HighPairs lists the column pairs whose absolute correlation exceeds the
// threshold, walking the lower triangle in column order.
func HighPairs(view *NumericView, matrix [][]float64, threshold float64) []CorrPair {
	var pairs []CorrPair
	for i := range view.Columns {
		for j := 0; j < i; j++ {
			r := matrix[i][j]
			if math.IsNaN(r) || math.Abs(r) <= threshold {
				continue
			}
			pairs = append(pairs, CorrPair{A: view.Columns[i], B: view.Columns[j], R: r})
		}
	}
	return pairs
}
