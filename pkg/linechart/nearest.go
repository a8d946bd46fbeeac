package linechart

import (
	"math"

	"github.com/matzehuels/linechart/pkg/chart/bisect"
	"github.com/matzehuels/linechart/pkg/dataset"
)

func category(s dataset.CategorySummary) float64 { return s.Category }

// NearestPoint returns the index of the summary whose category is closest to
// x0. data must be ascending by category.
//
// The candidates are the two summaries bracketing x0's insertion point. When
// x0 lies outside the observed categories, or fewer than two summaries exist,
// there is no bracket and ok is false. Equidistant candidates resolve to the
// lower category.
func NearestPoint(data []dataset.CategorySummary, x0 float64) (idx int, ok bool) {
	if math.IsNaN(x0) || len(data) < 2 || x0 < data[0].Category {
		return 0, false
	}
	i := bisect.Left(data, x0, category, 1)
	if i >= len(data) {
		return 0, false
	}
	d0, d1 := data[i-1], data[i]
	if x0-d0.Category > d1.Category-x0 {
		return i, true
	}
	return i - 1, true
}
