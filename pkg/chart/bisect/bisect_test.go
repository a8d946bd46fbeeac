package bisect

import (
	"math"
	"testing"
)

func TestLeft(t *testing.T) {
	data := []float64{1, 3, 5}
	id := func(v float64) float64 { return v }

	tests := []struct {
		x    float64
		lo   int
		want int
	}{
		{3.9, 1, 2},
		{3, 1, 1},
		{0, 1, 1},
		{0, 0, 0},
		{9, 1, 3},
		{5, 0, 2},
		{math.NaN(), 1, 1},
	}
	for _, tt := range tests {
		if got := Left(data, tt.x, id, tt.lo); got != tt.want {
			t.Errorf("Left(%v, lo=%d) = %d, want %d", tt.x, tt.lo, got, tt.want)
		}
	}
}

func TestLeftDuplicates(t *testing.T) {
	data := []float64{1, 2, 2, 2, 3}
	if got := Left(data, 2, func(v float64) float64 { return v }, 0); got != 1 {
		t.Errorf("Left should return the first matching index, got %d", got)
	}
}
