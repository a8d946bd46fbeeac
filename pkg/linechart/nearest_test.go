package linechart

import (
	"math"
	"testing"

	"github.com/matzehuels/linechart/pkg/dataset"
)

func summaries(categories ...float64) []dataset.CategorySummary {
	out := make([]dataset.CategorySummary, len(categories))
	for i, c := range categories {
		out[i] = dataset.CategorySummary{Category: c}
	}
	return out
}

func TestNearestPoint(t *testing.T) {
	data := summaries(1, 3, 5)

	tests := []struct {
		name   string
		x0     float64
		want   float64
		wantOK bool
	}{
		{"closer to lower", 3.9, 3, true},
		{"closer to upper", 4.2, 5, true},
		{"tie resolves low", 4, 3, true},
		{"exact first", 1, 1, true},
		{"exact middle", 3, 3, true},
		{"exact last", 5, 5, true},
		{"before first", 0.5, 0, false},
		{"after last", 5.1, 0, false},
		{"NaN", math.NaN(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := NearestPoint(data, tt.x0)
			if ok != tt.wantOK {
				t.Fatalf("NearestPoint(%v) ok = %v, want %v", tt.x0, ok, tt.wantOK)
			}
			if ok && data[i].Category != tt.want {
				t.Errorf("NearestPoint(%v) = %v, want %v", tt.x0, data[i].Category, tt.want)
			}
		})
	}
}

func TestNearestPointNeedsTwoPoints(t *testing.T) {
	if _, ok := NearestPoint(nil, 1); ok {
		t.Error("empty data should have no bracket")
	}
	if _, ok := NearestPoint(summaries(5), 5); ok {
		t.Error("single point should have no bracket")
	}
}
