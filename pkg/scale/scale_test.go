package scale

import (
	"math"
	"slices"
	"testing"
)

func TestLinearMapAndInvert(t *testing.T) {
	s := NewLinear(1, 5, 0, 700)

	tests := []struct {
		v, px float64
	}{
		{1, 0},
		{5, 700},
		{3, 350},
		{0, -175},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); math.Abs(got-tt.px) > 1e-9 {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.px)
		}
		if got := s.Invert(tt.px); math.Abs(got-tt.v) > 1e-9 {
			t.Errorf("Invert(%v) = %v, want %v", tt.px, got, tt.v)
		}
	}
}

func TestLinearInvertedRange(t *testing.T) {
	y := NewLinear(0, 100, 330, 0)
	if got := y.Map(100); got != 0 {
		t.Errorf("Map(100) = %v, want 0", got)
	}
	if got := y.Map(0); got != 330 {
		t.Errorf("Map(0) = %v, want 330", got)
	}
	if got := y.Map(50); got != 165 {
		t.Errorf("Map(50) = %v, want 165", got)
	}
}

func TestLinearCollapsedDomain(t *testing.T) {
	s := NewLinear(3, 3, 0, 100)
	if got := s.Map(3); got != 50 {
		t.Errorf("collapsed domain should map to range midpoint, got %v", got)
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name   string
		d0, d1 float64
		count  int
		want   []float64
	}{
		{"percent axis", 0, 100, 10, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
		{"small range", 1, 3, 10, []float64{1, 1.2, 1.4, 1.6, 1.8, 2, 2.2, 2.4, 2.6, 2.8, 3}},
		{"coarse", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"reversed", 10, 0, 5, []float64{10, 8, 6, 4, 2, 0}},
		{"single", 4, 4, 10, []float64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLinear(tt.d0, tt.d1, 0, 1).Ticks(tt.count)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Ticks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTicksNaNDomain(t *testing.T) {
	if got := NewLinear(math.NaN(), math.NaN(), 0, 1).Ticks(10); got != nil {
		t.Errorf("NaN domain should have no ticks, got %v", got)
	}
}
