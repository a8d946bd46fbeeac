// Package scale maps continuous data values to pixel coordinates.
//
// [Linear] is the only scale used by line charts: a straight mapping from a
// numeric domain onto a pixel range, with [Linear.Invert] for turning pointer
// positions back into data values and [Linear.Ticks] for axis labelling.
package scale

import (
	"math"
)

// Linear maps the domain [D0, D1] onto the range [R0, R1].
// The range may be inverted (R0 > R1), as is usual for vertical axes.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear returns a linear scale over the given domain and range.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map converts a domain value to a range value.
// A collapsed domain maps every value to the midpoint of the range.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 {
		return (s.R0 + s.R1) / 2
	}
	t := (v - s.D0) / span
	return s.R0 + t*(s.R1-s.R0)
}

// Invert converts a range value back to a domain value.
// A collapsed range maps every value to the midpoint of the domain.
func (s Linear) Invert(px float64) float64 {
	span := s.R1 - s.R0
	if span == 0 {
		return (s.D0 + s.D1) / 2
	}
	t := (px - s.R0) / span
	return s.D0 + t*(s.D1-s.D0)
}

// Domain returns the domain bounds.
func (s Linear) Domain() (float64, float64) { return s.D0, s.D1 }

// Range returns the range bounds.
func (s Linear) Range() (float64, float64) { return s.R0, s.R1 }

// Ticks returns roughly count evenly spaced, human-friendly values within the
// domain. Step sizes are 1, 2 or 5 times a power of ten.
func (s Linear) Ticks(count int) []float64 {
	lo, hi := s.D0, s.D1
	if math.IsNaN(lo) || math.IsNaN(hi) || count <= 0 {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	reverse := hi < lo
	if reverse {
		lo, hi = hi, lo
	}

	step := TickStep(lo, hi, count)
	if step == 0 || math.IsInf(step, 0) {
		return nil
	}

	start := math.Ceil(lo / step)
	stop := math.Floor(hi / step)
	n := int(stop - start + 1)
	if n <= 0 {
		return nil
	}

	ticks := make([]float64, n)
	for i := range ticks {
		// Multiply from integers to avoid drift like 0.30000000000000004.
		ticks[i] = roundStep((start+float64(i))*step, step)
	}
	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// TickStep returns the tick spacing Ticks would use for [lo, hi].
func TickStep(lo, hi float64, count int) float64 {
	raw := math.Abs(hi-lo) / float64(max(count, 1))
	power := math.Floor(math.Log10(raw))
	base := math.Pow(10, power)
	switch err := raw / base; {
	case err >= math.Sqrt(50):
		base *= 10
	case err >= math.Sqrt(10):
		base *= 5
	case err >= math.Sqrt(2):
		base *= 2
	}
	return base
}

func roundStep(v, step float64) float64 {
	if step >= 1 {
		return math.Round(v)
	}
	decimals := math.Ceil(-math.Log10(step))
	p := math.Pow(10, decimals)
	return math.Round(v*p) / p
}
