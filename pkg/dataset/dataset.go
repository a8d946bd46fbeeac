package dataset

import (
	"cmp"
	"math"
	"slices"
)

// RawObservation is a single labeled measurement.
type RawObservation struct {
	Category float64 `json:"category" yaml:"category" toml:"category"`
	Value    float64 `json:"value" yaml:"value" toml:"value"`
	User     string  `json:"user" yaml:"user" toml:"user" validate:"required"`
}

// CategorySummary is the aggregated view of every observation sharing a category.
type CategorySummary struct {
	Category   float64  `json:"category"`
	Percentage float64  `json:"percentage"`
	Users      []string `json:"users"`
}

// Aggregate groups observations by category and computes each category's share
// of the total value as a percentage.
//
// The input is copied before sorting; the caller's slice is never reordered.
// The sort is stable so users sharing a category keep their input order.
// A zero total produces NaN percentages.
func Aggregate(obs []RawObservation) []CategorySummary {
	if len(obs) == 0 {
		return []CategorySummary{}
	}

	sorted := slices.Clone(obs)
	slices.SortStableFunc(sorted, func(a, b RawObservation) int {
		return cmp.Compare(a.Category, b.Category)
	})

	total := Total(sorted)

	var (
		out   []CategorySummary
		sum   float64
		users []string
	)
	for i, o := range sorted {
		sum += o.Value
		users = append(users, o.User)

		last := i == len(sorted)-1
		if last || sorted[i+1].Category != o.Category {
			out = append(out, CategorySummary{
				Category:   o.Category,
				Percentage: sum / total * 100,
				Users:      users,
			})
			sum = 0
			users = nil
		}
	}
	return out
}

// Total returns the sum of Value over all observations.
func Total(obs []RawObservation) float64 {
	var total float64
	for _, o := range obs {
		total += o.Value
	}
	return total
}

// CategoryExtent returns the smallest and largest category in summaries.
// Both bounds are NaN for an empty sequence.
func CategoryExtent(summaries []CategorySummary) (lo, hi float64) {
	return extent(summaries, func(s CategorySummary) float64 { return s.Category })
}

// PercentageExtent returns the smallest and largest percentage in summaries.
// Both bounds are NaN for an empty sequence.
func PercentageExtent(summaries []CategorySummary) (lo, hi float64) {
	return extent(summaries, func(s CategorySummary) float64 { return s.Percentage })
}

func extent(summaries []CategorySummary, key func(CategorySummary) float64) (lo, hi float64) {
	if len(summaries) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = key(summaries[0]), key(summaries[0])
	for _, s := range summaries[1:] {
		v := key(s)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
