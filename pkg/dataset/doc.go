// Package dataset defines the observation records fed into line charts and the
// aggregation that turns them into per-category percentage summaries.
//
// # Overview
//
// A dataset is a flat list of [RawObservation] values. Several observations may
// share a category. [Aggregate] groups them by category and normalizes the
// summed values into each category's share of the overall total:
//
//	obs := []dataset.RawObservation{
//	    {Category: 1, Value: 10, User: "a"},
//	    {Category: 1, Value: 30, User: "b"},
//	    {Category: 2, Value: 60, User: "c"},
//	}
//	summaries := dataset.Aggregate(obs)
//	// [{1 40 [a b]} {2 60 [c]}]
//
// # Guarantees
//
// The output of [Aggregate] is strictly ascending by category with one summary
// per distinct category. Users within a summary keep their relative input
// order. Percentages sum to 100 whenever the total value is positive.
//
// # Degenerate Input
//
// Aggregate never fails. An empty dataset yields an empty summary sequence and a
// zero total yields NaN percentages; callers that need finite output must guard
// with [Total] before aggregating.
package dataset
