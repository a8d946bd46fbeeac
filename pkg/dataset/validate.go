package dataset

import (
	"github.com/matzehuels/linechart/pkg/errors"
)

// Validate reports whether obs can be aggregated into a meaningful chart.
//
// Aggregate itself accepts anything. Validate is the gate used at the
// edges (CLI, HTTP, pipeline) and rejects empty input, observations
// without a user, non-finite numbers and a zero total.
func Validate(obs []RawObservation) error {
	if len(obs) == 0 {
		return errors.New(errors.ErrCodeEmptyDataset, "dataset has no observations")
	}
	for i, o := range obs {
		if err := errors.ValidateAs(errors.ErrCodeInvalidDataset, o); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "observation %d", i)
		}
		if err := errors.ValidateFinite("category", o.Category); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "observation %d", i)
		}
		if err := errors.ValidateFinite("value", o.Value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "observation %d", i)
		}
	}
	if Total(obs) == 0 {
		return errors.New(errors.ErrCodeZeroTotal, "observation values sum to zero")
	}
	return nil
}
