package scoring

import "fmt"

// InvalidRatingError reports a rating value outside the 1-5 ordinal scale.
// Ratings are categorical-ordinal, so near-misses (e.g. 5.9) are rejected
// rather than coerced; a non-exact value signals a caller bug.
type InvalidRatingError struct {
	Value string
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("invalid rating value %s: must be an integer 1-5 or one of %v", e.Value, ScaleLabels)
}

// MissingTraitError reports the first trait absent from a rating set when a
// composite group or display list requires it. Traversal order is fixed, so
// the named trait is deterministic across runs.
type MissingTraitError struct {
	Trait string
}

func (e *MissingTraitError) Error() string {
	return fmt.Sprintf("missing rating for trait: %s", e.Trait)
}
