package scoring

import (
	"math"

	"github.com/jonathan/report-engine/internal/types"
)

// AggregateComposites computes the eight composite scores from a full trait
// rating set. Each score is the arithmetic mean of its three constituent
// traits' normalized values, rounded to two decimal places.
//
// The call is all-or-nothing: the first trait absent from the set (groups
// and traits traversed in declared order) aborts with a MissingTraitError,
// and no partial result is returned.
func AggregateComposites(ratings map[string]types.Rating) (map[string]float64, error) {
	norm, err := NormalizeSet(ratings)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(CompositeGroups))
	for _, group := range CompositeGroups {
		sum := 0
		for _, trait := range group.Traits {
			v, ok := norm[trait]
			if !ok {
				return nil, &MissingTraitError{Trait: trait}
			}
			sum += v
		}
		mean := float64(sum) / float64(len(group.Traits))
		scores[group.Name] = math.Round(mean*100) / 100
	}
	return scores, nil
}
