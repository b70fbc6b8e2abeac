package scoring

import (
	"strings"

	"github.com/jonathan/report-engine/internal/types"
)

// scaleMap maps lower-case labels to their numeric values.
var scaleMap = buildScaleMap()

func buildScaleMap() map[string]int {
	m := make(map[string]int, len(ScaleLabels))
	for i, label := range ScaleLabels {
		m[strings.ToLower(label)] = i + 1
	}
	return m
}

// Normalize converts a rating to its canonical integer on the 1-5 scale.
// Numeric inputs must be exact integers in [1,5]; fractional values are a
// validation failure, not a clamp. Label inputs are matched
// case-insensitively against the ordered vocabulary.
func Normalize(r types.Rating) (int, error) {
	if r.Number != nil {
		f := *r.Number
		iv := int(f)
		if float64(iv) != f || iv < 1 || iv > MaxRating {
			return 0, &InvalidRatingError{Value: r.String()}
		}
		return iv, nil
	}

	key := strings.ToLower(strings.TrimSpace(r.Label))
	if v, ok := scaleMap[key]; ok {
		return v, nil
	}
	return 0, &InvalidRatingError{Value: r.String()}
}

// NormalizeSet normalizes every rating in the set, keyed by canonical
// lower-case trait name. Unknown trait names are carried through untouched;
// completeness is checked where a specific trait is required.
func NormalizeSet(ratings map[string]types.Rating) (map[string]int, error) {
	norm := make(map[string]int, len(ratings))
	for name, r := range ratings {
		v, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		norm[strings.ToLower(strings.TrimSpace(name))] = v
	}
	return norm, nil
}
