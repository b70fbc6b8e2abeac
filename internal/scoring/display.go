package scoring

import "github.com/jonathan/report-engine/internal/types"

// The two radar display lists are configuration, deliberately independent of
// the composite-group tables. "judgment" appears in neither list, so the
// union covers 23 of the 24 traits.
var (
	// RadarPersonalTraits feeds radar chart one (personal characteristics).
	RadarPersonalTraits = []string{
		"mission", "drive", "agency",
		"incisiveness", "curiosity",
		"positivity", "resilience", "growth mindset",
		"compelling impact", "connection", "environmental insight",
	}

	// RadarCapabilityTraits feeds radar chart two (leadership capabilities).
	RadarCapabilityTraits = []string{
		"achieves sustainable impact", "creates focus", "orchestrates delivery",
		"frames complexity", "identifies new possibilities", "generates solutions",
		"inspires people", "drives culture", "grows self and others",
		"aligns stakeholders", "models collaboration", "builds teams",
	}
)

// RadarGroup is an order-preserving trait→value mapping for one radar chart.
// Display order matters for chart labeling, so entries are a slice, not a map.
type RadarGroup struct {
	Name    string
	Entries []RadarEntry
}

// RadarEntry is one labeled spoke of a radar chart.
type RadarEntry struct {
	Trait string
	Value int
}

// SplitDisplayGroups partitions the normalized ratings into the two fixed
// radar display groups. Fails with a MissingTraitError (first missing trait
// in list order) if a listed trait has no rating.
func SplitDisplayGroups(ratings map[string]types.Rating) (RadarGroup, RadarGroup, error) {
	norm, err := NormalizeSet(ratings)
	if err != nil {
		return RadarGroup{}, RadarGroup{}, err
	}

	personal, err := buildRadarGroup("Personal Characteristics", RadarPersonalTraits, norm)
	if err != nil {
		return RadarGroup{}, RadarGroup{}, err
	}
	capability, err := buildRadarGroup("Leadership Capabilities", RadarCapabilityTraits, norm)
	if err != nil {
		return RadarGroup{}, RadarGroup{}, err
	}
	return personal, capability, nil
}

func buildRadarGroup(name string, traits []string, norm map[string]int) (RadarGroup, error) {
	group := RadarGroup{Name: name, Entries: make([]RadarEntry, 0, len(traits))}
	for _, trait := range traits {
		v, ok := norm[trait]
		if !ok {
			return RadarGroup{}, &MissingTraitError{Trait: trait}
		}
		group.Entries = append(group.Entries, RadarEntry{Trait: trait, Value: v})
	}
	return group, nil
}
