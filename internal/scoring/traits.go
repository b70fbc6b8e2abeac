// Package scoring converts the consultant's 24 granular trait ratings into
// the eight composite bar scores and the two radar-chart display groups.
// Trait names, group membership, and display lists are explicit tables, not
// derived from one another.
package scoring

// ScaleLabels is the ordered categorical vocabulary for ratings.
// Position i corresponds to the numeric value i+1.
var ScaleLabels = []string{"Below", "Developing", "Hits", "Good", "Strong"}

// MaxRating is the top of the ordinal rating scale.
const MaxRating = 5

// Traits is the fixed 24-name vocabulary, in form display order.
// All names are canonical lower-case; lookups are case-insensitive.
var Traits = []string{
	"mission", "drive", "agency",
	"judgment", "incisiveness", "curiosity",
	"positivity", "resilience", "growth mindset",
	"compelling impact", "connection", "environmental insight",
	"achieves sustainable impact", "creates focus", "orchestrates delivery",
	"frames complexity", "identifies new possibilities", "generates solutions",
	"inspires people", "drives culture", "grows self and others",
	"aligns stakeholders", "models collaboration", "builds teams",
}

// CompositeGroup names a composite score and its three constituent traits.
type CompositeGroup struct {
	Name   string
	Traits [3]string
}

// CompositeGroups defines the eight energy-bar groups. Order matters: it is
// the traversal order for missing-trait detection.
var CompositeGroups = []CompositeGroup{
	{"purpose energy", [3]string{"mission", "drive", "agency"}},
	{"intellectual energy", [3]string{"judgment", "incisiveness", "curiosity"}},
	{"emotional energy", [3]string{"positivity", "resilience", "growth mindset"}},
	{"people energy", [3]string{"compelling impact", "connection", "environmental insight"}},
	{"performance impact", [3]string{"achieves sustainable impact", "creates focus", "orchestrates delivery"}},
	{"strategic framing", [3]string{"frames complexity", "identifies new possibilities", "generates solutions"}},
	{"mobilisation", [3]string{"inspires people", "drives culture", "grows self and others"}},
	{"powerful relationships", [3]string{"aligns stakeholders", "models collaboration", "builds teams"}},
}
