package deck

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/report-engine/internal/scoring"
	"github.com/jonathan/report-engine/internal/types"
)

// RequiredSlideCount is the minimum slide count the report layout needs.
const RequiredSlideCount = 7

// Zero-based slide indexes of the report layout.
const (
	slideCover     = 0
	slideNarrative = 2
	slideDev       = 3
	slideEnergy    = 4
	slideRadar     = 5
	slideReasoning = 6
)

// barShapeNames maps composite group names to the slide 5 bar shapes.
var barShapeNames = map[string]string{
	"purpose energy":         "bar_purpose",
	"intellectual energy":    "bar_intellectual",
	"emotional energy":       "bar_emotional",
	"people energy":          "bar_people",
	"performance impact":     "bar_performance",
	"strategic framing":      "bar_strategic",
	"mobilisation":           "bar_mobilisation",
	"powerful relationships": "bar_relationships",
}

// markerShapeNames maps summary-rating keys to the slide 3 indicator markers.
var markerShapeNames = []struct {
	shape  string
	rating func(r types.SummaryRatings) int
}{
	{"ball_fit", func(r types.SummaryRatings) int { return r.FitForRole }},
	{"ball_cap", func(r types.SummaryRatings) int { return r.Capabilities }},
	{"ball_pot", func(r types.SummaryRatings) int { return r.Potential }},
	{"ball_future", func(r types.SummaryRatings) int { return r.FutureConsiderations }},
}

// reasoningBars maps reasoning percentile fields to the slide 7 bar and
// label shapes. Percentiles scale against 100, not the trait scale.
var reasoningBars = []struct {
	suffix string
	score  func(r *types.ReasoningScores) int
}{
	{"verbal", func(r *types.ReasoningScores) int { return r.Verbal }},
	{"numerical", func(r *types.ReasoningScores) int { return r.Numerical }},
	{"abstract", func(r *types.ReasoningScores) int { return r.Abstract }},
	{"overall", func(r *types.ReasoningScores) int { return r.Overall }},
}

// Content is everything BuildReport writes into the template.
type Content struct {
	CandidateName  string
	RoleAndCompany string
	Narrative      *types.NarrativeRecord
	SummaryRatings *types.SummaryRatings
	BarScores      map[string]float64
	RadarChart1    string
	RadarChart2    string
	Reasoning      *types.ReasoningScores
}

// BuildReport opens the template, populates every slide from the content,
// and writes the finished deck to outputPath. The template is read-only
// throughout; a second build from the same template starts clean.
func BuildReport(templatePath, outputPath string, content Content, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	d, err := Open(templatePath)
	if err != nil {
		return err
	}
	p, err := NewPopulator(d, logger)
	if err != nil {
		return err
	}

	p.SetText(slideCover, "candidate_name", content.CandidateName)
	p.SetText(slideCover, "role_company", content.RoleAndCompany)

	if n := content.Narrative; n != nil {
		p.SetText(slideNarrative, "personal_profile", n.PersonalProfile)
		for i, s := range n.Strengths {
			p.SetText(slideNarrative, fmt.Sprintf("strength_%d_title", i+1), s.Title)
			p.SetText(slideNarrative, fmt.Sprintf("strength_%d_body", i+1), s.Paragraph)
		}
		for i, dev := range n.DevelopmentAreas {
			p.SetText(slideNarrative, fmt.Sprintf("dev_%d_title", i+1), dev.Title)
			p.SetText(slideNarrative, fmt.Sprintf("dev_%d_body", i+1), dev.Paragraph)
		}
		p.SetText(slideNarrative, "future_considerations", n.FutureConsiderations)

		for i, pd := range n.PersonalDevelopment {
			p.SetText(slideDev, fmt.Sprintf("pd_%d_title", i+1), pd.Title)
			p.SetText(slideDev, fmt.Sprintf("pd_%d_body", i+1), pd.Paragraph)
		}
		for i, org := range n.OrgSupport {
			p.SetText(slideDev, fmt.Sprintf("org_%d_title", i+1), org.Title)
			p.SetText(slideDev, fmt.Sprintf("org_%d_body", i+1), org.Paragraph)
		}
	}

	if content.SummaryRatings != nil {
		for _, m := range markerShapeNames {
			p.PlaceMarker(slideNarrative, m.shape, m.rating(*content.SummaryRatings), scoring.MaxRating)
		}
	}

	for group, score := range content.BarScores {
		shape, ok := barShapeNames[group]
		if !ok {
			logger.Warn("no bar shape for composite group", zap.String("group", group))
			continue
		}
		p.ScaleBar(slideEnergy, shape, score, float64(scoring.MaxRating))
	}

	if fileExists(content.RadarChart1) {
		if err := p.InsertImage(slideRadar, "spider_1", content.RadarChart1); err != nil {
			return err
		}
	}
	if fileExists(content.RadarChart2) {
		if err := p.InsertImage(slideRadar, "spider_2", content.RadarChart2); err != nil {
			return err
		}
	}

	if r := content.Reasoning; r != nil {
		for _, bar := range reasoningBars {
			score := bar.score(r)
			p.ScaleBar(slideReasoning, "bar_"+bar.suffix, float64(score), 100)
			p.SetText(slideReasoning, "label_"+bar.suffix, fmt.Sprintf("%d%%", score))
		}
	}

	return d.Save(outputPath)
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
