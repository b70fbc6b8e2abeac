package types

import "fmt"

// Narrative section arities are a fixed contract with the expansion service.
const (
	StrengthCount            = 3
	DevelopmentAreaCount     = 3
	PersonalDevelopmentCount = 2
	OrgSupportCount          = 2
)

// NarrativeEntry is one titled section of expanded narrative text.
type NarrativeEntry struct {
	Title     string `json:"title"`
	Paragraph string `json:"paragraph"`
}

// NarrativeRecord is the structured output of the narrative expansion
// service. Arity is fixed: any deviation is a contract violation and the
// record must be rejected before it reaches the document populator.
type NarrativeRecord struct {
	PersonalProfile      string           `json:"personal_profile"`
	Strengths            []NarrativeEntry `json:"strengths"`
	DevelopmentAreas     []NarrativeEntry `json:"development_areas"`
	FutureConsiderations string           `json:"future_considerations"`
	PersonalDevelopment  []NarrativeEntry `json:"personal_development"`
	OrgSupport           []NarrativeEntry `json:"org_support"`
}

// Validate enforces the fixed shape of the record.
func (n *NarrativeRecord) Validate() error {
	if n.PersonalProfile == "" {
		return fmt.Errorf("personal_profile must not be empty")
	}
	if n.FutureConsiderations == "" {
		return fmt.Errorf("future_considerations must not be empty")
	}
	sections := []struct {
		name    string
		entries []NarrativeEntry
		want    int
	}{
		{"strengths", n.Strengths, StrengthCount},
		{"development_areas", n.DevelopmentAreas, DevelopmentAreaCount},
		{"personal_development", n.PersonalDevelopment, PersonalDevelopmentCount},
		{"org_support", n.OrgSupport, OrgSupportCount},
	}
	for _, s := range sections {
		if len(s.entries) != s.want {
			return fmt.Errorf("%s must contain exactly %d entries, got %d", s.name, s.want, len(s.entries))
		}
		for i, e := range s.entries {
			if e.Title == "" || e.Paragraph == "" {
				return fmt.Errorf("%s[%d] must have a non-empty title and paragraph", s.name, i)
			}
		}
	}
	return nil
}
