package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(n int) []NarrativeEntry {
	out := make([]NarrativeEntry, n)
	for i := range out {
		out[i] = NarrativeEntry{Title: "Title", Paragraph: "Paragraph text."}
	}
	return out
}

func validNarrative() *NarrativeRecord {
	return &NarrativeRecord{
		PersonalProfile:      "A profile paragraph.",
		Strengths:            entries(3),
		DevelopmentAreas:     entries(3),
		FutureConsiderations: "A future considerations paragraph.",
		PersonalDevelopment:  entries(2),
		OrgSupport:           entries(2),
	}
}

func TestNarrativeRecordValidate(t *testing.T) {
	require.NoError(t, validNarrative().Validate())
}

func TestNarrativeRecordArityViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *NarrativeRecord)
	}{
		{"two strengths", func(r *NarrativeRecord) { r.Strengths = entries(2) }},
		{"four strengths", func(r *NarrativeRecord) { r.Strengths = entries(4) }},
		{"two development areas", func(r *NarrativeRecord) { r.DevelopmentAreas = entries(2) }},
		{"one personal development", func(r *NarrativeRecord) { r.PersonalDevelopment = entries(1) }},
		{"three org support", func(r *NarrativeRecord) { r.OrgSupport = entries(3) }},
		{"empty profile", func(r *NarrativeRecord) { r.PersonalProfile = "" }},
		{"empty future considerations", func(r *NarrativeRecord) { r.FutureConsiderations = "" }},
		{"entry with empty title", func(r *NarrativeRecord) { r.Strengths[1].Title = "" }},
		{"entry with empty paragraph", func(r *NarrativeRecord) { r.OrgSupport[0].Paragraph = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validNarrative()
			tt.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}
