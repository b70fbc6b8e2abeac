package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *ReportRequest {
	return &ReportRequest{
		CandidateName:  "Jane Doe",
		RoleAndCompany: "VP Engineering, Acme Corp",
		RawNotes:       "Strong strategic thinker. Needs delegation practice.",
		SummaryRatings: SummaryRatings{
			FitForRole:           4,
			Capabilities:         3,
			Potential:            5,
			FutureConsiderations: 3,
		},
		TraitRatings: map[string]Rating{"mission": IntRating(4)},
	}
}

func TestReportRequestValidate(t *testing.T) {
	require.NoError(t, validRequest().Validate())
}

func TestReportRequestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ReportRequest)
	}{
		{"missing candidate name", func(r *ReportRequest) { r.CandidateName = "" }},
		{"missing role", func(r *ReportRequest) { r.RoleAndCompany = "" }},
		{"missing notes", func(r *ReportRequest) { r.RawNotes = "" }},
		{"blank notes", func(r *ReportRequest) { r.RawNotes = "   \n\t" }},
		{"no trait ratings", func(r *ReportRequest) { r.TraitRatings = nil }},
		{"summary rating too low", func(r *ReportRequest) { r.SummaryRatings.Potential = 0 }},
		{"summary rating too high", func(r *ReportRequest) { r.SummaryRatings.FitForRole = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestReasoningScoresValidation(t *testing.T) {
	r := validRequest()
	r.ReasoningScores = &ReasoningScores{Verbal: 50, Numerical: 62, Abstract: 48, Overall: 55}
	require.NoError(t, r.Validate())

	r.ReasoningScores.Overall = 100
	assert.Error(t, r.Validate())
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Jane Doe", "Executive_Report_Jane_Doe.pptx"},
		{"extra spaces collapsed", "  Jane   Doe ", "Executive_Report_Jane_Doe.pptx"},
		{"three part name", "Jane Q Doe", "Executive_Report_Jane_Q_Doe.pptx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			r.CandidateName = tt.input
			assert.Equal(t, tt.expected, r.OutputFileName())
		})
	}
}
