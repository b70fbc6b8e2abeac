// Package types provides type definitions for structured data used throughout the report-engine system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SummaryRatings holds the four quadrant ratings that drive the slide-3
// indicator markers. All values are on the 1-5 scale.
type SummaryRatings struct {
	FitForRole           int `json:"fit_for_role" validate:"required,min=1,max=5"`
	Capabilities         int `json:"capabilities" validate:"required,min=1,max=5"`
	Potential            int `json:"potential" validate:"required,min=1,max=5"`
	FutureConsiderations int `json:"future_considerations" validate:"required,min=1,max=5"`
}

// ReasoningScores holds the four reasoning percentiles (1-99) shown as
// slide-7 bars. The section is optional; a nil pointer means the slide is
// left untouched.
type ReasoningScores struct {
	Verbal    int `json:"verbal" validate:"required,min=1,max=99"`
	Numerical int `json:"numerical" validate:"required,min=1,max=99"`
	Abstract  int `json:"abstract" validate:"required,min=1,max=99"`
	Overall   int `json:"overall" validate:"required,min=1,max=99"`
}

// ReportRequest is the full input for one report build. It is constructed
// once per request, validated up front, and never persisted.
type ReportRequest struct {
	CandidateName  string `json:"candidate_name" validate:"required,max=80"`
	RoleAndCompany string `json:"role_company" validate:"required,max=120"`

	// RawNotes is the consultant's free-text assessment, sent verbatim to
	// the narrative expander.
	RawNotes string `json:"raw_notes" validate:"required"`

	SummaryRatings SummaryRatings `json:"summary_ratings"`

	// TraitRatings maps each of the 24 trait names (case-insensitive) to a
	// rating. Completeness against the trait vocabulary is enforced by the
	// scoring package, which names the first missing trait.
	TraitRatings map[string]Rating `json:"trait_ratings" validate:"required"`

	ReasoningScores *ReasoningScores `json:"reasoning_scores,omitempty"`
}

// Validate checks the request shape before any external call is made.
func (r *ReportRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.RawNotes) == "" {
		return fmt.Errorf("raw_notes must not be blank")
	}
	if len(r.TraitRatings) == 0 {
		return fmt.Errorf("trait_ratings must not be empty")
	}
	return nil
}

// OutputFileName returns the deterministic report file name for this
// candidate, e.g. "Executive_Report_Jane_Doe.pptx".
func (r *ReportRequest) OutputFileName() string {
	name := strings.Join(strings.Fields(r.CandidateName), "_")
	return fmt.Sprintf("Executive_Report_%s.pptx", name)
}
