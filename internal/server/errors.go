package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/report-engine/internal/deck"
	"github.com/jonathan/report-engine/internal/narrative"
	"github.com/jonathan/report-engine/internal/scoring"
)

// HTTPStatus maps pipeline errors to HTTP status codes. Bad input is the
// client's fault, a drifted template is ours, and a misbehaving model is
// upstream's.
func HTTPStatus(err error) int {
	var (
		invalidRating  *scoring.InvalidRatingError
		missingTrait   *scoring.MissingTraitError
		validationErrs validator.ValidationErrors
		templateErr    *deck.TemplateStructureError
		expansionErr   *narrative.ExpansionError
	)

	switch {
	case errors.As(err, &invalidRating), errors.As(err, &missingTrait), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &templateErr):
		return http.StatusInternalServerError
	case errors.As(err, &expansionErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
