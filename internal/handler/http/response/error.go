package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/estock-market/company-service/internal/domain/company"
	"github.com/estock-market/company-service/internal/pkg/validator"
)

var ErrInvalidToken = errors.New("invalid or missing access token")

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Company domain errors
	case errors.Is(err, company.ErrInvalidCompanyCode):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, company.ErrCompanyNotCreated):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
