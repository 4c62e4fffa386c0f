package handler

import (
	"errors"
	"net/http"

	"zapflow/internal/domain"
	"zapflow/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Provider failures
// surface as 502 with the provider's detail so automation clients can decide
// whether to retry.
func handleError(w http.ResponseWriter, err error) {
	var providerErr *domain.ExternalServiceError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &providerErr):
		httputil.RespondError(w, http.StatusBadGateway, providerErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// PathParam extracts a required path value, responding 400 when missing.
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}
