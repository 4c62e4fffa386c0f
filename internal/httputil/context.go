package httputil

import (
	"context"
	"net/http"

	"zapflow/internal/domain/models"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	companyKey contextKey = "company"
)

// WithUserID attaches the authenticated user's id to the request context.
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves the user id, or empty string when absent.
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithCompany attaches the API-key-resolved company to the request context.
func WithCompany(r *http.Request, company *models.Company) *http.Request {
	ctx := context.WithValue(r.Context(), companyKey, company)
	return r.WithContext(ctx)
}

// GetCompany retrieves the company resolved by the automation API key, or
// nil when the request did not come through that surface.
func GetCompany(r *http.Request) *models.Company {
	company, _ := r.Context().Value(companyKey).(*models.Company)
	return company
}
