package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"zapflow/internal/domain"
	"zapflow/internal/domain/repositories"
	"zapflow/internal/httputil"
)

// APIKeyHeader carries the company credential on the automation surface.
const APIKeyHeader = "X-Api-Key"

// APIKeyAuth resolves the X-Api-Key header to a company and attaches it to
// the request context. Unknown or absent keys yield 401.
func APIKeyAuth(companies repositories.CompanyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing api key")
				return
			}

			company, err := companies.GetByAPIToken(r.Context(), key)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					httputil.RespondError(w, http.StatusUnauthorized, "invalid api key")
					return
				}
				logger.Error("api key lookup failed", "error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next.ServeHTTP(w, httputil.WithCompany(r, company))
		})
	}
}
