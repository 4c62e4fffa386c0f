package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zapflow/internal/domain"
	"zapflow/internal/httputil"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: &domain.ValidationError{Message: "bad input"}, wantStatus: http.StatusBadRequest},
		{name: "not found", err: &domain.NotFoundError{Message: "document not found"}, wantStatus: http.StatusNotFound},
		{name: "unauthorized", err: &domain.UnauthorizedError{Message: "nope"}, wantStatus: http.StatusUnauthorized},
		{name: "provider failure", err: &domain.ExternalServiceError{Status: 503, Body: "down"}, wantStatus: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var problem httputil.ProblemDetail
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if problem.Status != tt.wantStatus {
				t.Errorf("problem status = %d, want %d", problem.Status, tt.wantStatus)
			}
		})
	}
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, errors.New("pq: connection reset"))

	var problem httputil.ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if problem.Detail != "internal server error" {
		t.Errorf("Detail = %q, internals must not leak", problem.Detail)
	}
}
