package services

import (
	"context"
	"strings"
)

// RemoteSigner is a signer entry of the provider create payload.
type RemoteSigner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RemoteCreateRequest is the payload handed to the signature provider.
// Exactly one of MarkdownText and PDFURL is set.
type RemoteCreateRequest struct {
	Name         string
	Signers      []RemoteSigner
	MarkdownText string
	PDFURL       string
}

// ProviderResponse is the provider's decoded payload. The provider's schema
// is loose (alternate key names, optional fields), so the payload is kept
// generic and read through the accessors below, which normalize it in one
// place.
type ProviderResponse map[string]interface{}

// ProviderSignerState is one signer entry of a provider response.
type ProviderSignerState struct {
	Email  string
	Token  string
	Status string
}

// OpenID reads the remote document id, falling back from "open_id" to "id"
// (the provider uses both depending on the endpoint).
func (p ProviderResponse) OpenID() int64 {
	for _, key := range []string{"open_id", "id"} {
		if id, ok := asInt64(p[key]); ok {
			return id
		}
	}
	return 0
}

// Token reads the remote document token, defaulting to empty.
func (p ProviderResponse) Token() string {
	return asString(p["token"])
}

// Status reads the raw provider status, defaulting to empty.
func (p ProviderResponse) Status() string {
	return asString(p["status"])
}

// Signers reads the signer entries, tolerating absent or malformed lists.
func (p ProviderResponse) Signers() []ProviderSignerState {
	raw, ok := p["signers"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]ProviderSignerState, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, ProviderSignerState{
			Email:  strings.TrimSpace(asString(m["email"])),
			Token:  asString(m["token"]),
			Status: asString(m["status"]),
		})
	}
	return out
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// SignatureGateway is the provider-agnostic client for the e-signature
// provider. Implementations are selected once at construction time from the
// configured operating mode (live, simulated, disabled).
type SignatureGateway interface {
	// CreateDocument submits a document for signing on the company's behalf.
	// A non-success provider response surfaces as *domain.ExternalServiceError.
	CreateDocument(ctx context.Context, apiToken string, req *RemoteCreateRequest) (ProviderResponse, error)

	// GetStatus fetches the remote signing state by token or open id.
	GetStatus(ctx context.Context, apiToken, remoteID string) (ProviderResponse, error)
}
