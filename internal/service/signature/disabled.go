package signature

import (
	"context"

	"zapflow/internal/domain/services"
)

// disabledGateway is the inert mode: creates look like drafts with no remote
// identifiers and status polls report draft. Used when no provider account is
// configured.
type disabledGateway struct{}

func newDisabledGateway() services.SignatureGateway {
	return &disabledGateway{}
}

func (g *disabledGateway) CreateDocument(ctx context.Context, apiToken string, req *services.RemoteCreateRequest) (services.ProviderResponse, error) {
	return services.ProviderResponse{
		"token":  "",
		"status": "draft",
	}, nil
}

func (g *disabledGateway) GetStatus(ctx context.Context, apiToken, remoteID string) (services.ProviderResponse, error) {
	return services.ProviderResponse{
		"token":  remoteID,
		"status": "draft",
	}, nil
}
