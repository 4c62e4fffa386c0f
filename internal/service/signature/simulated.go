package signature

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"zapflow/internal/domain/services"
)

// simulatedGateway synthesizes plausible provider responses without any
// network call, so the full send/sync flow can be exercised in development
// and tests.
type simulatedGateway struct {
	logger *slog.Logger
}

func newSimulatedGateway(logger *slog.Logger) services.SignatureGateway {
	return &simulatedGateway{logger: logger}
}

func (g *simulatedGateway) CreateDocument(ctx context.Context, apiToken string, req *services.RemoteCreateRequest) (services.ProviderResponse, error) {
	signers := make([]interface{}, 0, len(req.Signers))
	for _, s := range req.Signers {
		signers = append(signers, map[string]interface{}{
			"email":  s.Email,
			"token":  uuid.NewString(),
			"status": "pending",
		})
	}

	resp := services.ProviderResponse{
		"open_id": int64(10_000 + rand.IntN(90_000)),
		"token":   uuid.NewString(),
		"status":  "sent",
		"signers": signers,
	}

	g.logger.Debug("simulated provider create", "open_id", resp.OpenID(), "signers", len(signers))
	return resp, nil
}

func (g *simulatedGateway) GetStatus(ctx context.Context, apiToken, remoteID string) (services.ProviderResponse, error) {
	return services.ProviderResponse{
		"token":  remoteID,
		"status": "sent",
	}, nil
}
