// Package signature provides the client for the e-signature provider in
// three operating modes: live (real network calls), simulated (synthesized
// responses for deterministic testing) and disabled (inert draft results).
// The mode is fixed at construction; call sites never branch on it.
package signature

import (
	"fmt"
	"log/slog"

	"zapflow/internal/config"
	"zapflow/internal/domain/services"
)

// NewGateway returns the gateway implementation for the configured mode.
func NewGateway(cfg *config.Config, logger *slog.Logger) (services.SignatureGateway, error) {
	switch cfg.SignatureMode {
	case config.SignatureModeLive:
		if cfg.SignatureBaseURL == "" {
			return nil, fmt.Errorf("SIGNATURE_BASE_URL is required in live mode")
		}
		return newLiveGateway(cfg.SignatureBaseURL, logger), nil

	case config.SignatureModeSimulated:
		return newSimulatedGateway(logger), nil

	case config.SignatureModeDisabled:
		return newDisabledGateway(), nil

	default:
		return nil, fmt.Errorf("unsupported signature mode: %s", cfg.SignatureMode)
	}
}
