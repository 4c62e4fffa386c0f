package signature

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"zapflow/internal/domain"
	"zapflow/internal/domain/services"
)

// providerTimeout bounds every call to the provider. Calls are not retried;
// a failed call surfaces to the caller, who may retry the whole use-case.
const providerTimeout = 20 * time.Second

type liveGateway struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func newLiveGateway(baseURL string, logger *slog.Logger) services.SignatureGateway {
	return &liveGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: providerTimeout},
		logger:  logger,
	}
}

func (g *liveGateway) CreateDocument(ctx context.Context, apiToken string, req *services.RemoteCreateRequest) (services.ProviderResponse, error) {
	payload := map[string]interface{}{
		"name":    req.Name,
		"signers": req.Signers,
	}
	if req.PDFURL != "" {
		payload["url_pdf"] = req.PDFURL
	} else {
		payload["markdown_text"] = req.MarkdownText
	}

	return g.do(ctx, http.MethodPost, g.baseURL+"/docs/", apiToken, payload)
}

func (g *liveGateway) GetStatus(ctx context.Context, apiToken, remoteID string) (services.ProviderResponse, error) {
	return g.do(ctx, http.MethodGet, fmt.Sprintf("%s/docs/%s/", g.baseURL, remoteID), apiToken, nil)
}

func (g *liveGateway) do(ctx context.Context, method, url, apiToken string, payload interface{}) (services.ProviderResponse, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode provider payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call signature provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode >= 400 {
		g.logger.Warn("signature provider error",
			"status", resp.StatusCode,
			"url", url,
		)
		return nil, &domain.ExternalServiceError{Status: resp.StatusCode, Body: string(raw)}
	}

	var decoded services.ProviderResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	return decoded, nil
}
