package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"zapflow/internal/domain/services"
)

const (
	assistedSummaryLimit = 600
	assistedRiskFloor    = 20
)

// AssistedAnalyzer layers a model-written summary over the heuristic base:
// topics, risk and extraction still come from the heuristics, only the
// summary is delegated.
type AssistedAnalyzer struct {
	client    *anthropic.Client
	model     string
	heuristic *HeuristicAnalyzer
	logger    *slog.Logger
}

// NewAssistedAnalyzer creates the assisted analyzer.
func NewAssistedAnalyzer(apiKey, model string, heuristic *HeuristicAnalyzer, logger *slog.Logger) (*AssistedAnalyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AssistedAnalyzer{
		client:    &client,
		model:     model,
		heuristic: heuristic,
		logger:    logger,
	}, nil
}

func (a *AssistedAnalyzer) Analyze(ctx context.Context, text string) (*services.AnalysisResult, error) {
	result, err := a.heuristic.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	prompt := "You are a legal assistant. Given the text of a contract, " +
		"produce a two-line summary. Do not repeat the full text; focus on " +
		"the essentials.\n\nText:\n" + text

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 512,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("assisted summary failed: %w", err)
	}

	var summary strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			summary.WriteString(block.Text)
		}
	}
	if s := strings.TrimSpace(summary.String()); s != "" {
		runes := []rune(s)
		if len(runes) > assistedSummaryLimit {
			s = string(runes[:assistedSummaryLimit])
		}
		result.Summary = s
	}

	// Critical terms keep the score from looking too reassuring even when
	// the model's summary reads calm.
	lower := strings.ToLower(text)
	if strings.Contains(lower, "multa") || strings.Contains(lower, "indenização") {
		if result.RiskScore < assistedRiskFloor {
			result.RiskScore = assistedRiskFloor
		}
	}

	return result, nil
}
