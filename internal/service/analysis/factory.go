// Package analysis implements the text-analysis facade: a heuristic
// keyword analyzer and an optional model-assisted summary mode.
package analysis

import (
	"fmt"
	"log/slog"

	"zapflow/internal/config"
	"zapflow/internal/domain/services"
)

// NewAnalyzer returns the analyzer for the configured mode. Assisted mode
// falls back to the heuristic analyzer when no API key is configured.
func NewAnalyzer(cfg *config.Config, logger *slog.Logger) (services.TextAnalyzer, error) {
	keywords, err := LoadKeywordConfig()
	if err != nil {
		return nil, err
	}
	heuristic := NewHeuristicAnalyzer(keywords, logger)

	switch cfg.AnalysisMode {
	case config.AnalysisModeAssisted:
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("ANTHROPIC_API_KEY not set - falling back to heuristic analysis")
			return heuristic, nil
		}
		return NewAssistedAnalyzer(cfg.AnthropicAPIKey, cfg.AnthropicModel, heuristic, logger)

	case config.AnalysisModeHeuristic:
		return heuristic, nil

	default:
		return nil, fmt.Errorf("unsupported analysis mode: %s", cfg.AnalysisMode)
	}
}
