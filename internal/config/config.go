package config

import (
	"os"
)

// Signature provider operating modes.
const (
	SignatureModeLive      = "live"
	SignatureModeSimulated = "simulated"
	SignatureModeDisabled  = "disabled"
)

// Analysis modes.
const (
	AnalysisModeHeuristic = "heuristic"
	AnalysisModeAssisted  = "assisted"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	JWKSURL     string
	// Signature provider
	SignatureMode    string
	SignatureBaseURL string
	// Analysis
	AnalysisMode    string
	AnthropicAPIKey string
	AnthropicModel  string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:4200"),
		JWKSURL:          getEnv("JWKS_URL", ""),
		SignatureMode:    getEnv("SIGNATURE_MODE", SignatureModeSimulated),
		SignatureBaseURL: getEnv("SIGNATURE_BASE_URL", "https://api.zapsign.com.br/api/v1"),
		AnalysisMode:     getEnv("ANALYSIS_MODE", AnalysisModeHeuristic),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
