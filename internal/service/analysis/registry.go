package analysis

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// RiskTerm is a keyword that raises or lowers the heuristic risk score.
type RiskTerm struct {
	Term   string `yaml:"term"`
	Weight int    `yaml:"weight"`
}

// ClauseCheck flags documents that never mention an expected clause term.
type ClauseCheck struct {
	Term string `yaml:"term"`
	Flag string `yaml:"flag"`
}

// KeywordConfig is the embedded keyword configuration driving the heuristic
// analyzer.
type KeywordConfig struct {
	Stopwords []string      `yaml:"stopwords"`
	BaseRisk  int           `yaml:"base_risk"`
	RiskTerms []RiskTerm    `yaml:"risk_terms"`
	Clauses   []ClauseCheck `yaml:"clauses"`

	stopwordSet map[string]bool
}

// LoadKeywordConfig parses the embedded keyword YAML.
func LoadKeywordConfig() (*KeywordConfig, error) {
	data, err := configFiles.ReadFile("config/keywords.yaml")
	if err != nil {
		return nil, fmt.Errorf("read keyword config: %w", err)
	}

	var cfg KeywordConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal keyword config: %w", err)
	}

	cfg.stopwordSet = make(map[string]bool, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		cfg.stopwordSet[w] = true
	}

	return &cfg, nil
}

// IsStopword reports whether the (lower-cased) word is a stopword.
func (c *KeywordConfig) IsStopword(word string) bool {
	return c.stopwordSet[word]
}
