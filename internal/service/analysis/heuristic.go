package analysis

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"zapflow/internal/domain/services"
)

const (
	maxTopics        = 5
	summaryLength    = 220
	maxRiskScore     = 95
	emptyTextSummary = "(no content supplied)"
)

var (
	wordPattern   = regexp.MustCompile(`[\p{L}\p{N}-]{4,}`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	moneyPattern  = regexp.MustCompile(`R\$\s?\d[\d.,]*`)
	cpfPattern    = regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`)
	cnpjPattern   = regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}\b`)
)

// HeuristicAnalyzer extracts topics, entities, a truncated summary and a
// keyword-driven risk score from contract text. All knobs come from the
// embedded keyword config.
type HeuristicAnalyzer struct {
	config *KeywordConfig
	logger *slog.Logger
}

// NewHeuristicAnalyzer creates the heuristic analyzer.
func NewHeuristicAnalyzer(config *KeywordConfig, logger *slog.Logger) *HeuristicAnalyzer {
	return &HeuristicAnalyzer{config: config, logger: logger}
}

func (a *HeuristicAnalyzer) Analyze(ctx context.Context, text string) (*services.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	result := &services.AnalysisResult{
		Summary:   a.summarize(text),
		Topics:    a.topics(lower),
		RiskScore: a.riskScore(lower),
		Extracted: services.Extraction{
			Emails:  matchAll(emailPattern, text),
			Amounts: matchAll(moneyPattern, text),
			CPF:     matchAll(cpfPattern, text),
			CNPJ:    matchAll(cnpjPattern, text),
		},
		Flags: a.flags(lower),
	}

	return result, nil
}

func (a *HeuristicAnalyzer) summarize(text string) string {
	if text == "" {
		return emptyTextSummary
	}
	runes := []rune(text)
	if len(runes) > summaryLength {
		return string(runes[:summaryLength]) + "..."
	}
	return text
}

// topics ranks non-stopword words by frequency, ties broken alphabetically.
func (a *HeuristicAnalyzer) topics(lower string) []string {
	freq := map[string]int{}
	for _, word := range wordPattern.FindAllString(lower, -1) {
		if a.config.IsStopword(word) {
			continue
		}
		freq[word]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxTopics {
		words = words[:maxTopics]
	}
	return words
}

func (a *HeuristicAnalyzer) riskScore(lower string) int {
	risk := a.config.BaseRisk
	for _, term := range a.config.RiskTerms {
		if strings.Contains(lower, term.Term) {
			risk += term.Weight
		}
	}
	if risk < 0 {
		risk = 0
	}
	if risk > maxRiskScore {
		risk = maxRiskScore
	}
	return risk
}

func (a *HeuristicAnalyzer) flags(lower string) []string {
	flags := []string{}
	for _, clause := range a.config.Clauses {
		if !strings.Contains(lower, clause.Term) {
			flags = append(flags, clause.Flag)
		}
	}
	return flags
}

func matchAll(pattern *regexp.Regexp, text string) []string {
	found := pattern.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}
