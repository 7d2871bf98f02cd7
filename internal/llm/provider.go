// Package llm adds an optional narrative summary to a recommendation
// report. The summary is generated after ranking and never changes scores.
package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/etchant/internal/model"
)

// Provider is a text-generation backend
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete returns the model's answer to a system + user prompt
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest is one prompt for a provider
type CompletionRequest struct {
	System    string
	Prompt    string
	Model     string
	MaxTokens int
}

// CompletionResponse is the provider's answer
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	Provider  string // "openai", "anthropic", "ollama" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	Strict    bool
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// systemPrompt frames every request
const systemPrompt = "You are a metallography lab assistant. You explain etchant recommendations " +
	"that were already ranked by a deterministic scoring engine. You never re-rank them."

const defaultMaxTokens = 600

// BuildPrompt builds the user prompt from the top matches of a report.
// Only the report's purchase links may be cited.
func BuildPrompt(report model.Report, maxMatches int) string {
	if maxMatches <= 0 {
		maxMatches = 3
	}

	var b strings.Builder
	m := report.Material
	fmt.Fprintf(&b, "Material: %s (category %s)\n", m.Name, report.CategoryKey)
	if m.Composition != "" {
		fmt.Fprintf(&b, "Composition: %s\n", m.Composition)
	}
	if m.Microstructure != "" {
		fmt.Fprintf(&b, "Microstructure: %s\n", m.Microstructure)
	}
	if m.HeatTreatment != "" {
		fmt.Fprintf(&b, "Heat treatment: %s\n", m.HeatTreatment)
	}
	if report.Filters.Purpose != "" {
		fmt.Fprintf(&b, "Goal: reveal %s\n", strings.ToLower(report.Filters.Purpose.Label()))
	}
	if report.Filters.ApplicationContext != "" {
		fmt.Fprintf(&b, "Application: %s\n", report.Filters.ApplicationContext.Label())
	}

	b.WriteString("\nRanked etchants:\n")
	for i, match := range report.Matches {
		if i >= maxMatches {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%d%% match)\n", match.Rank, match.Etchant.Name, match.Percentage)
		for _, r := range match.Reasons {
			fmt.Fprintf(&b, "   - %s\n", r)
		}
		for _, w := range match.Warnings {
			fmt.Fprintf(&b, "   - WARNING: %s\n", w)
		}
		if match.PurchaseURL != "" {
			fmt.Fprintf(&b, "   - link: %s\n", match.PurchaseURL)
		}
	}

	b.WriteString("\nRULES:\n")
	b.WriteString("1. Refer to the etchants above by their exact names and keep their order.\n")
	b.WriteString("2. Only cite links listed above; cite no other URL.\n")
	b.WriteString("3. Repeat every WARNING that applies to the first etchant.\n")
	b.WriteString("\nWrite 3-5 sentences of practical guidance on which etchant to try first and why.")
	return b.String()
}

var urlPattern = regexp.MustCompile(`https?://[^\s)\]>]+`)

// extractURLs returns the distinct URLs in text, trailing punctuation removed
func extractURLs(text string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:!?'\"")
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}
	return unique
}

// CheckStrict verifies a generated summary against its report: every URL
// must be one of the report's purchase links, and at least one ranked
// etchant must be named.
func CheckStrict(summary string, report model.Report) error {
	allowed := make(map[string]bool)
	for _, u := range report.PurchaseURLs() {
		allowed[u] = true
	}
	for _, u := range extractURLs(summary) {
		if !allowed[u] {
			return fmt.Errorf("summary cites a link outside the report: %s", u)
		}
	}

	if len(report.Matches) == 0 {
		return nil
	}
	lower := strings.ToLower(summary)
	for _, m := range report.Matches {
		if strings.Contains(lower, strings.ToLower(m.Etchant.Name)) {
			return nil
		}
	}
	return fmt.Errorf("summary names none of the recommended etchants")
}
