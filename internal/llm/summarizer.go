package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/etchant/internal/model"
)

// Summarizer turns a ranked report into a short narrative
type Summarizer struct {
	provider Provider
	config   Config
	logger   *zap.Logger
}

// NewSummarizer creates a summarizer. With no provider configured the
// summarizer is disabled and Summarize returns nil.
func NewSummarizer(config Config, logger *zap.Logger) (*Summarizer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config, logger: logger}, nil
}

// NewSummarizerWithProvider wraps an existing provider
func NewSummarizerWithProvider(provider Provider, config Config, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{provider: provider, config: config, logger: logger}
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the configured provider name, or ""
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// Summarize generates the narrative for a report. Empty reports get no
// summary. In strict mode a summary that cites foreign links or names none
// of the ranked etchants is rejected.
func (s *Summarizer) Summarize(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() || report.IsEmpty() {
		return nil, nil
	}

	resp, err := s.provider.Complete(ctx, CompletionRequest{
		System:    systemPrompt,
		Prompt:    BuildPrompt(report, 3),
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.provider.Name(), err)
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		Strict:    s.config.Strict,
		SummaryMD: resp.Text,
	}

	if err := CheckStrict(resp.Text, report); err != nil {
		if s.config.Strict {
			return nil, fmt.Errorf("strict check: %w", err)
		}
		summary.Warnings = append(summary.Warnings, err.Error())
	}

	s.logger.Debug("generated summary",
		zap.String("provider", summary.Provider),
		zap.String("model", summary.Model),
		zap.Int("tokens", resp.TokensUsed))

	return summary, nil
}

// RenderSeparateMarkdown renders a summary as a standalone Markdown file
func RenderSeparateMarkdown(materialName string, summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Narrative summary: %s\n\n", materialName)
	fmt.Fprintf(&b, "_Provider: %s · Model: %s · Strict: %t_\n\n", summary.Provider, summary.Model, summary.Strict)
	b.WriteString(strings.TrimSpace(summary.SummaryMD))
	b.WriteString("\n")
	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	b.WriteString("\n---\n\nThis text was generated from an already-ranked report. It does not change the ranking.\n")
	return b.String()
}
