// Package pipeline wires the catalog, the scorer, the renderers and the
// optional narrative summary into one recommendation flow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/etchant/internal/cache"
	"github.com/ppiankov/etchant/internal/catalog"
	"github.com/ppiankov/etchant/internal/classify"
	"github.com/ppiankov/etchant/internal/llm"
	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/render"
	"github.com/ppiankov/etchant/internal/score"
	"github.com/ppiankov/etchant/internal/worker"
)

// ErrEmptyQuery is returned when no material was given
var ErrEmptyQuery = errors.New("material query is empty")

// Pipeline orchestrates catalog loading, scoring and rendering
type Pipeline struct {
	config     *model.Config
	source     catalog.Source
	scorer     *score.Scorer
	renderer   *render.Renderer
	summarizer *llm.Summarizer // nil when no LLM provider is configured
	linkFor    func(model.Etchant) string
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.Mutex
	catalog *catalog.Catalog
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithSource overrides the catalog source selected by the config
func WithSource(src catalog.Source) Option {
	return func(p *Pipeline) { p.source = src }
}

// WithLogger sets the pipeline logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithSummarizer overrides the summarizer built from the LLM config
func WithSummarizer(s *llm.Summarizer) Option {
	return func(p *Pipeline) { p.summarizer = s }
}

// NewPipeline creates a pipeline for the given configuration. A broken
// LLM configuration disables the summary with a warning; it never
// prevents recommendations.
func NewPipeline(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		config:   cfg,
		scorer:   score.NewScorer(cfg.Output.MaxResults),
		renderer: render.NewRenderer(cfg.Output.IncludeFooter),
		linkFor:  catalog.Linker(cfg.Catalog.ShopBase),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	if p.source == nil {
		src, err := NewSource(cfg, p.logger)
		if err != nil {
			return nil, err
		}
		p.source = src
	}

	if p.summarizer == nil && cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM, cfg.HTTP), p.logger)
		if err != nil {
			p.logger.Warn("LLM summary disabled", zap.Error(err))
		} else {
			p.summarizer = s
		}
	}

	return p, nil
}

// NewSource builds the catalog source named by cfg.Catalog.Source
func NewSource(cfg *model.Config, logger *zap.Logger) (catalog.Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Catalog.Source {
	case model.SourceEmbedded, "":
		return catalog.EmbeddedSource{}, nil
	case model.SourceFile:
		if cfg.Catalog.File == "" {
			return nil, fmt.Errorf("catalog.file is required for the file source")
		}
		return catalog.NewFileSource(cfg.Catalog.File), nil
	case model.SourceSupabase:
		if cfg.Supabase.URL == "" {
			return nil, fmt.Errorf("supabase.url is required for the supabase source")
		}
		c := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL)
		return catalog.NewSupabaseSource(cfg.Supabase, cfg.HTTP,
			catalog.WithCache(c),
			catalog.WithLogger(logger),
		), nil
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}

// Catalog loads the catalog on first use. A failed load is not memoized,
// so the next call tries again.
func (p *Pipeline) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.catalog != nil {
		return p.catalog, nil
	}

	start := time.Now()
	c, err := catalog.Load(ctx, p.source)
	if err != nil {
		p.logger.Error("catalog load failed", zap.String("source", p.source.Name()), zap.Error(err))
		return nil, err
	}

	stats := c.Stats()
	p.logger.Info("catalog loaded",
		zap.String("source", stats.Source),
		zap.Int("materials", stats.Materials),
		zap.Int("etchants", stats.Etchants),
		zap.Duration("took", time.Since(start)))

	p.catalog = c
	return c, nil
}

// Request is one recommendation request
type Request struct {
	MaterialQuery string
	Purpose       model.Purpose
	Context       model.ApplicationContext
}

// Recommend resolves the material and ranks the catalog's etchants for it
func (p *Pipeline) Recommend(ctx context.Context, req Request) (*model.Report, error) {
	if strings.TrimSpace(req.MaterialQuery) == "" {
		return nil, ErrEmptyQuery
	}

	cat, err := p.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	material, err := cat.ResolveMaterial(req.MaterialQuery)
	if err != nil {
		return nil, err
	}

	return p.RecommendFor(ctx, cat, material, req.Purpose, req.Context), nil
}

// RecommendFor ranks the catalog for an already-resolved material
func (p *Pipeline) RecommendFor(ctx context.Context, cat *catalog.Catalog, material model.Material, purpose model.Purpose, appCtx model.ApplicationContext) *model.Report {
	etchants := cat.Etchants()
	matches := p.scorer.Recommend(material, etchants, purpose, appCtx)

	stats := cat.Stats()
	stats.Excluded = score.CountExcluded(material, etchants)

	report := &model.Report{
		ID:          uuid.NewString(),
		GeneratedAt: p.now().UTC(),
		Material:    material,
		CategoryKey: classify.CategoryKey(material),
		Filters: model.Filters{
			Purpose:            purpose,
			ApplicationContext: appCtx,
		},
		Matches: score.Rank(matches, p.linkFor),
		Catalog: stats,
	}

	p.logger.Debug("recommendation computed",
		zap.String("report_id", report.ID),
		zap.String("material", material.ID),
		zap.String("purpose", string(purpose)),
		zap.String("context", string(appCtx)),
		zap.Int("matches", len(report.Matches)),
		zap.Int("excluded", stats.Excluded))

	// The summary runs after ranking and never changes it.
	if p.summarizer.IsEnabled() {
		summary, err := p.summarizer.Summarize(ctx, *report)
		if err != nil {
			p.logger.Warn("LLM summary failed", zap.String("report_id", report.ID), zap.Error(err))
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report
}

// RecommendQuery implements worker.Recommender
func (p *Pipeline) RecommendQuery(ctx context.Context, q worker.Query) (*model.Report, error) {
	return p.Recommend(ctx, Request{
		MaterialQuery: q.Material,
		Purpose:       q.Purpose,
		Context:       q.Context,
	})
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *render.Renderer {
	return p.renderer
}

// ProductLink returns the purchase URL for an etchant, or ""
func (p *Pipeline) ProductLink(e model.Etchant) string {
	return p.linkFor(e)
}

// RenderReport writes the report to the requested files and prints the
// terminal summary to out.
func (p *Pipeline) RenderReport(out io.Writer, report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if out == nil {
		out = os.Stdout
	}

	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(out, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(out, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		md := llm.RenderSeparateMarkdown(report.Material.Name, report.LLM)
		if err := p.renderer.RenderLLMMarkdown(md, llmPath); err != nil {
			p.logger.Warn("write LLM summary failed", zap.String("path", llmPath), zap.Error(err))
		} else if verbose {
			_, _ = fmt.Fprintf(out, "✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	p.renderer.WriteSummary(out, report)
	return nil
}
