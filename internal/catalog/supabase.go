package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ppiankov/etchant/internal/cache"
	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/worker"
)

// SupabaseSource reads the catalog tables through the Supabase REST (PostgREST) API
type SupabaseSource struct {
	baseURL        string
	anonKey        string
	materialsTable string
	etchantsTable  string
	publishedOnly  bool

	fetcher *Fetcher
	limiter *worker.Limiter
	cache   cache.Cache // nil disables response caching
	logger  *zap.Logger
}

// SupabaseOption customizes a SupabaseSource
type SupabaseOption func(*SupabaseSource)

// WithCache caches raw table responses
func WithCache(c cache.Cache) SupabaseOption {
	return func(s *SupabaseSource) { s.cache = c }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) SupabaseOption {
	return func(s *SupabaseSource) { s.logger = l }
}

// WithFetcher replaces the HTTP fetcher
func WithFetcher(f *Fetcher) SupabaseOption {
	return func(s *SupabaseSource) { s.fetcher = f }
}

// NewSupabaseSource creates a PostgREST-backed source from configuration
func NewSupabaseSource(cfg model.SupabaseConfig, httpCfg model.HTTPConfig, opts ...SupabaseOption) *SupabaseSource {
	fetcher := NewFetcher(httpCfg.Timeout, httpCfg.UserAgent, httpCfg.MaxBodyBytes,
		httpCfg.InsecureTLS, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy)
	fetcher.SetMaxAttempts(httpCfg.MaxAttempts)

	s := &SupabaseSource{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		anonKey:        cfg.AnonKey,
		materialsTable: cfg.MaterialsTable,
		etchantsTable:  cfg.EtchantsTable,
		publishedOnly:  cfg.PublishedOnly,
		fetcher:        fetcher,
		limiter:        worker.NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source
func (s *SupabaseSource) Name() string { return model.SourceSupabase }

// Materials implements Source
func (s *SupabaseSource) Materials(ctx context.Context) ([]model.Material, error) {
	q := url.Values{}
	q.Set("select", "*")
	if s.publishedOnly {
		q.Set("status", "eq."+model.StatusPublished)
	}
	q.Set("order", "sort_order.asc")

	var materials []model.Material
	if err := s.getTable(ctx, s.materialsTable, q, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// Etchants implements Source
func (s *SupabaseSource) Etchants(ctx context.Context) ([]model.Etchant, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "name.asc")

	var etchants []model.Etchant
	if err := s.getTable(ctx, s.etchantsTable, q, &etchants); err != nil {
		return nil, err
	}
	return etchants, nil
}

// TableURL builds the PostgREST URL for a table query
func (s *SupabaseSource) TableURL(table string, q url.Values) string {
	return s.baseURL + "/rest/v1/" + url.PathEscape(table) + "?" + q.Encode()
}

func (s *SupabaseSource) getTable(ctx context.Context, table string, q url.Values, out any) error {
	rawURL := s.TableURL(table, q)
	key := cache.CacheKey(rawURL)

	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			if err := json.Unmarshal(data, out); err == nil {
				s.logger.Debug("catalog cache hit", zap.String("table", table))
				return nil
			}
			_ = s.cache.Delete(key)
		}
	}

	if err := s.limiter.Wait(ctx, rawURL); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	headers := map[string]string{}
	if s.anonKey != "" {
		headers["apikey"] = s.anonKey
		headers["Authorization"] = "Bearer " + s.anonKey
	}

	s.logger.Debug("fetching catalog table", zap.String("table", table))
	result, err := s.fetcher.FetchWithRetry(ctx, rawURL, headers)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", table, err)
	}

	if err := json.Unmarshal(result.Body, out); err != nil {
		return fmt.Errorf("decode %s: %w", table, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(key, result.Body, 0); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("table", table), zap.Error(err))
		}
	}
	return nil
}
