package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/etchant/internal/model"
)

// Recommender produces a report for one material query
type Recommender interface {
	RecommendQuery(ctx context.Context, q Query) (*model.Report, error)
}

// Query is one material plus optional filters
type Query struct {
	Material string
	Purpose  model.Purpose
	Context  model.ApplicationContext
}

// QueryJob runs one recommendation on the pool
type QueryJob struct {
	Index       int
	Query       Query
	Recommender Recommender
}

// Execute implements Job
func (j *QueryJob) Execute(ctx context.Context) Result {
	report, err := j.Recommender.RecommendQuery(ctx, j.Query)
	return &QueryResult{
		Index:  j.Index,
		Query:  j.Query,
		Report: report,
		Error:  err,
	}
}

// QueryResult is the outcome of a QueryJob
type QueryResult struct {
	Index  int
	Query  Query
	Report *model.Report
	Error  error
}

// GetError implements Result
func (r *QueryResult) GetError() error {
	return r.Error
}

// BatchProcessor runs recommendations for many queries concurrently
type BatchProcessor struct {
	recommender Recommender
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(recommender Recommender, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		recommender: recommender,
		concurrency: concurrency,
	}
}

// Process runs all queries and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, queries []Query) []*QueryResult {
	if len(queries) == 0 {
		return []*QueryResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, q := range queries {
		pool.Submit(&QueryJob{Index: i, Query: q, Recommender: b.recommender})
	}

	results := pool.Wait()

	out := make([]*QueryResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*QueryResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads queries from a file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*QueryResult, error) {
	queries, err := ReadQueriesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	return b.Process(ctx, queries), nil
}

// ReadQueriesFromFile reads one query per line:
//
//	material [| purpose [| context]]
//
// Blank lines and # comments are skipped; repeated lines are read once.
func ReadQueriesFromFile(filePath string) ([]Query, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []Query
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true

		q, err := ParseQuery(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		queries = append(queries, q)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return queries, nil
}

// ParseQuery parses "material | purpose | context"
func ParseQuery(line string) (Query, error) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	q := Query{Material: parts[0]}
	if q.Material == "" {
		return Query{}, fmt.Errorf("empty material in %q", line)
	}
	if len(parts) > 3 {
		return Query{}, fmt.Errorf("too many fields in %q", line)
	}

	var err error
	if len(parts) > 1 {
		if q.Purpose, err = model.ParsePurpose(parts[1]); err != nil {
			return Query{}, err
		}
	}
	if len(parts) > 2 {
		if q.Context, err = model.ParseContext(parts[2]); err != nil {
			return Query{}, err
		}
	}
	return q, nil
}
