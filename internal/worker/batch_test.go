package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/etchant/internal/model"
)

// mockRecommender implements Recommender
type mockRecommender struct {
	fail map[string]bool
}

func (m *mockRecommender) RecommendQuery(ctx context.Context, q Query) (*model.Report, error) {
	time.Sleep(5 * time.Millisecond)
	if m.fail[q.Material] {
		return nil, errors.New("recommend error")
	}
	return &model.Report{
		Material: model.Material{Name: q.Material},
		Filters:  model.Filters{Purpose: q.Purpose, ApplicationContext: q.Context},
	}, nil
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_Process(t *testing.T) {
	processor := NewBatchProcessor(&mockRecommender{}, 3)

	queries := []Query{
		{Material: "304"},
		{Material: "6061", Purpose: model.PurposeGrainBoundaries},
		{Material: "1018", Context: model.ContextQualityControl},
		{Material: "Ti-6Al-4V"},
		{Material: "C260"},
	}

	results := processor.Process(context.Background(), queries)

	if len(results) != len(queries) {
		t.Fatalf("expected %d results, got %d", len(queries), len(results))
	}
	for i, res := range results {
		if res.Index != i {
			t.Errorf("expected result %d in input order, got index %d", i, res.Index)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Query.Material, res.Error)
			continue
		}
		if res.Report.Material.Name != queries[i].Material {
			t.Errorf("expected report for %s, got %s", queries[i].Material, res.Report.Material.Name)
		}
	}
	if results[1].Report.Filters.Purpose != model.PurposeGrainBoundaries {
		t.Errorf("expected purpose to reach the recommender, got %q", results[1].Report.Filters.Purpose)
	}
}

func TestBatchProcessor_Process_Error(t *testing.T) {
	processor := NewBatchProcessor(&mockRecommender{fail: map[string]bool{"bad": true}}, 2)

	results := processor.Process(context.Background(), []Query{{Material: "good"}, {Material: "bad"}})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Error != nil {
		t.Errorf("expected success for first query, got %v", results[0].Error)
	}
	if results[1].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[1].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockRecommender{}, 2)

	results := processor.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadQueriesFromFile(t *testing.T) {
	path := writeTemp(t, `304 Stainless Steel
# comment
6061-T6 | grain-boundaries

1018 | general | quality-control
304 Stainless Steel
  Ti-6Al-4V  |  | research  `)

	queries, err := ReadQueriesFromFile(path)
	if err != nil {
		t.Fatalf("ReadQueriesFromFile failed: %v", err)
	}

	expected := []Query{
		{Material: "304 Stainless Steel"},
		{Material: "6061-T6", Purpose: model.PurposeGrainBoundaries},
		{Material: "1018", Purpose: model.PurposeGeneral, Context: model.ContextQualityControl},
		{Material: "Ti-6Al-4V", Context: model.ContextResearch},
	}
	if len(queries) != len(expected) {
		t.Fatalf("expected %d queries, got %d: %+v", len(expected), len(queries), queries)
	}
	for i, q := range queries {
		if q != expected[i] {
			t.Errorf("query %d: expected %+v, got %+v", i, expected[i], q)
		}
	}
}

func TestReadQueriesFromFile_InvalidPurpose(t *testing.T) {
	path := writeTemp(t, "304\n316L | sparkles\n")

	_, err := ReadQueriesFromFile(path)
	if err == nil {
		t.Fatal("expected error for unknown purpose")
	}
	if !errors.Is(err, model.ErrInvalidPurpose) {
		t.Errorf("expected ErrInvalidPurpose, got %v", err)
	}
}

func TestReadQueriesFromFile_NonExistent(t *testing.T) {
	if _, err := ReadQueriesFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		line    string
		wantErr bool
	}{
		{"304", false},
		{"304 | carbides", false},
		{"304 | carbides | failure-analysis", false},
		{" | carbides", true},
		{"304 | carbides | research | extra", true},
		{"304 | | nowhere", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseQuery(tt.line)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseQuery(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
		})
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeTemp(t, "304\n6061\n# comment\n\n1018\n")
	processor := NewBatchProcessor(&mockRecommender{}, 2)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestQueryResult_GetError(t *testing.T) {
	r1 := &QueryResult{Query: Query{Material: "304"}}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("recommend failed")
	r2 := &QueryResult{Query: Query{Material: "304"}, Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
