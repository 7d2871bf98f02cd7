package model

import (
	"errors"
	"testing"
)

func TestParsePurpose(t *testing.T) {
	tests := []struct {
		in      string
		want    Purpose
		wantErr bool
	}{
		{"", "", false},
		{"  Grain-Boundaries ", PurposeGrainBoundaries, false},
		{"nodularity", PurposeNodularity, false},
		{"shininess", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePurpose(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePurpose(%q): expected error=%v, got %v", tt.in, tt.wantErr, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidPurpose) {
			t.Errorf("Expected ErrInvalidPurpose, got %v", err)
		}
		if got != tt.want {
			t.Errorf("ParsePurpose(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseContext(t *testing.T) {
	got, err := ParseContext("failure-analysis")
	if err != nil || got != ContextFailureAnalysis {
		t.Errorf("Expected failure-analysis, got %q (%v)", got, err)
	}
	if _, err := ParseContext("kitchen"); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("Expected ErrInvalidContext, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	if n := len(PurposeOptions()); n != 12 {
		t.Errorf("Expected 12 purposes, got %d", n)
	}
	if n := len(ContextOptions()); n != 6 {
		t.Errorf("Expected 6 contexts, got %d", n)
	}
	if PurposeWeldStructure.Label() != "Weld structure / HAZ" {
		t.Errorf("Unexpected label %q", PurposeWeldStructure.Label())
	}
	if PurposeGeneral.IsFilter() || Purpose("").IsFilter() || !PurposeCarbides.IsFilter() {
		t.Error("Expected only specific purposes to filter")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}

	cfg := DefaultConfig()
	cfg.LLM.Provider = "gemini"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected unknown LLM provider to fail")
	}

	cfg = DefaultConfig()
	cfg.LLM.Provider = "anthropic"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected anthropic to validate, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Catalog.Source = SourceSupabase
	if err := cfg.Validate(); err == nil {
		t.Error("Expected supabase source without URL to fail")
	}

	cfg = DefaultConfig()
	cfg.Catalog.Source = SourceFile
	if err := cfg.Validate(); err == nil {
		t.Error("Expected file source without path to fail")
	}

	cfg = DefaultConfig()
	cfg.Output.MaxResults = 50
	if err := cfg.Validate(); err == nil {
		t.Error("Expected max results above 10 to fail")
	}
}

func TestReportPurchaseURLs(t *testing.T) {
	r := Report{Matches: []RankedMatch{
		{PurchaseURL: "https://a"},
		{},
		{PurchaseURL: "https://b"},
	}}
	urls := r.PurchaseURLs()
	if len(urls) != 2 || urls[0] != "https://a" || urls[1] != "https://b" {
		t.Errorf("Expected two purchase URLs, got %v", urls)
	}
	if r.IsEmpty() {
		t.Error("Expected non-empty report")
	}
}

func TestHardnessNormalize(t *testing.T) {
	tests := []struct {
		in   HardnessCategory
		want HardnessCategory
	}{
		{"very-hard", HardnessVeryHard},
		{"Very Hard", HardnessVeryHard},
		{"very_hard", HardnessVeryHard},
		{"  VERY  HARD ", HardnessVeryHard},
		{"Hard", HardnessHard},
		{"soft", HardnessSoft},
		{"", ""},
	}

	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}

	if got := HardnessCategory("Very Hard").Label(); got != "very hard" {
		t.Errorf("Expected label %q, got %q", "very hard", got)
	}
}
