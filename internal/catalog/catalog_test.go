package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/etchant/internal/classify"
	"github.com/ppiankov/etchant/internal/model"
)

func loadEmbeddedCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load(context.Background(), EmbeddedSource{})
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}
	return cat
}

func TestEmbeddedCatalog(t *testing.T) {
	cat := loadEmbeddedCatalog(t)

	if cat.Source() != model.SourceEmbedded {
		t.Errorf("Expected source %q, got %q", model.SourceEmbedded, cat.Source())
	}
	if len(cat.Materials()) == 0 || len(cat.Etchants()) == 0 {
		t.Fatalf("Expected materials and etchants, got %d and %d", len(cat.Materials()), len(cat.Etchants()))
	}

	for _, m := range cat.Materials() {
		if !m.IsPublished() {
			t.Errorf("draft material %s leaked", m.Name)
		}
	}
	for _, e := range cat.Etchants() {
		if !e.IsPublished() {
			t.Errorf("archived etchant %s leaked", e.Name)
		}
		if strings.Contains(e.SafetyNotes, "<") {
			t.Errorf("notes of %s not flattened: %q", e.Name, e.SafetyNotes)
		}
	}

	prev := -1
	for _, m := range cat.Materials() {
		if m.SortOrder < prev {
			t.Errorf("Expected materials sorted by sort order, got %d after %d", m.SortOrder, prev)
		}
		prev = m.SortOrder
	}

	stats := cat.Stats()
	if stats.Materials != len(cat.Materials()) || stats.Etchants != len(cat.Etchants()) {
		t.Errorf("Expected stats %d/%d, got %d/%d", len(cat.Materials()), len(cat.Etchants()), stats.Materials, stats.Etchants)
	}
}

func TestEmbeddedCatalog_EveryQuickPickResolves(t *testing.T) {
	cat := loadEmbeddedCatalog(t)

	if n := len(QuickPicks()); n != 6 {
		t.Fatalf("Expected 6 quick picks, got %d", n)
	}
	for _, opt := range QuickPicks() {
		m, ok := cat.QuickPick(opt.Key)
		if !ok {
			t.Fatalf("no material for quick pick %s", opt.Key)
		}
		if key := classify.CategoryKey(m); key != opt.Key {
			t.Errorf("Expected %s to resolve to key %q, got %q", m.Name, opt.Key, key)
		}

		byLabel, ok := cat.QuickPick(opt.Label)
		if !ok || byLabel.ID != m.ID {
			t.Errorf("Expected label %q to resolve to %s, got %q (%v)", opt.Label, m.ID, byLabel.ID, ok)
		}
	}

	if _, ok := cat.QuickPick("unobtainium"); ok {
		t.Error("Expected unknown quick pick to fail")
	}
}

func TestCatalog_MaterialLookup(t *testing.T) {
	cat := loadEmbeddedCatalog(t)

	for _, q := range []string{"mat-304", "304-stainless-steel", "304 stainless steel", "UNS S30400"} {
		m, err := cat.Material(q)
		if err != nil {
			t.Fatalf("Material(%q): %v", q, err)
		}
		if m.ID != "mat-304" {
			t.Errorf("Material(%q): expected mat-304, got %s", q, m.ID)
		}
	}

	if _, err := cat.Material("Experimental Alloy X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected draft material to be not found, got %v", err)
	}
	if _, err := cat.Material("  "); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected blank query to be not found, got %v", err)
	}
}

func TestCatalog_ResolveMaterial(t *testing.T) {
	cat := loadEmbeddedCatalog(t)

	for query, want := range map[string]string{"Titanium": "mat-ti64", "inconel": "mat-in718"} {
		m, err := cat.ResolveMaterial(query)
		if err != nil {
			t.Fatalf("ResolveMaterial(%q): %v", query, err)
		}
		if m.ID != want {
			t.Errorf("ResolveMaterial(%q): expected %s, got %s", query, want, m.ID)
		}
	}

	if _, err := cat.ResolveMaterial("zzz-no-such-thing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_EtchantLookup(t *testing.T) {
	cat := loadEmbeddedCatalog(t)

	e, err := cat.Etchant("FeCl3 etchant")
	if err != nil {
		t.Fatalf("Etchant lookup failed: %v", err)
	}
	if e.ID != "et-fecl3" {
		t.Errorf("Expected et-fecl3, got %s", e.ID)
	}

	if _, err := cat.Etchant("Legacy Chromic Etch"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected archived etchant to be not found, got %v", err)
	}
}

func TestCatalog_SearchMaterials(t *testing.T) {
	materials := []model.Material{
		{ID: "a", Name: "Brass C360", Category: "Copper Alloys", SortOrder: 5},
		{ID: "b", Name: "Cartridge Brass", Category: "Copper Alloys", Featured: true, SortOrder: 9},
		{ID: "c", Name: "Naval Bronze", Category: "Copper Alloys", Tags: []string{"brass-like"}, SortOrder: 1},
		{ID: "d", Name: "1018", Category: "Carbon Steel", AlternativeNames: []string{"mild steel"}},
	}
	cat := New("test", materials, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"BRASS", []string{"b", "c", "a"}},
		{"mild", []string{"d"}},
		{"", []string{"b"}},
		{"titanium", nil},
	}

	for _, tt := range tests {
		var got []string
		for _, m := range cat.SearchMaterials(tt.query) {
			got = append(got, m.ID)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SearchMaterials(%q): expected %v, got %v", tt.query, tt.want, got)
		}
	}
}

func TestNew_NormalizesHardness(t *testing.T) {
	materials := []model.Material{
		{ID: "a", Name: "D2", HardnessCategory: "Very Hard"},
		{ID: "b", Name: "O1", HardnessCategory: "very_hard"},
		{ID: "c", Name: "1008", HardnessCategory: " Soft "},
		{ID: "d", Name: "Unknown"},
	}
	want := []model.HardnessCategory{model.HardnessVeryHard, model.HardnessVeryHard, model.HardnessSoft, ""}

	cat := New("test", materials, nil)
	for i, m := range cat.Materials() {
		if m.HardnessCategory != want[i] {
			t.Errorf("%s: expected hardness %q, got %q", m.Name, want[i], m.HardnessCategory)
		}
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
materials:
  - id: m1
    name: Test Steel
    category: Carbon Steel
etchants:
  - id: e1
    name: Nital 2%
    compatible_materials: [carbon-steel]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	cat, err := Load(context.Background(), NewFileSource(path))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Source() != model.SourceFile {
		t.Errorf("Expected source %q, got %q", model.SourceFile, cat.Source())
	}
	if len(cat.Materials()) != 1 || len(cat.Etchants()) != 1 {
		t.Fatalf("Expected 1 material and 1 etchant, got %d and %d", len(cat.Materials()), len(cat.Etchants()))
	}
	if got := cat.Etchants()[0].CompatibleMaterials; !reflect.DeepEqual(got, []string{"carbon-steel"}) {
		t.Errorf("Expected [carbon-steel], got %v", got)
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := Load(context.Background(), NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")))
	if err == nil || !strings.Contains(err.Error(), "file catalog") {
		t.Errorf("Expected file catalog error, got %v", err)
	}
}

func TestProductLink(t *testing.T) {
	shop := "https://shop.example.com/"

	tests := []struct {
		name    string
		etchant model.Etchant
		want    string
	}{
		{"explicit url", model.Etchant{Name: "Nital", ProductURL: "https://shop.example.com/p/nital"}, "https://shop.example.com/p/nital"},
		{"explicit wins over stock flag", model.Etchant{Name: "Nital", ProductURL: "https://x.test/n", PaceProductAvailable: true}, "https://x.test/n"},
		{"stocked falls back to search", model.Etchant{Name: "Kalling's No. 2", PaceProductAvailable: true}, "https://shop.example.com/search?q=Kalling%27s+No.+2"},
		{"not stocked", model.Etchant{Name: "Stead's Reagent"}, ""},
		{"bad scheme ignored", model.Etchant{Name: "X", ProductURL: "javascript:alert(1)"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProductLink(tt.etchant, shop); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	if got := ProductLink(model.Etchant{Name: "Nital", PaceProductAvailable: true}, ""); got != "" {
		t.Errorf("Expected no link without a shop URL, got %q", got)
	}
	if got := Linker(shop)(model.Etchant{ProductURL: "https://x.test/n"}); got != "https://x.test/n" {
		t.Errorf("Expected explicit URL from linker, got %q", got)
	}
}
