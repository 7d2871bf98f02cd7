package score

import (
	"regexp"
	"strings"

	"github.com/ppiankov/etchant/internal/classify"
	"github.com/ppiankov/etchant/internal/model"
)

// purposeKeywords lists the phrases that show an etchant reveals a feature.
// Matching is substring-based against lowercased etchant text.
var purposeKeywords = map[model.Purpose][]string{
	model.PurposeGrainBoundaries: {"grain boundary", "grain boundaries", "grain structure", "grain size", "grain"},
	model.PurposePhases:          {"phase", "phases", "sigma", "delta ferrite", "two-phase"},
	model.PurposeCarbides:        {"carbide", "carbides", "cementite"},
	model.PurposeMartensite:      {"martensite", "martensitic", "lath", "needle"},
	model.PurposePearlite:        {"pearlite", "pearlitic", "lamellar"},
	model.PurposeDendrites:       {"dendrite", "dendritic", "segregation", "coring", "cored"},
	model.PurposeWeldStructure:   {"weld", "heat affected", "haz", "fusion line", "fusion zone"},
	model.PurposeTwins:           {"twin", "twinning"},
	model.PurposeNodularity:      {"graphite", "nodule", "nodular", "nodularity", "spheroidal"},
	model.PurposePriorAustenite:  {"prior austenite", "prior-austenite", "austenite grain"},
	model.PurposeDecarburization: {"decarburiz", "decarb", "case depth", "case hardened", "carburiz"},
}

// genericStructureEtchants are named etchants that generally work on a
// structure even when their description does not mention it
var genericStructureEtchants = map[classify.Microstructure][]string{
	classify.Martensitic: {"nital", "picral", "vilella", "sodium metabisulfite"},
	classify.Austenitic:  {"glyceregia", "kallings", "aqua regia", "oxalic"},
	classify.Ferritic:    {"nital", "vilella"},
	classify.Pearlitic:   {"picral", "nital"},
	classify.Bainitic:    {"picral", "sodium metabisulfite", "nital"},
	classify.Duplex:      {"groesbeck", "murakami"},
}

// colorEtchants distinguish phases by tint in duplex structures
var colorEtchants = []string{"weck", "klemm", "beraha"}

// Nital concentration in an etchant name, e.g. "2% Nital" or "Nital 5 %"
var (
	highConcentration = regexp.MustCompile(`(?:^|[^\d.])(10|[5-9])(?:\.\d+)?\s*%`)
	lowConcentration  = regexp.MustCompile(`(?:^|[^\d.])([23])(?:\.\d+)?\s*%`)
)

// etchantText is the lowercased text of an etchant used for keyword tests
type etchantText struct {
	name         string   // normalized name
	names        []string // normalized name and alternative names
	reveals      string
	results      string
	combined     string // reveals + typical results + name
	electrolytic bool
}

func newEtchantText(e *model.Etchant) etchantText {
	t := etchantText{
		name:         normalizeName(e.Name),
		reveals:      strings.ToLower(e.Reveals),
		results:      strings.ToLower(e.TypicalResults),
		electrolytic: strings.EqualFold(string(e.ApplicationMethod), string(model.MethodElectrolytic)),
	}
	t.names = append(t.names, t.name)
	for _, alt := range e.AlternativeNames {
		if n := normalizeName(alt); n != "" {
			t.names = append(t.names, n)
		}
	}
	t.combined = t.reveals + " " + t.results + " " + t.name
	return t
}

// named reports whether the etchant name contains any of the keys
func (t etchantText) named(keys ...string) bool {
	return containsAny(t.name, keys)
}

// normalizeName lowercases and drops apostrophes so "Kalling's" matches "kallings"
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("'", "", "’", "").Replace(s)
}

// revealedFeatures counts the comma-separated features listed in reveals
func revealedFeatures(reveals string) int {
	n := 0
	for _, part := range strings.Split(reveals, ",") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

// hasHazard reports whether any hazard mentions the keyword
func hasHazard(hazards []string, keyword string) bool {
	for _, h := range hazards {
		if strings.Contains(strings.ToLower(h), keyword) {
			return true
		}
	}
	return false
}

// listsKey reports whether a compatibility list contains the category key
func listsKey(list []string, key string) bool {
	if key == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), key) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func contains(list []string, item string) bool {
	for _, s := range list {
		if s == item {
			return true
		}
	}
	return false
}

// dedupe removes repeated strings, keeping first-seen order
func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
