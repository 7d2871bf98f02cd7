// Package classify derives normalized tags from the free-text fields of a
// catalog material: its category key, alloying elements, carbon level,
// microstructure and heat-treatment state.
//
// Everything here is keyword matching over lowercased text. Tags may overlap
// and no function returns an error; unmatched input yields empty results.
package classify

import (
	"strings"

	"github.com/ppiankov/etchant/internal/model"
)

// Category keys used to join materials to etchant compatibility lists
const (
	CarbonSteel    = "carbon-steel"
	StainlessSteel = "stainless-steel"
	Aluminum       = "aluminum"
	CopperBrass    = "copper-brass"
	Titanium       = "titanium"
	NickelAlloys   = "nickel-alloys"
	CastIron       = "cast-iron"
	ToolSteel      = "tool-steel"
)

type categoryRule struct {
	key      string
	keywords []string
}

// mainRules are tested in order; each covers a disjoint keyword family
var mainRules = []categoryRule{
	{StainlessSteel, []string{"stainless"}},
	{Aluminum, []string{"aluminum", "aluminium"}},
	{CopperBrass, []string{"copper", "brass", "bronze"}},
	{Titanium, []string{"titanium"}},
	{NickelAlloys, []string{"nickel", "inconel", "hastelloy", "monel", "superalloy"}},
	{CarbonSteel, []string{"carbon steel", "carbon-steel", "mild steel", "low alloy", "low-alloy", "alloy steel"}},
}

// lateRules run only when no main rule matched
var lateRules = []categoryRule{
	{CastIron, []string{"cast iron", "cast-iron", "ductile", "nodular", "gray iron", "grey iron", "malleable"}},
	{ToolSteel, []string{"tool steel", "tool-steel"}},
}

// CategoryKey maps a material to its normalized category key. When no rule
// matches, the trimmed lowercased raw category is returned.
func CategoryKey(m model.Material) string {
	text := strings.ToLower(m.Category + " " + m.Name)

	for _, rule := range mainRules {
		if containsAny(text, rule.keywords) {
			return rule.key
		}
	}
	for _, rule := range lateRules {
		if containsAny(text, rule.keywords) {
			return rule.key
		}
	}

	return strings.ToLower(strings.TrimSpace(m.Category))
}

// IsCastIronFamily reports whether the material is a cast iron, including
// ductile and nodular grades named outside the cast-iron category.
func IsCastIronFamily(m model.Material) bool {
	if CategoryKey(m) == CastIron {
		return true
	}
	name := strings.ToLower(m.Name)
	return strings.Contains(name, "ductile") || strings.Contains(name, "nodular")
}

// containsAny reports whether text contains any of the keywords
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
