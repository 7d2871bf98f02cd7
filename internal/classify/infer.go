package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/etchant/internal/model"
)

// CarbonLevel is a coarse carbon-content bucket
type CarbonLevel string

const (
	CarbonUnknown CarbonLevel = ""
	CarbonLow     CarbonLevel = "low"
	CarbonMedium  CarbonLevel = "medium"
	CarbonHigh    CarbonLevel = "high"
)

// Composition holds the alloying signals found in a material's free text
type Composition struct {
	Chromium   bool
	Nickel     bool
	Molybdenum bool
	Titanium   bool
	Aluminum   bool
	Copper     bool
	Carbon     CarbonLevel
}

// element describes how an alloying element shows up in catalog text
type element struct {
	names     []string       // full names, matched in lowercased composition and name
	symbol    *regexp.Regexp // chemical symbol as a standalone token in lowercased composition
	nameHints []string       // material-name words that imply the element
}

// symbolPattern matches a symbol bounded by non-letters, so "17cr" and
// "ti-6al" match but "crust" and "bal" do not
func symbolPattern(sym string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^a-z])` + strings.ToLower(sym) + `([^a-z]|$)`)
}

var (
	chromium   = element{[]string{"chromium"}, symbolPattern("Cr"), []string{"stainless", "chrome"}}
	nickel     = element{[]string{"nickel"}, symbolPattern("Ni"), []string{"inconel", "monel", "hastelloy", "nickel"}}
	molybdenum = element{[]string{"molybdenum"}, symbolPattern("Mo"), []string{"moly", "316"}}
	titanium   = element{[]string{"titanium"}, symbolPattern("Ti"), []string{"titanium", "ti-6al"}}
	aluminum   = element{[]string{"aluminum", "aluminium"}, symbolPattern("Al"), []string{"aluminum", "aluminium"}}
	copper     = element{[]string{"copper"}, symbolPattern("Cu"), []string{"copper", "brass", "bronze"}}
)

func (e element) present(lowerComposition, lowerName string) bool {
	return containsAny(lowerComposition, e.names) ||
		e.symbol.MatchString(lowerComposition) ||
		containsAny(lowerName, e.nameHints)
}

// Carbon buckets are checked high, then medium, then low. minContent is the
// lowest carbon reading (wt%) that falls in the bucket.
var carbonRules = []struct {
	level      CarbonLevel
	keywords   []string
	minContent float64
}{
	{CarbonHigh, []string{"high carbon", "high-carbon"}, 0.6},
	{CarbonMedium, []string{"medium carbon", "medium-carbon"}, 0.3},
	{CarbonLow, []string{"low carbon", "low-carbon", "mild"}, 0},
}

// A carbon reading is a number tied to a carbon token: "c 0.45", "carbon: 1.0"
// or "0.6% c". Numbers next to other elements ("mn 1.0") are ignored.
var (
	carbonAfter  = regexp.MustCompile(`(?:^|[^a-z])c(?:arbon)?\s*[:=]?\s*(\d*\.?\d+)`)
	carbonBefore = regexp.MustCompile(`(\d*\.?\d+)\s*%?\s*c(?:arbon)?(?:[^a-z]|$)`)
)

// carbonContent returns the first carbon reading in a lowercased composition.
// For a range like "c 0.95-1.10" that is the lower bound.
func carbonContent(lowerComposition string) (float64, bool) {
	for _, re := range []*regexp.Regexp{carbonAfter, carbonBefore} {
		m := re.FindStringSubmatch(lowerComposition)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}

// AnalyzeComposition infers alloying signals from the composition and name.
// Element tests are substring and token matches on lowercased text; only the
// carbon reading is parsed as a number.
func AnalyzeComposition(m model.Material) Composition {
	lowerComp := strings.ToLower(m.Composition)
	lowerName := strings.ToLower(m.Name)

	c := Composition{
		Chromium:   chromium.present(lowerComp, lowerName),
		Nickel:     nickel.present(lowerComp, lowerName),
		Molybdenum: molybdenum.present(lowerComp, lowerName),
		Titanium:   titanium.present(lowerComp, lowerName),
		Aluminum:   aluminum.present(lowerComp, lowerName),
		Copper:     copper.present(lowerComp, lowerName),
	}

	text := lowerComp + " " + lowerName
	content, measured := carbonContent(lowerComp)
	for _, rule := range carbonRules {
		if containsAny(text, rule.keywords) || (measured && content >= rule.minContent) {
			c.Carbon = rule.level
			break
		}
	}

	return c
}

// Microstructure is a structural tag inferred from a material description
type Microstructure string

const (
	Martensitic Microstructure = "martensitic"
	Austenitic  Microstructure = "austenitic"
	Ferritic    Microstructure = "ferritic"
	Pearlitic   Microstructure = "pearlitic"
	Bainitic    Microstructure = "bainitic"
	Duplex      Microstructure = "duplex"
)

// Stem returns the word stem used to find the structure in etchant text
func (s Microstructure) Stem() string {
	switch s {
	case Martensitic:
		return "martensit"
	case Austenitic:
		return "austenit"
	case Ferritic:
		return "ferrit"
	case Pearlitic:
		return "pearlit"
	case Bainitic:
		return "bainit"
	default:
		return string(s)
	}
}

var microstructureTable = []Microstructure{Martensitic, Austenitic, Ferritic, Pearlitic, Bainitic, Duplex}

// MicrostructureTypes returns every structure tag mentioned in the material's
// microstructure description or name, in table order.
func MicrostructureTypes(m model.Material) []Microstructure {
	text := strings.ToLower(m.Microstructure + " " + m.Name)

	var out []Microstructure
	for _, s := range microstructureTable {
		if strings.Contains(text, s.Stem()) {
			out = append(out, s)
		}
	}
	return out
}

// HeatTreatment is a processing-state tag inferred from a material description
type HeatTreatment string

const (
	Annealed        HeatTreatment = "annealed"
	Quenched        HeatTreatment = "quenched"
	Tempered        HeatTreatment = "tempered"
	Normalized      HeatTreatment = "normalized"
	SolutionTreated HeatTreatment = "solution-treated"
	Aged            HeatTreatment = "aged"
	StressRelieved  HeatTreatment = "stress-relieved"
)

var heatTreatmentTable = []struct {
	state    HeatTreatment
	keywords []string
}{
	{Annealed, []string{"anneal"}},
	{Quenched, []string{"quench", "hardened"}},
	{Tempered, []string{"temper"}},
	{Normalized, []string{"normaliz", "normalis"}},
	{SolutionTreated, []string{"solution"}},
	{Aged, []string{"aged", "aging", "ageing", "precipitation"}},
	{StressRelieved, []string{"stress reliev", "stress-reliev"}},
}

// HeatTreatmentStates returns every state tag mentioned in the material's
// heat-treatment description, in table order.
func HeatTreatmentStates(m model.Material) []HeatTreatment {
	text := strings.ToLower(m.HeatTreatment)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []HeatTreatment
	for _, row := range heatTreatmentTable {
		if containsAny(text, row.keywords) {
			out = append(out, row.state)
		}
	}
	return out
}

// HasHeatTreatment reports whether states contains any of want
func HasHeatTreatment(states []HeatTreatment, want ...HeatTreatment) bool {
	for _, s := range states {
		for _, w := range want {
			if s == w {
				return true
			}
		}
	}
	return false
}
