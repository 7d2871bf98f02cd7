package score

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/etchant/internal/classify"
	"github.com/ppiankov/etchant/internal/model"
)

// MaxResults caps the number of matches returned for one material
const MaxResults = 10

// Scorer ranks the etchant catalog against a selected material
type Scorer struct {
	maxResults int
}

// NewScorer creates a new scorer returning at most maxResults matches.
// Values outside 1..MaxResults fall back to MaxResults.
func NewScorer(maxResults int) *Scorer {
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}
	return &Scorer{maxResults: maxResults}
}

// Recommend scores every etchant for the material with the default scorer
func Recommend(material model.Material, etchants []model.Etchant, purpose model.Purpose, appCtx model.ApplicationContext) []model.EtchantMatch {
	return NewScorer(MaxResults).Recommend(material, etchants, purpose, appCtx)
}

// subject is the selected material with its inferred tags
type subject struct {
	material model.Material
	key      string // category key
	label    string // category key as prose
	comp     classify.Composition
	micro    []classify.Microstructure
	heat     []classify.HeatTreatment
}

func newSubject(m model.Material) subject {
	m.HardnessCategory = m.HardnessCategory.Normalize()
	key := classify.CategoryKey(m)
	return subject{
		material: m,
		key:      key,
		label:    strings.ReplaceAll(key, "-", " "),
		comp:     classify.AnalyzeComposition(m),
		micro:    classify.MicrostructureTypes(m),
		heat:     classify.HeatTreatmentStates(m),
	}
}

// excludes reports whether the etchant is listed as incompatible with the material
func (s subject) excludes(e *model.Etchant) bool {
	return listsKey(e.IncompatibleMaterials, s.key)
}

// Recommend scores every etchant in the catalog for the material. Incompatible
// etchants are skipped, non-positive scores are dropped, and the rest are
// sorted by score (ties by name, then id) and capped. It has no side effects.
func (s *Scorer) Recommend(material model.Material, etchants []model.Etchant, purpose model.Purpose, appCtx model.ApplicationContext) []model.EtchantMatch {
	subj := newSubject(material)

	matches := make([]model.EtchantMatch, 0, len(etchants))
	for i := range etchants {
		e := &etchants[i]
		if subj.excludes(e) {
			continue
		}

		b := s.scoreEtchant(subj, e, purpose, appCtx)
		if b.score <= 0 {
			continue
		}
		matches = append(matches, b.match(*e))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Etchant.Name != matches[j].Etchant.Name {
			return matches[i].Etchant.Name < matches[j].Etchant.Name
		}
		return matches[i].Etchant.ID < matches[j].Etchant.ID
	})

	if appCtx == model.ContextFailureAnalysis {
		for i := 0; i < len(matches) && i < 3; i++ {
			matches[i].RecommendedSequence = i + 1
		}
	}

	if len(matches) > s.maxResults {
		matches = matches[:s.maxResults]
	}

	return matches
}

// CountExcluded returns how many etchants are hard-excluded for the material
func CountExcluded(material model.Material, etchants []model.Etchant) int {
	subj := newSubject(material)
	n := 0
	for i := range etchants {
		if subj.excludes(&etchants[i]) {
			n++
		}
	}
	return n
}

// builder accumulates the score and explanations for one etchant
type builder struct {
	score    int
	reasons  []string
	tips     []string
	warnings []string
	astmTip  bool // ASTM tip already added by the quality-control context
}

func (b *builder) award(points int, reason string) {
	b.score += points
	if reason != "" {
		b.reasons = append(b.reasons, reason)
	}
}

func (b *builder) tip(s string)  { b.tips = append(b.tips, s) }
func (b *builder) warn(s string) { b.warnings = append(b.warnings, s) }

func (b *builder) match(e model.Etchant) model.EtchantMatch {
	reasons := dedupe(b.reasons)
	if reasons == nil {
		reasons = []string{}
	}
	return model.EtchantMatch{
		Etchant:  e,
		Score:    b.score,
		Reasons:  reasons,
		Tips:     dedupe(b.tips),
		Warnings: dedupe(b.warnings),
	}
}

// scoreEtchant runs every tier for one etchant, in order
func (s *Scorer) scoreEtchant(subj subject, e *model.Etchant, purpose model.Purpose, appCtx model.ApplicationContext) *builder {
	b := &builder{}
	t := newEtchantText(e)

	s.scoreCompatibility(subj, e, b)
	s.scoreCommonEtchant(subj, e, t, b)
	s.scoreDirectLink(subj, e, b)
	s.scorePurpose(subj, e, t, purpose, b)
	s.scoreComposition(subj, t, b)
	s.scoreMicrostructure(subj, t, b)
	s.scoreHeatTreatment(subj, t, b)
	s.scoreContext(e, t, appCtx, b)
	s.scoreHardness(subj, t, b)
	s.scoreCarbon(subj, t, b)
	s.refineHeatTreatment(subj, t, b)
	s.scoreQuality(e, b)
	s.addSafetyWarnings(subj, e, appCtx, b)
	s.addTimeAdvisory(subj, e, b)

	return b
}

// scoreCompatibility awards up to 200 points for a listed compatible category
func (s *Scorer) scoreCompatibility(subj subject, e *model.Etchant, b *builder) {
	if !listsKey(e.CompatibleMaterials, subj.key) {
		return
	}

	switch e.Category {
	case model.EtchantMaterialSpecific:
		b.award(200, fmt.Sprintf("Formulated specifically for %s", subj.label))
	case model.EtchantSpecialty:
		b.award(150, fmt.Sprintf("Specialty etchant compatible with %s", subj.label))
	default:
		b.award(100, fmt.Sprintf("Compatible with %s", subj.label))
	}
}

// scoreCommonEtchant awards 120 points when the material documents this etchant
func (s *Scorer) scoreCommonEtchant(subj subject, e *model.Etchant, t etchantText, b *builder) {
	for _, common := range subj.material.CommonEtchants {
		c := normalizeName(common)
		if c == "" {
			continue
		}
		for _, n := range t.names {
			if n == "" || !(strings.Contains(n, c) || strings.Contains(c, n)) {
				continue
			}
			b.award(120, fmt.Sprintf("Documented common etchant for %s", subj.material.Name))
			b.tip(fmt.Sprintf("Documented, proven pairing: %s is a standard etchant for %s", e.Name, subj.material.Name))
			return
		}
	}
}

// scoreDirectLink awards 90 points when the etchant links the material by id
func (s *Scorer) scoreDirectLink(subj subject, e *model.Etchant, b *builder) {
	if subj.material.ID != "" && contains(e.RelatedMaterialIDs, subj.material.ID) {
		b.award(90, "Directly linked to this material")
	}
}

// scorePurpose awards 150 points when reveals names the purpose, 100 when any
// etchant text does, plus the nodularity bonuses
func (s *Scorer) scorePurpose(subj subject, e *model.Etchant, t etchantText, purpose model.Purpose, b *builder) {
	if !purpose.IsFilter() {
		return
	}

	label := strings.ToLower(purpose.Label())
	keywords := purposeKeywords[purpose]
	switch {
	case containsAny(t.reveals, keywords):
		b.award(150, fmt.Sprintf("Primary purpose: reveals %s", label))
		b.tip(fmt.Sprintf("%s is primarily used to reveal %s", e.Name, label))
	case containsAny(t.combined, keywords):
		b.award(100, fmt.Sprintf("Can reveal %s", label))
	}

	if purpose != model.PurposeNodularity {
		return
	}
	if t.named("stead") {
		b.award(80, "Stead's reagent is the classic choice for graphite nodularity")
	}
	if classify.IsCastIronFamily(subj.material) && (strings.Contains(t.reveals, "graphite") || t.named("picral")) {
		b.award(60, "Reveals graphite morphology in cast iron")
	}
}

// scoreComposition applies the alloy-family rules (70-90 points each, additive)
func (s *Scorer) scoreComposition(subj subject, t etchantText, b *builder) {
	c := subj.comp

	if c.Chromium && subj.key == classify.StainlessSteel {
		if t.named("kallings", "glyceregia", "vilella", "aqua regia") {
			b.award(80, "Attacks the passive film of chromium-bearing stainless steels")
			b.tip("Chromium-bearing steels resist mild etchants; use fresh reagent and swab rather than immerse")
		}
		if t.electrolytic {
			b.award(70, "Electrolytic etching suits stainless steels")
			b.tip("Electrolytic etching gives controlled, reproducible contrast on stainless steels")
		}
	}

	if c.Nickel && t.named("kallings", "glyceregia", "inconel") {
		b.award(75, "Effective on nickel-bearing alloys")
	}

	if c.Titanium || subj.key == classify.Titanium {
		switch {
		case t.named("kroll"):
			b.award(90, "Kroll's reagent is the standard titanium etchant")
			b.tip("Kroll's reagent reveals alpha/beta morphology; a few seconds is usually enough")
		case t.named("ti-ap-16", "ap-16"):
			b.award(75, "Formulated for titanium alloys")
		}
	}

	if c.Aluminum || subj.key == classify.Aluminum {
		switch {
		case t.named("keller"):
			b.award(90, "Keller's reagent is the standard aluminum etchant")
			b.tip("Keller's reagent reveals grain structure and intermetallics in most wrought aluminum alloys")
		case t.named("tucker"):
			b.award(75, "Tucker's reagent suits macro-etching aluminum")
		case t.electrolytic && t.named("barker"):
			b.award(80, "Barker's anodizing reveals aluminum grain structure")
			b.tip("View Barker's anodized samples under polarized light to see grain contrast")
		}
	}

	if c.Copper || subj.key == classify.CopperBrass {
		switch {
		case t.named("ammonium persulfate"):
			b.award(85, "Ammonium persulfate is a standard copper and brass etchant")
		case t.named("ferric chloride"):
			b.award(70, "Ferric chloride reveals copper alloy grain structure")
		case t.named("marble"):
			b.award(70, "Marble's reagent suits copper-bearing alloys")
		}
	}
}

// scoreMicrostructure awards points per inferred structure (45-70 each)
func (s *Scorer) scoreMicrostructure(subj subject, t etchantText, b *builder) {
	text := t.reveals + " " + t.results

	for _, m := range subj.micro {
		if m == classify.Duplex && t.named(colorEtchants...) {
			b.award(70, "Color etchant for duplex structures")
			b.tip("Color tint etching distinguishes ferrite from austenite in duplex structures")
			continue
		}

		switch {
		case strings.Contains(text, m.Stem()):
			b.award(60, fmt.Sprintf("Reveals %s structure", m))
		case t.named(genericStructureEtchants[m]...):
			b.award(45, fmt.Sprintf("Commonly used for %s structures", m))
		}
	}
}

// scoreHeatTreatment awards 25-30 points for etchants suited to the processing state
func (s *Scorer) scoreHeatTreatment(subj subject, t etchantText, b *builder) {
	if classify.HasHeatTreatment(subj.heat, classify.Quenched, classify.Tempered) &&
		t.named("nital", "picral", "sodium metabisulfite") {
		b.award(30, "Suited to quenched and tempered structures")
	}
	if classify.HasHeatTreatment(subj.heat, classify.SolutionTreated) &&
		(t.named("keller", "weck") || t.electrolytic) {
		b.award(25, "Suited to solution-treated structures")
	}
}

// scoreContext applies the application-context bonuses (mutually exclusive by context)
func (s *Scorer) scoreContext(e *model.Etchant, t etchantText, appCtx model.ApplicationContext, b *builder) {
	features := revealedFeatures(e.Reveals)
	astm := strings.Join(e.ASTMReferences, ", ")

	switch appCtx {
	case model.ContextQualityControl:
		if len(e.ASTMReferences) > 0 {
			b.award(100, fmt.Sprintf("ASTM referenced (%s) for standardized QC", astm))
			b.tip(fmt.Sprintf("Follow %s so results stay comparable between operators and shifts", astm))
			b.astmTip = true
		} else {
			b.award(-30, "")
			b.warn("No ASTM reference: document the procedure to keep QC results traceable")
		}
		if e.Featured {
			b.award(50, "Widely adopted in production QC")
		}

	case model.ContextFailureAnalysis:
		if features > 2 {
			b.award(80, fmt.Sprintf("Reveals %d features for comprehensive analysis", features))
			b.tip("Broad-spectrum etchant: start here before moving to selective reagents")
		}
		if e.Category == model.EtchantSpecialty {
			b.award(50, "Specialty etchant for targeted investigation")
		}

	case model.ContextHeatTreatmentVerification:
		switch {
		case containsAny(t.reveals, []string{"martensite", "bainite", "prior austenite", "prior-austenite"}) ||
			t.named("sodium metabisulfite"):
			b.award(90, "Reveals heat-treatment response (martensite, bainite, prior austenite)")
			b.tip("Compare against a reference micrograph of the specified condition")
		case t.named("nital", "picral"):
			b.award(60, "Standard check for heat-treated steels")
		}

	case model.ContextWeldingAnalysis:
		if t.named("nital", "vilella") || t.electrolytic {
			b.award(70, "Suited to weld and heat-affected-zone examination")
			b.tip("Etch across the fusion line to compare weld metal, HAZ and base metal in one field")
		}

	case model.ContextResearch:
		if len(e.ASTMReferences) > 0 {
			b.award(40, "ASTM referenced procedure")
		}
		if features > 2 {
			b.award(50, fmt.Sprintf("Reveals %d features", features))
		}
	}
}

// scoreHardness matches nital concentration to material hardness (30-40 points)
func (s *Scorer) scoreHardness(subj subject, t etchantText, b *builder) {
	if !t.named("nital") {
		return
	}

	hardness := subj.material.HardnessCategory
	label := hardness.Label()
	high := highConcentration.FindStringSubmatch(t.name)
	low := lowConcentration.FindStringSubmatch(t.name)

	switch hardness {
	case model.HardnessHard, model.HardnessVeryHard:
		if high != nil {
			b.award(40, fmt.Sprintf("Higher concentration suits %s materials", label))
			b.tip("Hard materials need a higher concentration or a longer etching time")
		} else if low != nil {
			b.warn(fmt.Sprintf("%s%% nital may be too weak for %s materials", low[1], label))
		}
	case model.HardnessSoft, model.HardnessMedium:
		if low != nil {
			b.award(30, fmt.Sprintf("Low concentration suits %s materials", label))
		} else if high != nil {
			b.warn(fmt.Sprintf("%s%% nital may be too aggressive for %s materials; risk of over-etching", high[1], label))
		}
	}
}

// scoreCarbon matches etchants to the inferred carbon level (25-35 points)
func (s *Scorer) scoreCarbon(subj subject, t etchantText, b *builder) {
	switch subj.comp.Carbon {
	case classify.CarbonHigh:
		switch {
		case t.named("picral"):
			b.award(35, "Picral suits high-carbon steels")
			b.tip("Picral resolves carbides and fine pearlite in high-carbon steels more evenly than nital")
		case t.named("nital"):
			b.award(25, "Nital works on high-carbon steels")
		}
	case classify.CarbonLow:
		if t.named("nital") {
			b.award(30, "Nital is the standard etchant for low-carbon steels")
		}
	}
}

// refineHeatTreatment re-applies the heat-treatment match with handling tips
func (s *Scorer) refineHeatTreatment(subj subject, t etchantText, b *builder) {
	if classify.HasHeatTreatment(subj.heat, classify.Quenched, classify.Tempered) &&
		t.named("nital", "picral", "sodium metabisulfite") {
		b.award(30, "Suited to quenched and tempered structures")
		b.tip("Tempered martensite etches quickly; start with short immersions to avoid over-etching")
	}
	if classify.HasHeatTreatment(subj.heat, classify.SolutionTreated) &&
		(t.named("keller", "weck") || t.electrolytic) {
		b.award(25, "Suited to solution-treated structures")
		b.tip("Solution-treated grains etch slowly; extend time gradually to bring up the boundaries")
	}
}

// scoreQuality rewards ASTM references, featured etchants and product availability
func (s *Scorer) scoreQuality(e *model.Etchant, b *builder) {
	if len(e.ASTMReferences) > 0 {
		b.award(25, "ASTM standard procedure available")
		if !b.astmTip {
			b.tip(fmt.Sprintf("Standardized in %s", strings.Join(e.ASTMReferences, ", ")))
		}
	}
	if e.Featured {
		b.award(20, "Featured etchant")
		b.tip(fmt.Sprintf("%s is a frequently chosen, well-supported etchant", e.Name))
	}
	if e.PaceProductAvailable {
		b.award(10, "Available as a ready-to-use product")
	}
}

// addSafetyWarnings appends hazard warnings; the score is unchanged
func (s *Scorer) addSafetyWarnings(subj subject, e *model.Etchant, appCtx model.ApplicationContext, b *builder) {
	if hasHazard(e.Hazards, "corrosive") && subj.key == classify.Aluminum {
		b.warn("Corrosive reagent on aluminum: attack is rapid, watch the etch time and rinse promptly")
	}
	if hasHazard(e.Hazards, "toxic") && appCtx == model.ContextQualityControl {
		b.warn("Toxic reagent in routine QC: confirm fume-hood handling and PPE for every operator")
	}
}

// addTimeAdvisory compares the typical etch time with the material hardness
func (s *Scorer) addTimeAdvisory(subj subject, e *model.Etchant, b *builder) {
	secs := e.TypicalTimeSeconds
	if secs <= 0 {
		return
	}

	switch subj.material.HardnessCategory {
	case model.HardnessVeryHard:
		if secs < 30 {
			b.tip(fmt.Sprintf("Typical time is %ds; very hard materials may need longer", secs))
		}
	case model.HardnessHard:
		if secs < 15 {
			b.tip(fmt.Sprintf("Typical time is %ds; hard materials may need longer", secs))
		}
	case model.HardnessSoft:
		if secs > 60 {
			b.tip(fmt.Sprintf("Soft materials may etch faster than the typical %ds; start with shorter times", secs))
		}
	}
}
