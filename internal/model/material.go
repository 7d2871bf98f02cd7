package model

import "strings"

// HardnessCategory is the coarse hardness class recorded for a material
type HardnessCategory string

const (
	HardnessSoft     HardnessCategory = "soft"
	HardnessMedium   HardnessCategory = "medium"
	HardnessHard     HardnessCategory = "hard"
	HardnessVeryHard HardnessCategory = "very-hard"
)

// Normalize folds catalog spellings such as "Very Hard" or "very_hard"
// onto the canonical lowercase, hyphenated form
func (h HardnessCategory) Normalize() HardnessCategory {
	s := strings.ToLower(strings.TrimSpace(string(h)))
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
	return HardnessCategory(s)
}

// Label returns the hardness class as prose ("very hard")
func (h HardnessCategory) Label() string {
	h = h.Normalize()
	switch h {
	case HardnessVeryHard:
		return "very hard"
	default:
		return string(h)
	}
}

// Material is a metallographic sample material as published in the catalog.
// Free-text fields (composition, microstructure, heat treatment) are not
// structured; the recommender infers tags from them with keyword tables.
type Material struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Slug             string           `json:"slug,omitempty" yaml:"slug,omitempty"`
	Category         string           `json:"category" yaml:"category"`
	Composition      string           `json:"composition,omitempty" yaml:"composition,omitempty"`
	Hardness         string           `json:"hardness,omitempty" yaml:"hardness,omitempty"`
	HardnessCategory HardnessCategory `json:"hardness_category,omitempty" yaml:"hardness_category,omitempty"`
	Microstructure   string           `json:"microstructure,omitempty" yaml:"microstructure,omitempty"`
	HeatTreatment    string           `json:"heat_treatment,omitempty" yaml:"heat_treatment,omitempty"`
	AlternativeNames []string         `json:"alternative_names,omitempty" yaml:"alternative_names,omitempty"`
	Tags             []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	CommonEtchants   []string         `json:"common_etchants,omitempty" yaml:"common_etchants,omitempty"`
	Featured         bool             `json:"featured" yaml:"featured"`
	Status           string           `json:"status,omitempty" yaml:"status,omitempty"`
	SortOrder        int              `json:"sort_order" yaml:"sort_order"`
}

// StatusPublished marks a catalog record visible to the public site
const StatusPublished = "published"

// IsPublished reports whether the material should be offered to users.
// Records without a status are treated as published.
func (m Material) IsPublished() bool {
	return m.Status == "" || m.Status == StatusPublished
}
