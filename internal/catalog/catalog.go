package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/etchant/internal/classify"
	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/util"
)

// Catalog is an immutable, loaded set of published materials and etchants
type Catalog struct {
	source    string
	materials []model.Material
	etchants  []model.Etchant
}

// New builds a catalog from raw records. Unpublished records are dropped,
// hardness classes are normalized and rich-text notes are flattened to plain text.
func New(source string, materials []model.Material, etchants []model.Etchant) *Catalog {
	c := &Catalog{source: source}

	for _, m := range materials {
		if m.IsPublished() {
			m.HardnessCategory = m.HardnessCategory.Normalize()
			c.materials = append(c.materials, m)
		}
	}
	sort.SliceStable(c.materials, func(i, j int) bool {
		return c.materials[i].SortOrder < c.materials[j].SortOrder
	})

	for _, e := range etchants {
		if !e.IsPublished() {
			continue
		}
		e.SafetyNotes = util.PlainText(e.SafetyNotes)
		e.ApplicationNotes = util.PlainText(e.ApplicationNotes)
		e.PreparationNotes = util.PlainText(e.PreparationNotes)
		e.StorageNotes = util.PlainText(e.StorageNotes)
		c.etchants = append(c.etchants, e)
	}

	return c
}

// Source names where the catalog was loaded from
func (c *Catalog) Source() string { return c.source }

// Materials returns all published materials in sort order
func (c *Catalog) Materials() []model.Material { return c.materials }

// Etchants returns all published etchants
func (c *Catalog) Etchants() []model.Etchant { return c.etchants }

// Stats summarizes the catalog for reports
func (c *Catalog) Stats() model.CatalogStats {
	return model.CatalogStats{
		Source:    c.source,
		Materials: len(c.materials),
		Etchants:  len(c.etchants),
	}
}

// Material finds a material by ID, slug, name or alternative name (case-insensitive)
func (c *Catalog) Material(idOrName string) (model.Material, error) {
	q := strings.TrimSpace(idOrName)
	if q == "" {
		return model.Material{}, fmt.Errorf("material %q: %w", idOrName, ErrNotFound)
	}
	for _, m := range c.materials {
		if m.ID == q || strings.EqualFold(m.Slug, q) || strings.EqualFold(m.Name, q) {
			return m, nil
		}
	}
	for _, m := range c.materials {
		for _, alt := range m.AlternativeNames {
			if strings.EqualFold(strings.TrimSpace(alt), q) {
				return m, nil
			}
		}
	}
	return model.Material{}, fmt.Errorf("material %q: %w", idOrName, ErrNotFound)
}

// ResolveMaterial maps free user input to one material: an exact lookup,
// then a quick-pick category, then the best search hit.
func (c *Catalog) ResolveMaterial(query string) (model.Material, error) {
	if m, err := c.Material(query); err == nil {
		return m, nil
	}
	if m, ok := c.QuickPick(query); ok {
		return m, nil
	}
	if hits := c.SearchMaterials(query); len(hits) > 0 {
		return hits[0], nil
	}
	return model.Material{}, fmt.Errorf("material %q: %w", query, ErrNotFound)
}

// Etchant finds an etchant by ID, slug, name or alternative name (case-insensitive)
func (c *Catalog) Etchant(idOrName string) (model.Etchant, error) {
	q := strings.TrimSpace(idOrName)
	if q != "" {
		for _, e := range c.etchants {
			if e.ID == q || strings.EqualFold(e.Slug, q) || strings.EqualFold(e.Name, q) {
				return e, nil
			}
		}
		for _, e := range c.etchants {
			for _, alt := range e.AlternativeNames {
				if strings.EqualFold(strings.TrimSpace(alt), q) {
					return e, nil
				}
			}
		}
	}
	return model.Etchant{}, fmt.Errorf("etchant %q: %w", idOrName, ErrNotFound)
}

// SearchMaterials matches the query against name, alternative names,
// category and tags. Results are ordered featured first, then by sort
// order and name. An empty query returns the featured materials.
func (c *Catalog) SearchMaterials(query string) []model.Material {
	q := strings.ToLower(strings.TrimSpace(query))

	var hits []model.Material
	for _, m := range c.materials {
		if q == "" {
			if m.Featured {
				hits = append(hits, m)
			}
			continue
		}
		if materialMatches(m, q) {
			hits = append(hits, m)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Name < b.Name
	})
	return hits
}

func materialMatches(m model.Material, q string) bool {
	if strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.Category), q) {
		return true
	}
	for _, list := range [][]string{m.AlternativeNames, m.Tags} {
		for _, s := range list {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
	}
	return false
}

// QuickPickOption is one of the quick-select material categories
type QuickPickOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// QuickPicks lists the six common categories offered for one-click selection
func QuickPicks() []QuickPickOption {
	return []QuickPickOption{
		{Key: classify.CarbonSteel, Label: "Carbon Steel"},
		{Key: classify.StainlessSteel, Label: "Stainless Steel"},
		{Key: classify.Aluminum, Label: "Aluminum"},
		{Key: classify.CopperBrass, Label: "Copper/Brass"},
		{Key: classify.Titanium, Label: "Titanium"},
		{Key: classify.CastIron, Label: "Cast Iron"},
	}
}

// QuickPick returns the representative material for a quick-pick category
// key or label: the first featured material in that category, else the
// first by sort order.
func (c *Catalog) QuickPick(keyOrLabel string) (model.Material, bool) {
	key := ""
	for _, opt := range QuickPicks() {
		if strings.EqualFold(opt.Key, keyOrLabel) || strings.EqualFold(opt.Label, keyOrLabel) {
			key = opt.Key
			break
		}
	}
	if key == "" {
		return model.Material{}, false
	}

	var first *model.Material
	for i := range c.materials {
		m := &c.materials[i]
		if classify.CategoryKey(*m) != key {
			continue
		}
		if m.Featured {
			return *m, true
		}
		if first == nil {
			first = m
		}
	}
	if first == nil {
		return model.Material{}, false
	}
	return *first, true
}
