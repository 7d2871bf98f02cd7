package model

import "time"

// Report is the complete recommendation for one material and filter selection
type Report struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Material    Material      `json:"material"`
	CategoryKey string        `json:"category_key"` // Normalized category used for compatibility joins
	Filters     Filters       `json:"filters"`
	Matches     []RankedMatch `json:"matches"`
	Catalog     CatalogStats  `json:"catalog"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional narrative (separate, never affects scores)
}

// Filters records the optional filters the report was computed with
type Filters struct {
	Purpose            Purpose            `json:"purpose,omitempty"`
	ApplicationContext ApplicationContext `json:"application_context,omitempty"`
}

// CatalogStats describes the catalog the report was computed against
type CatalogStats struct {
	Source    string `json:"source"`
	Materials int    `json:"materials"`
	Etchants  int    `json:"etchants"`
	Excluded  int    `json:"excluded"` // Etchants hard-excluded as incompatible
}

// IsEmpty reports whether no etchant scored above zero
func (r *Report) IsEmpty() bool {
	return len(r.Matches) == 0
}

// PurchaseURLs returns the product links present in the report
func (r *Report) PurchaseURLs() []string {
	var urls []string
	for _, m := range r.Matches {
		if m.PurchaseURL != "" {
			urls = append(urls, m.PurchaseURL)
		}
	}
	return urls
}

// LLMSummary contains optional LLM-generated narrative
// CRITICAL: This never affects scoring and is clearly separated
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	Strict    bool     `json:"strict"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
