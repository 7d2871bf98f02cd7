package model

// EtchantMatch is one scored candidate for a material. It is recomputed on
// every request and never stored.
type EtchantMatch struct {
	Etchant             Etchant  `json:"etchant"`
	Score               int      `json:"score"`
	Reasons             []string `json:"reasons"`
	Tips                []string `json:"tips,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
	RecommendedSequence int      `json:"recommended_sequence,omitempty"` // 1-based; failure analysis top 3 only
}

// ScoreBand is the color band used to present a match percentage
type ScoreBand string

const (
	BandGreen  ScoreBand = "green"
	BandBlue   ScoreBand = "blue"
	BandYellow ScoreBand = "yellow"
	BandGray   ScoreBand = "gray"
)

// RankedMatch is a match decorated for presentation
type RankedMatch struct {
	EtchantMatch
	Rank        int       `json:"rank"`
	Percentage  int       `json:"percentage"`
	Band        ScoreBand `json:"band"`
	PurchaseURL string    `json:"purchase_url,omitempty"`
}
