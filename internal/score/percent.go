package score

import (
	"math"

	"github.com/ppiankov/etchant/internal/model"
)

// PracticalMax is the score shown as a 100% match. The theoretical maximum is
// higher; scores above this clamp to 100.
const PracticalMax = 600

// Percentage maps a score to a 0-100 match percentage
func Percentage(score int) int {
	if score <= 0 {
		return 0
	}
	pct := int(math.Round(float64(score) / PracticalMax * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Band returns the color band for a match percentage
func Band(pct int) model.ScoreBand {
	switch {
	case pct >= 80:
		return model.BandGreen
	case pct >= 60:
		return model.BandBlue
	case pct >= 40:
		return model.BandYellow
	default:
		return model.BandGray
	}
}

// Rank decorates matches with their 1-based rank, percentage and band.
// linkFor may be nil.
func Rank(matches []model.EtchantMatch, linkFor func(model.Etchant) string) []model.RankedMatch {
	out := make([]model.RankedMatch, len(matches))
	for i, m := range matches {
		pct := Percentage(m.Score)
		out[i] = model.RankedMatch{
			EtchantMatch: m,
			Rank:         i + 1,
			Percentage:   pct,
			Band:         Band(pct),
		}
		if linkFor != nil {
			out[i].PurchaseURL = linkFor(m.Etchant)
		}
	}
	return out
}
