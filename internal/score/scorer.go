package score

import (
	"strings"

	"github.com/ppiankov/trendscope/internal/model"
)

const (
	baselineScore = 50
	minScore      = 0
	maxScore      = 100

	// Level thresholds: score < lowBelow is Low, score < highFrom is Medium, else High
	lowBelow = 35
	highFrom = 65
)

// sectorOrder is the fixed output order of Calculate
var sectorOrder = []string{
	model.SectorDeFi,
	model.SectorNFTsGaming,
	model.SectorInfrastructure,
}

// Scorer aggregates article classifications into per-sector saturation scores.
// Lower scores signal a healthier, less crowded market.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate returns exactly one score per sector in the order DeFi, NFTs/Gaming, Infrastructure.
// Scores are recomputed from scratch on every call.
func (s *Scorer) Calculate(classifications []model.Classification) []model.SectorScore {
	totals := make(map[string]int, len(sectorOrder))
	counts := make(map[string]int, len(sectorOrder))
	for _, sector := range sectorOrder {
		totals[sector] = baselineScore
	}

	for _, c := range classifications {
		sector := RouteSector(c.Sector)
		totals[sector] += Adjustment(c)
		counts[sector]++
	}

	scores := make([]model.SectorScore, 0, len(sectorOrder))
	for _, sector := range sectorOrder {
		score := clamp(totals[sector])
		scores = append(scores, model.SectorScore{
			Sector:   sector,
			Score:    score,
			Level:    Level(score),
			Articles: counts[sector],
		})
	}

	return scores
}

// Adjustment returns the signed contribution of one classification.
// Rules are independent and additive.
func Adjustment(c model.Classification) int {
	adj := 0

	switch c.DeveloperActivity {
	case model.RatingHigh:
		adj -= 15
	case model.RatingLow:
		adj += 10
	}

	if c.AdoptionPotential == model.RatingHigh {
		adj -= 10
	}
	if c.SecurityConcerns == model.SecurityDetected {
		adj += 15
	}
	if c.RegulatoryNews == model.RegulatoryUnfavorable {
		adj += 10
	}
	if c.OverallSentiment == model.SentimentNegative {
		adj += 5
	}

	return adj
}

// RouteSector maps a free-form sector label to a scoring bucket.
// "DeFi" is checked before "NFT"/"Gaming"; a label containing both routes to DeFi.
func RouteSector(label string) string {
	switch {
	case strings.Contains(label, "DeFi"):
		return model.SectorDeFi
	case strings.Contains(label, "NFT"), strings.Contains(label, "Gaming"):
		return model.SectorNFTsGaming
	default:
		return model.SectorInfrastructure
	}
}

// Level maps a clamped score to its qualitative band
func Level(score int) model.SaturationLevel {
	switch {
	case score < lowBelow:
		return model.LevelLow
	case score < highFrom:
		return model.LevelMedium
	default:
		return model.LevelHigh
	}
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
