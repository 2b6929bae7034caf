package score

import (
	"testing"

	"github.com/ppiankov/trendscope/internal/model"
)

func neutral(sector string) model.Classification {
	c := model.DefaultClassification()
	c.Sector = sector
	return c
}

func findSector(t *testing.T, scores []model.SectorScore, sector string) model.SectorScore {
	t.Helper()
	for _, s := range scores {
		if s.Sector == sector {
			return s
		}
	}
	t.Fatalf("sector %s missing from %+v", sector, scores)
	return model.SectorScore{}
}

func TestScorer_Calculate_Empty(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Calculate(nil)

	expected := []model.SectorScore{
		{Sector: model.SectorDeFi, Score: 50, Level: model.LevelMedium},
		{Sector: model.SectorNFTsGaming, Score: 50, Level: model.LevelMedium},
		{Sector: model.SectorInfrastructure, Score: 50, Level: model.LevelMedium},
	}
	if len(result) != len(expected) {
		t.Fatalf("expected %d sectors, got %d", len(expected), len(result))
	}
	for i := range expected {
		if result[i] != expected[i] {
			t.Errorf("sector %d: expected %+v, got %+v", i, expected[i], result[i])
		}
	}
}

func TestScorer_Calculate_GamingNetZero(t *testing.T) {
	scorer := NewScorer()

	c := neutral("Gaming Platform")
	c.DeveloperActivity = model.RatingHigh
	c.SecurityConcerns = model.SecurityDetected

	result := scorer.Calculate([]model.Classification{c})

	gaming := findSector(t, result, model.SectorNFTsGaming)
	if gaming.Score != 50 || gaming.Articles != 1 {
		t.Errorf("expected NFTs/Gaming at 50 with 1 article, got %+v", gaming)
	}
	for _, s := range []string{model.SectorDeFi, model.SectorInfrastructure} {
		got := findSector(t, result, s)
		if got.Score != 50 || got.Articles != 0 {
			t.Errorf("expected %s untouched, got %+v", s, got)
		}
	}
}

func TestScorer_Calculate_DeFiLending(t *testing.T) {
	scorer := NewScorer()

	c := model.Classification{
		OverallSentiment:  model.SentimentNegative,
		TokenPriceImpact:  model.ImpactNeutral,
		DeveloperActivity: model.RatingLow,
		AdoptionPotential: model.RatingMedium,
		SecurityConcerns:  model.SecurityNotDetected,
		RegulatoryNews:    model.RegulatoryUnfavorable,
		Sector:            "DeFi Lending",
	}

	result := scorer.Calculate([]model.Classification{c})

	defi := findSector(t, result, model.SectorDeFi)
	if defi.Score != 75 {
		t.Errorf("expected DeFi score 75, got %d", defi.Score)
	}
	if defi.Level != model.LevelHigh {
		t.Errorf("expected DeFi level High, got %s", defi.Level)
	}
	for _, s := range []string{model.SectorNFTsGaming, model.SectorInfrastructure} {
		got := findSector(t, result, s)
		if got.Score != 50 || got.Level != model.LevelMedium {
			t.Errorf("expected %s at 50/Medium, got %+v", s, got)
		}
	}
}

func TestScorer_Calculate_Clamps(t *testing.T) {
	scorer := NewScorer()

	risky := model.Classification{
		OverallSentiment:  model.SentimentNegative,
		DeveloperActivity: model.RatingLow,
		SecurityConcerns:  model.SecurityDetected,
		RegulatoryNews:    model.RegulatoryUnfavorable,
		Sector:            "Layer 1",
	}
	healthy := model.Classification{
		DeveloperActivity: model.RatingHigh,
		AdoptionPotential: model.RatingHigh,
		Sector:            "DeFi",
	}

	var batch []model.Classification
	for i := 0; i < 5; i++ {
		batch = append(batch, risky, healthy)
	}

	result := scorer.Calculate(batch)

	if infra := findSector(t, result, model.SectorInfrastructure); infra.Score != 100 || infra.Level != model.LevelHigh {
		t.Errorf("expected Infrastructure clamped to 100/High, got %+v", infra)
	}
	if defi := findSector(t, result, model.SectorDeFi); defi.Score != 0 || defi.Level != model.LevelLow {
		t.Errorf("expected DeFi clamped to 0/Low, got %+v", defi)
	}
}

func TestScorer_Calculate_AlwaysThreeSectorsInRange(t *testing.T) {
	scorer := NewScorer()

	sectors := []string{"DeFi", "NFT", "Gaming", "Layer 2", "", "General", "DeFi NFT"}
	ratings := []string{model.RatingHigh, model.RatingMedium, model.RatingLow}

	var batch []model.Classification
	for i := 0; i < 40; i++ {
		batch = append(batch, model.Classification{
			DeveloperActivity: ratings[i%3],
			AdoptionPotential: ratings[(i+1)%3],
			SecurityConcerns:  []string{model.SecurityDetected, model.SecurityNotDetected}[i%2],
			Sector:            sectors[i%len(sectors)],
		})

		result := scorer.Calculate(batch)
		if len(result) != 3 {
			t.Fatalf("expected 3 sectors, got %d", len(result))
		}
		for _, s := range result {
			if s.Score < 0 || s.Score > 100 {
				t.Fatalf("score out of range: %+v", s)
			}
			if s.Level != Level(s.Score) {
				t.Fatalf("level inconsistent with score: %+v", s)
			}
		}
	}
}

func TestLevel_Thresholds(t *testing.T) {
	tests := []struct {
		score int
		want  model.SaturationLevel
	}{
		{0, model.LevelLow},
		{34, model.LevelLow},
		{35, model.LevelMedium},
		{50, model.LevelMedium},
		{64, model.LevelMedium},
		{65, model.LevelHigh},
		{100, model.LevelHigh},
	}

	for _, tt := range tests {
		if got := Level(tt.score); got != tt.want {
			t.Errorf("Level(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRouteSector(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"DeFi", model.SectorDeFi},
		{"DeFi Lending", model.SectorDeFi},
		{"NFT Marketplace", model.SectorNFTsGaming},
		{"Web3 Gaming", model.SectorNFTsGaming},
		{"DeFi and NFT", model.SectorDeFi}, // check order wins
		{"Layer 1", model.SectorInfrastructure},
		{"", model.SectorInfrastructure},
		{"defi", model.SectorInfrastructure}, // case-sensitive
	}

	for _, tt := range tests {
		if got := RouteSector(tt.label); got != tt.want {
			t.Errorf("RouteSector(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestAdjustment(t *testing.T) {
	if got := Adjustment(model.DefaultClassification()); got != 0 {
		t.Errorf("expected 0 for default classification, got %d", got)
	}

	all := model.Classification{
		OverallSentiment:  model.SentimentNegative,
		DeveloperActivity: model.RatingHigh,
		AdoptionPotential: model.RatingHigh,
		SecurityConcerns:  model.SecurityDetected,
		RegulatoryNews:    model.RegulatoryUnfavorable,
	}
	// -15 -10 +15 +10 +5
	if got := Adjustment(all); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestSentimentDistribution(t *testing.T) {
	batch := []model.Classification{
		{OverallSentiment: model.SentimentPositive},
		{OverallSentiment: model.SentimentNegative},
		{OverallSentiment: model.SentimentPositive},
	}

	dist := SentimentDistribution(batch)
	if dist[model.SentimentPositive] != 2 || dist[model.SentimentNegative] != 1 {
		t.Errorf("unexpected distribution: %v", dist)
	}
	if len(SentimentDistribution(nil)) != 0 {
		t.Error("expected empty distribution for no classifications")
	}
}
