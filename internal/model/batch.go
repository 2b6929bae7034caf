package model

import "time"

// AnalysisBatch is the complete published result of one pipeline run.
// Articles, Classifications, Outcomes and DisplayTitles are index-aligned.
type AnalysisBatch struct {
	ID    string `json:"id"`
	RunID uint64 `json:"run_id"`
	Topic string `json:"topic"`

	Articles        []Article        `json:"articles"`
	Classifications []Classification `json:"classifications"`
	Outcomes        []Outcome        `json:"outcomes"`
	DisplayTitles   []string         `json:"display_titles"`

	SectorScores []SectorScore  `json:"sector_scores"`
	Sentiment    map[string]int `json:"sentiment,omitempty"` // Articles per Overall_Sentiment

	PriceSymbol   string       `json:"price_symbol,omitempty"`
	PriceSeries   []PricePoint `json:"price_series"`
	PriceFallback bool         `json:"price_fallback"`

	Notices []string `json:"notices,omitempty"` // User-visible degraded-mode messages
	Error   string   `json:"error,omitempty"`   // Set when no articles could be analyzed

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// DefaultedCount returns how many classifications fell back to the default
func (b *AnalysisBatch) DefaultedCount() int {
	n := 0
	for _, o := range b.Outcomes {
		if o == OutcomeDefaulted {
			n++
		}
	}
	return n
}
