package pipeline

import "github.com/ppiankov/trendscope/internal/model"

// FallbackNotice is shown when the market series could not be fetched
const FallbackNotice = "Using fallback market data due to API limitations."

// FallbackPriceSeries returns the fixed five-day series used when the market provider fails
func FallbackPriceSeries() []model.PricePoint {
	return []model.PricePoint{
		{Date: "2025-09-06", Close: "7.50"},
		{Date: "2025-09-07", Close: "7.65"},
		{Date: "2025-09-08", Close: "7.45"},
		{Date: "2025-09-09", Close: "7.80"},
		{Date: "2025-09-10", Close: "7.75"},
	}
}
