package score

import "github.com/ppiankov/trendscope/internal/model"

// SentimentDistribution counts articles per Overall_Sentiment value
func SentimentDistribution(classifications []model.Classification) map[string]int {
	dist := make(map[string]int)
	for _, c := range classifications {
		dist[c.OverallSentiment]++
	}
	return dist
}
