package llm

import "fmt"

// DefaultMaxContentChars bounds the article text sent to the model
const DefaultMaxContentChars = 3000

const systemPrompt = "You classify Web3 and blockchain news articles. Reply only with the requested JSON code block."

// BuildPrompt builds the structured-extraction prompt for one article
func BuildPrompt(content, title string, maxChars int) string {
	return fmt.Sprintf(`Analyze the following Web3/blockchain news article for these factors:
1. Overall Sentiment (Positive, Negative, Neutral)
2. Token Price Impact (Bullish, Bearish, Neutral)
3. Developer Activity (High, Medium, Low)
4. Adoption Potential (High, Medium, Low)
5. Security Concerns (Detected, Not Detected)
6. Regulatory News (Favorable, Unfavorable, Neutral)
7. Sector (e.g., DeFi, NFT, Gaming, Infrastructure, Layer 1)

Title: %s
Content: %s

Provide the analysis in this exact JSON format, inside a json code block:
`+"```json"+`
{
  "Overall_Sentiment": "value",
  "Token_Price_Impact": "value",
  "Developer_Activity": "value",
  "Adoption_Potential": "value",
  "Security_Concerns": "value",
  "Regulatory_News": "value",
  "Sector": "value"
}
`+"```"+`
`, title, Truncate(content, maxChars))
}

// Truncate returns at most maxChars characters of s
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
