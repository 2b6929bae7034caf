package model

// Sentiment values for Overall_Sentiment
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Price impact values for Token_Price_Impact
const (
	ImpactBullish = "Bullish"
	ImpactBearish = "Bearish"
	ImpactNeutral = "Neutral"
)

// Rating values shared by Developer_Activity and Adoption_Potential
const (
	RatingHigh   = "High"
	RatingMedium = "Medium"
	RatingLow    = "Low"
)

// Security_Concerns values
const (
	SecurityDetected    = "Detected"
	SecurityNotDetected = "Not Detected"
)

// Regulatory_News values
const (
	RegulatoryFavorable   = "Favorable"
	RegulatoryUnfavorable = "Unfavorable"
	RegulatoryNeutral     = "Neutral"
)

// DefaultSector is used when the model does not name a sector
const DefaultSector = "General"

// Classification is the structured judgment produced for one article.
// JSON names match the fields requested from the model.
type Classification struct {
	OverallSentiment  string `json:"Overall_Sentiment"`
	TokenPriceImpact  string `json:"Token_Price_Impact"`
	DeveloperActivity string `json:"Developer_Activity"`
	AdoptionPotential string `json:"Adoption_Potential"`
	SecurityConcerns  string `json:"Security_Concerns"`
	RegulatoryNews    string `json:"Regulatory_News"`
	Sector            string `json:"Sector"`
}

// DefaultClassification returns the neutral classification used whenever
// an article cannot be classified
func DefaultClassification() Classification {
	return Classification{
		OverallSentiment:  SentimentNeutral,
		TokenPriceImpact:  ImpactNeutral,
		DeveloperActivity: RatingMedium,
		AdoptionPotential: RatingMedium,
		SecurityConcerns:  SecurityNotDetected,
		RegulatoryNews:    RegulatoryNeutral,
		Sector:            DefaultSector,
	}
}

// Normalize fills every empty field from the default classification
func (c Classification) Normalize() Classification {
	d := DefaultClassification()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.OverallSentiment, d.OverallSentiment)
	fill(&c.TokenPriceImpact, d.TokenPriceImpact)
	fill(&c.DeveloperActivity, d.DeveloperActivity)
	fill(&c.AdoptionPotential, d.AdoptionPotential)
	fill(&c.SecurityConcerns, d.SecurityConcerns)
	fill(&c.RegulatoryNews, d.RegulatoryNews)
	fill(&c.Sector, d.Sector)
	return c
}

// Outcome records whether a classification came from the model or from the fallback
type Outcome string

const (
	OutcomeParsed    Outcome = "parsed"
	OutcomeDefaulted Outcome = "defaulted"
)

// ClassificationResult is the classifier output. Callers can tell real data
// from fallback data through Outcome.
type ClassificationResult struct {
	Classification Classification `json:"classification"`
	Outcome        Outcome        `json:"outcome"`
	Reason         string         `json:"reason,omitempty"` // Why the fallback was used
}

// Parsed wraps a classification decoded from model output
func Parsed(c Classification) ClassificationResult {
	return ClassificationResult{
		Classification: c.Normalize(),
		Outcome:        OutcomeParsed,
	}
}

// Defaulted returns the fallback classification with the reason it was needed
func Defaulted(reason string) ClassificationResult {
	return ClassificationResult{
		Classification: DefaultClassification(),
		Outcome:        OutcomeDefaulted,
		Reason:         reason,
	}
}

// IsDefaulted reports whether the fallback classification was used
func (r ClassificationResult) IsDefaulted() bool {
	return r.Outcome == OutcomeDefaulted
}
