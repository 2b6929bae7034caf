package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
)

// Classifier turns article text into a structured classification.
// It never fails: every error path degrades to the default classification.
type Classifier struct {
	provider Provider
	maxChars int
	timeout  time.Duration
	log      logrus.FieldLogger
}

// NewClassifier creates a classifier. A nil provider yields defaulted results.
func NewClassifier(provider Provider, maxChars int, timeout time.Duration, log logrus.FieldLogger) *Classifier {
	if maxChars <= 0 {
		maxChars = DefaultMaxContentChars
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Classifier{
		provider: provider,
		maxChars: maxChars,
		timeout:  timeout,
		log:      logger.Or(log).WithField("component", "classifier"),
	}
}

// ProviderName returns the configured provider name, or "" when none is set
func (c *Classifier) ProviderName() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// Classify asks the model for a classification of one article.
// One attempt is made; there are no retries.
func (c *Classifier) Classify(ctx context.Context, content, title string) model.ClassificationResult {
	if c.provider == nil {
		return model.Defaulted("no LLM provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := c.log.WithField("title", title)

	text, err := c.provider.Generate(ctx, BuildPrompt(content, title, c.maxChars))
	if err != nil {
		log.WithError(err).Warn("Classification request failed, using defaults")
		return model.Defaulted(err.Error())
	}

	classification, err := ParseClassification(text)
	if err != nil {
		log.WithError(err).Warn("Classification reply not parseable, using defaults")
		return model.Defaulted(err.Error())
	}

	log.WithField("sector", classification.Sector).Debug("Article classified")
	return model.Parsed(classification)
}
