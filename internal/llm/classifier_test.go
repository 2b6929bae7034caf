package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
)

type fakeProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	delay   time.Duration
	prompts []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func TestClassifier_Parsed(t *testing.T) {
	provider := &fakeProvider{reply: "```json\n" + `{"Overall_Sentiment": "Negative", "Developer_Activity": "Low",
"Adoption_Potential": "Medium", "Security_Concerns": "Detected", "Regulatory_News": "Unfavorable",
"Token_Price_Impact": "Bearish", "Sector": "Infrastructure"}` + "\n```"}
	c := NewClassifier(provider, 0, time.Second, logger.Discard())

	result := c.Classify(context.Background(), "content", "title")

	if result.IsDefaulted() {
		t.Fatalf("expected parsed result, got defaulted: %s", result.Reason)
	}
	if result.Classification.SecurityConcerns != model.SecurityDetected {
		t.Errorf("expected Detected, got %s", result.Classification.SecurityConcerns)
	}
	if result.Classification.Sector != "Infrastructure" {
		t.Errorf("expected Infrastructure, got %s", result.Classification.Sector)
	}
}

func TestClassifier_DefaultsOnNonJSON(t *testing.T) {
	c := NewClassifier(&fakeProvider{reply: "Sorry, I can't help with that."}, 0, time.Second, logger.Discard())

	result := c.Classify(context.Background(), "content", "title")

	if !result.IsDefaulted() {
		t.Fatal("expected defaulted result")
	}
	if result.Classification != model.DefaultClassification() {
		t.Errorf("expected default classification, got %+v", result.Classification)
	}
	if result.Reason == "" {
		t.Error("expected a reason for the fallback")
	}
}

func TestClassifier_DefaultsOnEmptyResponse(t *testing.T) {
	c := NewClassifier(&fakeProvider{err: ErrEmptyResponse}, 0, time.Second, logger.Discard())

	result := c.Classify(context.Background(), "content", "title")

	if !result.IsDefaulted() {
		t.Fatal("expected defaulted result")
	}
	if result.Classification != model.DefaultClassification() {
		t.Errorf("expected default classification, got %+v", result.Classification)
	}
}

func TestClassifier_DefaultsOnTransportError(t *testing.T) {
	c := NewClassifier(&fakeProvider{err: errors.New("connection refused")}, 0, time.Second, logger.Discard())

	result := c.Classify(context.Background(), "content", "title")

	if !result.IsDefaulted() || !strings.Contains(result.Reason, "connection refused") {
		t.Errorf("expected defaulted result with reason, got %+v", result)
	}
}

func TestClassifier_LogsDefaultedArticle(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	c := NewClassifier(&fakeProvider{err: errors.New("connection refused")}, 0, time.Second, log)

	c.Classify(context.Background(), "content", "Aptos news")

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a warning for the defaulted article")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("expected warn level, got %s", entry.Level)
	}
	if entry.Message != "Classification request failed, using defaults" {
		t.Errorf("unexpected message: %q", entry.Message)
	}
}

func TestClassifier_DefaultsOnTimeout(t *testing.T) {
	c := NewClassifier(&fakeProvider{delay: time.Second}, 0, 20*time.Millisecond, logger.Discard())

	start := time.Now()
	result := c.Classify(context.Background(), "content", "title")

	if !result.IsDefaulted() {
		t.Fatal("expected defaulted result on timeout")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("classification did not honour its timeout")
	}
}

func TestClassifier_NoProvider(t *testing.T) {
	c := NewClassifier(nil, 0, 0, nil)

	result := c.Classify(context.Background(), "content", "title")

	if !result.IsDefaulted() {
		t.Fatal("expected defaulted result without provider")
	}
	if c.ProviderName() != "" {
		t.Errorf("expected empty provider name, got %q", c.ProviderName())
	}
}

func TestClassifier_TruncatesContent(t *testing.T) {
	provider := &fakeProvider{reply: `{"Sector": "DeFi"}`}
	c := NewClassifier(provider, 0, time.Second, logger.Discard())

	content := strings.Repeat("a", 5000) + "TAIL"
	c.Classify(context.Background(), content, "title")

	if len(provider.prompts) != 1 {
		t.Fatalf("expected one request, got %d", len(provider.prompts))
	}
	prompt := provider.prompts[0]
	if strings.Contains(prompt, "TAIL") {
		t.Error("content beyond the limit reached the prompt")
	}
	if !strings.Contains(prompt, strings.Repeat("a", DefaultMaxContentChars)) {
		t.Error("prompt should carry the first 3000 characters")
	}
	if utf8.RuneCountInString(prompt) > DefaultMaxContentChars+2000 {
		t.Error("prompt unexpectedly large")
	}
}
