package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/trendscope/internal/model"
)

// fencedBlock matches the first fenced code block; the language tag is optional
var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// ParseClassification extracts the classification JSON from a model reply.
// The first fenced block is used when present, otherwise the whole reply.
// The payload must be a JSON object; missing fields are filled with defaults.
func ParseClassification(text string) (model.Classification, error) {
	payload := text
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		payload = m[1]
	}
	payload = strings.TrimSpace(payload)

	if payload == "" {
		return model.Classification{}, errors.New("empty classification payload")
	}
	if !strings.HasPrefix(payload, "{") {
		return model.Classification{}, errors.New("classification payload is not a JSON object")
	}

	var c model.Classification
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return model.Classification{}, fmt.Errorf("decode classification: %w", err)
	}

	return c.Normalize(), nil
}
