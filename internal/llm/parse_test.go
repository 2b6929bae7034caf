package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ppiankov/trendscope/internal/model"
)

func TestParseClassification(t *testing.T) {
	full := `{"Overall_Sentiment": "Positive", "Token_Price_Impact": "Bullish", "Developer_Activity": "High",
"Adoption_Potential": "High", "Security_Concerns": "Not Detected", "Regulatory_News": "Neutral", "Sector": "DeFi Lending"}`

	tests := []struct {
		name       string
		text       string
		wantSector string
		wantErr    bool
	}{
		{"json fence", "Here you go:\n```json\n" + full + "\n```\nThanks", "DeFi Lending", false},
		{"bare fence", "```\n" + full + "\n```", "DeFi Lending", false},
		{"no fence", full, "DeFi Lending", false},
		{"first fence wins", "```json\n{\"Sector\": \"NFT\"}\n```\n```json\n{\"Sector\": \"DeFi\"}\n```", "NFT", false},
		{"partial object", `{"Sector": "Gaming"}`, "Gaming", false},
		{"prose", "I cannot classify this article.", "", true},
		{"json array", "```json\n[1, 2]\n```", "", true},
		{"null", "null", "", true},
		{"empty fence", "```json\n```", "", true},
		{"truncated", "```json\n{\"Sector\": \"DeFi\"", "", true},
		{"wrong field type", `{"Sector": 7}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseClassification(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClassification() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if c.Sector != tt.wantSector {
				t.Errorf("expected sector %q, got %q", tt.wantSector, c.Sector)
			}
		})
	}
}

func TestParseClassification_FillsMissingFields(t *testing.T) {
	c, err := ParseClassification(`{"Developer_Activity": "Low"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := model.DefaultClassification()
	want.DeveloperActivity = model.RatingLow
	if c != want {
		t.Errorf("expected %+v, got %+v", want, c)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("body text", "Aptos ships v2", DefaultMaxContentChars)

	for _, field := range []string{
		"Overall_Sentiment", "Token_Price_Impact", "Developer_Activity", "Adoption_Potential",
		"Security_Concerns", "Regulatory_News", "Sector",
	} {
		if !strings.Contains(prompt, `"`+field+`"`) {
			t.Errorf("prompt missing field %s", field)
		}
	}
	if !strings.Contains(prompt, "```json") {
		t.Error("prompt should request a json code block")
	}
	if !strings.Contains(prompt, "Title: Aptos ships v2") || !strings.Contains(prompt, "Content: body text") {
		t.Error("prompt should embed title and content")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", DefaultMaxContentChars+50)

	got := Truncate(long, DefaultMaxContentChars)
	if n := utf8.RuneCountInString(got); n != DefaultMaxContentChars {
		t.Errorf("expected %d runes, got %d", DefaultMaxContentChars, n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte character")
	}

	if got := Truncate("short", DefaultMaxContentChars); got != "short" {
		t.Errorf("short input should be unchanged, got %q", got)
	}
}
