package llm

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		config   Config
		wantName string
		wantErr  bool
	}{
		{"gemini", Config{APIKey: "k"}, "gemini", false},
		{"GEMINI", Config{APIKey: "k"}, "gemini", false},
		{"openai", Config{APIKey: "k"}, "openai", false},
		{"claude", Config{APIKey: "k"}, "anthropic", false},
		{"ollama", Config{Model: "mistral"}, "ollama", false},
		{"gemini", Config{}, "", true},
		{"unknown", Config{}, "", true},
		{"", Config{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := tt.config
			cfg.Provider = tt.provider

			p, err := NewProvider(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantName == "" {
				if p != nil {
					t.Errorf("expected nil provider, got %s", p.Name())
				}
				return
			}
			if p == nil || p.Name() != tt.wantName {
				t.Errorf("expected provider %s, got %v", tt.wantName, p)
			}
		})
	}
}
