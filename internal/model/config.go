package model

import "time"

// Config holds the complete trendscope configuration.
// API keys are injected into components from here; no component reads the environment.
type Config struct {
	News         NewsConfig         `yaml:"news" mapstructure:"news"`
	Market       MarketConfig       `yaml:"market" mapstructure:"market"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Content      ContentConfig      `yaml:"content" mapstructure:"content"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
}

// NewsConfig configures the article search provider (GNews)
type NewsConfig struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Language    string        `yaml:"language" mapstructure:"language"`
	MaxArticles int           `yaml:"max_articles" mapstructure:"max_articles"` // Articles kept per run
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MarketConfig configures the daily price series provider (Twelve Data)
type MarketConfig struct {
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	Symbol     string        `yaml:"symbol" mapstructure:"symbol"`
	Interval   string        `yaml:"interval" mapstructure:"interval"`
	OutputSize int           `yaml:"output_size" mapstructure:"output_size"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LLMConfig configures the article classifier
type LLMConfig struct {
	Provider        string        `yaml:"provider" mapstructure:"provider"` // gemini, openai, anthropic, ollama
	Model           string        `yaml:"model" mapstructure:"model"`       // Empty uses the provider's default
	APIKey          string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL         string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxContentChars int           `yaml:"max_content_chars" mapstructure:"max_content_chars"`
}

// ContentConfig configures full-text enrichment
type ContentConfig struct {
	Mode          string        `yaml:"mode" mapstructure:"mode"` // proxy, direct
	ProxyBaseURL  string        `yaml:"proxy_base_url" mapstructure:"proxy_base_url"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"` // Direct mode only
}

// CacheConfig configures the enriched-content cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds the per-article fan-out
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig configures the per-host outbound limiter
type RateLimitingConfig struct {
	RequestsPerSecond    float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize            int     `yaml:"burst_size" mapstructure:"burst_size"`
	LLMRequestsPerSecond float64 `yaml:"llm_requests_per_second" mapstructure:"llm_requests_per_second"` // 0 uses requests_per_second
}

// HTTPConfig holds proxy settings shared by every outbound client
type HTTPConfig struct {
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// LogConfig configures logrus
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		News: NewsConfig{
			BaseURL:     "https://gnews.io/api/v4/search",
			Language:    "en",
			MaxArticles: 5,
			Timeout:     15 * time.Second,
		},
		Market: MarketConfig{
			BaseURL:    "https://api.twelvedata.com/time_series",
			Symbol:     "APT/USD",
			Interval:   "1day",
			OutputSize: 7,
			Timeout:    15 * time.Second,
		},
		LLM: LLMConfig{
			Provider:        "gemini",
			Timeout:         20 * time.Second,
			MaxContentChars: 3000,
		},
		Content: ContentConfig{
			Mode:          "proxy",
			ProxyBaseURL:  "https://r.jina.ai",
			Timeout:       15 * time.Second,
			UserAgent:     "trendscope/0.1 (+https://github.com/ppiankov/trendscope)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       ".trendscope-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   6 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 5,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
