package cli

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
)

// providerKeyEnv lists the conventional API key variables of each provider
var providerKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"google":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"claude":    "ANTHROPIC_API_KEY",
}

// configureEnv makes TRENDSCOPE_LLM_PROVIDER override llm.provider, and so on
func configureEnv() {
	viper.SetEnvPrefix("TRENDSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindEnv()
}

// bindEnv registers every config key with viper so TRENDSCOPE_* variables reach Unmarshal,
// plus the provider-native key names
func bindEnv() {
	for _, key := range configKeys(reflect.TypeOf(model.Config{}), "") {
		_ = viper.BindEnv(key)
	}

	_ = viper.BindEnv("news.api_key", "TRENDSCOPE_NEWS_API_KEY", "GNEWS_API_KEY")
	_ = viper.BindEnv("market.api_key", "TRENDSCOPE_MARKET_API_KEY", "TWELVE_DATA_API_KEY")
	_ = viper.BindEnv("llm.base_url", "TRENDSCOPE_LLM_BASE_URL", "OLLAMA_BASE_URL")
	for _, env := range providerKeyEnv {
		_ = viper.BindEnv("provider_keys."+env, env)
	}
}

// configKeys walks the mapstructure tags of t and returns dotted keys
func configKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct && f.Type.PkgPath() == t.PkgPath() {
			keys = append(keys, configKeys(f.Type, key)...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// loadConfig merges defaults, the config file and the environment
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		if env, ok := providerKeyEnv[strings.ToLower(cfg.LLM.Provider)]; ok {
			cfg.LLM.APIKey = viper.GetString("provider_keys." + env)
		}
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	return cfg, nil
}

// newLogger builds the process logger from cfg; the closer releases its log file
func newLogger(cfg *model.Config) (*logrus.Logger, io.Closer, error) {
	log, closer, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return log, closer, nil
}

// maskSecret keeps the last four characters of a key for display
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
