package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/trendscope/internal/model"
	"github.com/ppiankov/trendscope/internal/pipeline"
)

var (
	outJSON      string
	outMD        string
	timeout      time.Duration
	maxArticles  int
	workers      int
	llmProvider  string
	llmModel     string
	contentMode  string
	cacheEnabled bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <topic|preset>",
	Short: "Run the trend analysis for a topic",
	Long: `Analyze searches recent news for a topic, enriches and classifies each
article, scores job market saturation per sector and fetches a recent
daily price series.

The topic is either a preset name (see 'trendscope topics') or a raw
search query.

Example:
  trendscope analyze "DeFi Trends"
  trendscope analyze '"Aptos" AND "Move"' --json batch.json --md batch.md
  trendscope analyze "NFTs & Gaming" --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "batch.json", "output JSON path (empty to skip)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().IntVar(&maxArticles, "max-articles", 0, "articles to analyze (default from config)")
	analyzeCmd.Flags().IntVar(&workers, "workers", 0, "concurrent article workers (default from config)")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (gemini, openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	analyzeCmd.Flags().StringVar(&contentMode, "content-mode", "", "full-text mode (proxy, direct)")
	analyzeCmd.Flags().BoolVar(&cacheEnabled, "cache", false, "cache enriched article text")
}

// applyAnalyzeFlags overrides cfg with explicitly set flags
func applyAnalyzeFlags(cfg *model.Config) {
	if maxArticles > 0 {
		cfg.News.MaxArticles = maxArticles
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if llmProvider != "" && !strings.EqualFold(llmProvider, cfg.LLM.Provider) {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = ""
		cfg.LLM.APIKey = ""
		if env, ok := providerKeyEnv[strings.ToLower(llmProvider)]; ok {
			cfg.LLM.APIKey = viper.GetString("provider_keys." + env)
		}
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if contentMode != "" {
		cfg.Content.Mode = contentMode
	}
	if cacheEnabled {
		cfg.Cache.Enabled = true
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	topic := joinArgs(args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cfg)

	log, logCloser, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	if cfg.News.APIKey == "" {
		return fmt.Errorf("news API key not set (GNEWS_API_KEY or news.api_key)")
	}
	if cfg.Market.APIKey == "" {
		log.Warn("Market API key not set (TWELVE_DATA_API_KEY), the fallback price series will be used")
	}

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	batch, err := p.RunAnalysis(ctx, topic)
	if err != nil && !errors.Is(err, pipeline.ErrSuperseded) {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cmd.OutOrStdout())
	if err := renderer.Render(batch, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if batch.Error != "" {
		return errors.New(batch.Error)
	}
	return nil
}
