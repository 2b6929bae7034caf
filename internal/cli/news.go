package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trendscope/internal/model"
	"github.com/ppiankov/trendscope/internal/source"
)

var newsJSON bool

// newsCmd lists the articles a topic would analyze, without classification
var newsCmd = &cobra.Command{
	Use:   "news <topic|preset>",
	Short: "List news articles for a topic",
	Long: `News runs only the article search and prints the results.

Example:
  trendscope news "Aptos Ecosystem"
  trendscope news solana --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNews,
}

func init() {
	rootCmd.AddCommand(newsCmd)
	newsCmd.Flags().BoolVar(&newsJSON, "json", false, "print articles as JSON")
}

func runNews(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, logCloser, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()
	if cfg.News.APIKey == "" {
		return fmt.Errorf("news API key not set (GNEWS_API_KEY or news.api_key)")
	}

	query := model.ResolveTopic(joinArgs(args))
	client := source.NewNewsClient(cfg.News, cfg.HTTP, log)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.News.Timeout+5*time.Second)
	defer cancel()

	articles := client.FetchArticles(ctx, query)

	out := cmd.OutOrStdout()
	if newsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	if len(articles) == 0 {
		_, _ = fmt.Fprintf(out, "No articles found for %s\n", query)
		return nil
	}
	for i, a := range articles {
		_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, a.Title)
		if a.Source.Name != "" {
			_, _ = fmt.Fprintf(out, "   %s, %s\n", a.Source.Name, a.PublishedAt.Format("2006-01-02"))
		}
		_, _ = fmt.Fprintf(out, "   %s\n", a.URL)
	}
	return nil
}
