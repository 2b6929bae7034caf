package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trendscope/internal/cache"
	"github.com/ppiankov/trendscope/internal/model"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the enriched-content cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every cached article text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir, err := purgeCache(cfg.Cache)
		if err != nil {
			return err
		}
		if dir == "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No cache directory configured, nothing to purge")
			return nil
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Purged %s\n", dir)
		return nil
	},
}

// purgeCache clears the on-disk content cache even when caching is disabled for runs.
// It returns the purged directory, or "" when none is configured.
func purgeCache(cfg model.CacheConfig) (string, error) {
	if cfg.Dir == "" {
		return "", nil
	}
	cfg.Enabled = true
	if err := cache.FromConfig(cfg).Purge(); err != nil {
		return "", fmt.Errorf("purge cache: %w", err)
	}
	return cfg.Dir, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
}
