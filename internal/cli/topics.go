package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trendscope/internal/model"
)

// topicsCmd lists the preset topics
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List preset topics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, t := range model.PresetTopics {
			_, _ = fmt.Fprintf(out, "%-18s %s\n", t.Name, t.Query)
		}
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
