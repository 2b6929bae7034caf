package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/trendscope/internal/model"
)

// Renderer writes analysis batches as JSON, Markdown and a terminal summary
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer that prints summaries to out
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// Render writes the requested outputs and prints the summary
func (r *Renderer) Render(batch *model.AnalysisBatch, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := r.RenderJSON(batch, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(r.out, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := r.RenderMarkdown(batch, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(r.out, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	r.RenderSummary(batch)
	return nil
}

// RenderJSON writes the batch as indented JSON
func (r *Renderer) RenderJSON(batch *model.AnalysisBatch, path string) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the batch as a Markdown report
func (r *Renderer) RenderMarkdown(batch *model.AnalysisBatch, path string) error {
	return writeFile(path, []byte(Markdown(batch)))
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(batch *model.AnalysisBatch) {
	w := r.out

	_, _ = fmt.Fprintf(w, "\nTopic: %s\n", batch.Topic)
	if batch.Error != "" {
		_, _ = fmt.Fprintf(w, "✗ %s\n", batch.Error)
	} else {
		_, _ = fmt.Fprintf(w, "Articles analyzed: %d (%d defaulted)\n", len(batch.Articles), batch.DefaultedCount())
		for _, s := range batch.SectorScores {
			_, _ = fmt.Fprintf(w, "  %-15s %3d  %s\n", s.Sector, s.Score, s.Level)
		}
	}

	if change, ok := PriceChange(batch.PriceSeries); ok {
		last := batch.PriceSeries[len(batch.PriceSeries)-1]
		_, _ = fmt.Fprintf(w, "Price: %s%s on %s (%s%% over %d days)\n",
			symbolPrefix(batch.PriceSymbol), formatClose(last), last.Date, signed(change), len(batch.PriceSeries))
	}
	for _, n := range batch.Notices {
		_, _ = fmt.Fprintf(w, "⚠ %s\n", n)
	}
}

// Markdown renders the batch as a Markdown document
func Markdown(batch *model.AnalysisBatch) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Trend analysis: %s\n\n", batch.Topic)
	fmt.Fprintf(&sb, "- Run: %d (`%s`)\n", batch.RunID, batch.ID)
	fmt.Fprintf(&sb, "- Completed: %s\n\n", batch.CompletedAt.Format("2006-01-02 15:04:05 MST"))

	for _, n := range batch.Notices {
		fmt.Fprintf(&sb, "> %s\n\n", n)
	}

	if batch.Error != "" {
		fmt.Fprintf(&sb, "**Error:** %s\n\n", batch.Error)
	}

	if len(batch.SectorScores) > 0 {
		sb.WriteString("## Job market saturation\n\n")
		sb.WriteString("| Sector | Score | Level | Articles |\n|---|---|---|---|\n")
		for _, s := range batch.SectorScores {
			fmt.Fprintf(&sb, "| %s | %d | %s | %d |\n", s.Sector, s.Score, s.Level, s.Articles)
		}
		sb.WriteString("\n")
	}

	if len(batch.Sentiment) > 0 {
		sb.WriteString("## Sentiment\n\n")
		for _, label := range []string{model.SentimentPositive, model.SentimentNeutral, model.SentimentNegative} {
			if n, ok := batch.Sentiment[label]; ok {
				fmt.Fprintf(&sb, "- %s: %d\n", label, n)
			}
		}
		var other []string
		for label := range batch.Sentiment {
			if label != model.SentimentPositive && label != model.SentimentNeutral && label != model.SentimentNegative {
				other = append(other, label)
			}
		}
		sort.Strings(other)
		for _, label := range other {
			fmt.Fprintf(&sb, "- %s: %d\n", label, batch.Sentiment[label])
		}
		sb.WriteString("\n")
	}

	if len(batch.Articles) > 0 {
		sb.WriteString("## Articles\n\n")
		for i, a := range batch.Articles {
			c := batch.Classifications[i]
			title := batch.DisplayTitles[i]
			if a.URL != "" {
				title = fmt.Sprintf("[%s](%s)", title, a.URL)
			}
			fmt.Fprintf(&sb, "%d. %s", i+1, title)
			if a.Source.Name != "" {
				fmt.Fprintf(&sb, " (%s)", a.Source.Name)
			}
			sb.WriteString("\n")
			fmt.Fprintf(&sb, "   - Sector: %s, Sentiment: %s, Price impact: %s\n", c.Sector, c.OverallSentiment, c.TokenPriceImpact)
			fmt.Fprintf(&sb, "   - Developers: %s, Adoption: %s, Security: %s, Regulation: %s\n",
				c.DeveloperActivity, c.AdoptionPotential, c.SecurityConcerns, c.RegulatoryNews)
			if batch.Outcomes[i] == model.OutcomeDefaulted {
				sb.WriteString("   - _Classification unavailable, defaults shown_\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(batch.PriceSeries) > 0 {
		sb.WriteString("## Price series")
		if batch.PriceSymbol != "" {
			fmt.Fprintf(&sb, " (%s)", batch.PriceSymbol)
		}
		sb.WriteString("\n\n| Date | Close |\n|---|---|\n")
		for _, pt := range batch.PriceSeries {
			fmt.Fprintf(&sb, "| %s | %s |\n", pt.Date, formatClose(pt))
		}
		if change, ok := PriceChange(batch.PriceSeries); ok {
			fmt.Fprintf(&sb, "\nChange over period: %s%%\n", signed(change))
		}
	}

	return sb.String()
}

// PriceChange returns the percentage change from the first to the last close
func PriceChange(series []model.PricePoint) (decimal.Decimal, bool) {
	if len(series) < 2 {
		return decimal.Zero, false
	}
	first, err := series[0].CloseDecimal()
	if err != nil || first.IsZero() {
		return decimal.Zero, false
	}
	last, err := series[len(series)-1].CloseDecimal()
	if err != nil {
		return decimal.Zero, false
	}
	return last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2), true
}

func symbolPrefix(symbol string) string {
	if symbol == "" {
		return ""
	}
	return symbol + " "
}

func formatClose(p model.PricePoint) string {
	d, err := p.CloseDecimal()
	if err != nil {
		return p.Close
	}
	return d.StringFixed(2)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
