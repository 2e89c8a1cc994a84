package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mia/internal/insight"
	"mia/internal/llmclient"
	"mia/internal/report"
	"mia/internal/scrape"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze one page's marketing copy",
	Long: `Fetch a page, extract its headline and body text, and produce marketing
insights: a hook score, a target audience persona, and up to three
conversion killers.

Example:
  mia analyze https://example.com/landing
  mia analyze --json https://example.com/landing
  mia analyze --save https://example.com/landing`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "print the report as JSON instead of styled text")
	analyzeCmd.Flags().Bool("save", false, "also write the report as markdown into the reports directory")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")

	extractor := scrape.NewExtractor(cfg.ScrapeTimeout(), cfg.Scrape.MaxContentChars, log)
	client := llmclient.New(llmclient.Settings{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
	}, log)
	defer client.Close()
	analyzer := insight.NewAnalyzer(client, log)

	log.Info().Str("url", rawURL).Msg("starting analysis")

	content, err := extractor.Extract(cmd.Context(), rawURL)
	if err != nil {
		return classifyExtractionError(err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GeminiTimeout())
	defer cancel()
	ins := analyzer.Analyze(ctx, content.HookText, content.FullText)
	rep := report.New(rawURL, ins)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		fmt.Println(report.Render(rep))
	}

	if save {
		path, err := rep.Save(cfg.Reports.Directory)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		fmt.Printf("Report saved to %s\n", path)
	}

	return nil
}

// classifyExtractionError keeps the two extraction failure classes apart in
// what the user sees. Analysis-stage failures never reach here: the analyzer
// absorbs them into the fallback result.
func classifyExtractionError(err error) error {
	var scrapeErr *scrape.ScrapeError
	var extractErr *scrape.ExtractError
	switch {
	case errors.As(err, &scrapeErr):
		return fmt.Errorf("scraping error: %w", err)
	case errors.As(err, &extractErr):
		return fmt.Errorf("content extraction error: %w", err)
	default:
		return fmt.Errorf("unexpected error during scraping: %w", err)
	}
}
