package main

import (
	"github.com/spf13/cobra"

	"mia/internal/insight"
	"mia/internal/llmclient"
	"mia/internal/scrape"
	"mia/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive analyzer",
	Long: `Launch a terminal UI that prompts for URLs, analyzes each page, and
renders the insights in place. Repeated analyses of unchanged pages are
served from an in-memory cache.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	extractor := scrape.NewExtractor(cfg.ScrapeTimeout(), cfg.Scrape.MaxContentChars, log)
	client := llmclient.New(llmclient.Settings{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
	}, log)
	defer client.Close()

	return tui.Start(tui.Options{
		Scraper:       extractor,
		Analyzer:      insight.NewAnalyzer(client, log),
		ReportsDir:    cfg.Reports.Directory,
		Timeout:       cfg.GeminiTimeout(),
		APIKeyPresent: cfg.Gemini.APIKey != "",
	})
}
