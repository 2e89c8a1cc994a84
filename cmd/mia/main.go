package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mia/internal/config"
	"mia/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mia",
	Short: "Score and critique a web page's marketing copy",
	Long: `mia fetches a web page, extracts its core text, and asks Gemini to score
the opening hook, predict the target audience, and flag conversion killers.
When the model is unreachable the analysis falls back to a local heuristic,
so a result always comes back.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log = logging.Setup(cfg.Logging.Level, cfg.Gemini.APIKey)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.mia.yaml or $HOME/.mia.yaml)")
	rootCmd.PersistentFlags().String("model", "", "Gemini model name")
	rootCmd.PersistentFlags().Int("max-retries", 0, "retry budget for transient Gemini failures")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")

	_ = viper.BindPFlag("gemini.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("gemini.max_retries", rootCmd.PersistentFlags().Lookup("max-retries"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
