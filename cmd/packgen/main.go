package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/startup-pack-agent/internal/logger"
)

var (
	// Global flags
	verbose bool
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "packgen",
	Short: "Generate startup packs from the command line",
	Long: `packgen runs the startup pack pipeline locally or checks a running server.

Configuration is read from the environment and from .env when present
(LLM_PROVIDER, GEMINI_API_KEY, OPENAI_API_KEY, GAS_FEEDBACK_URL, ...).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newFeedbackCmd())
	rootCmd.AddCommand(newSmokeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliLogger logs only with --verbose so command output stays clean.
func cliLogger() (*logger.Logger, error) {
	if !verbose {
		return logger.NewNop(), nil
	}
	return logger.New("development")
}
