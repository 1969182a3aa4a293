package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizpilot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizpilot",
	Short: "LLM-powered quiz answering engine",
	Long:  "Quizpilot — reads quiz questions from a live page, classifies them, asks an LLM, and writes verified answers back into the page.",
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZPILOT_DB env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(outcomesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QUIZPILOT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
