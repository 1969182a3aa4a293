package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizpilot/internal/store"
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes <run-id>",
	Short: "Show per-question outcomes of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().Outcomes(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("query outcomes: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No outcomes recorded for this run.")
			return nil
		}

		fmt.Printf("%-19s  %-16s  %-14s  %-20s  %-8s  %s\n",
			"Timestamp", "Question", "Type", "Status", "Attempts", "Detail")
		fmt.Println(strings.Repeat("─", 100))

		counts := map[string]int{}
		for _, e := range events {
			counts[e.Status]++
			fmt.Printf("%-19s  %-16s  %-14s  %-20s  %-8d  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.QuestionID, 16),
				e.QuestionType,
				e.Status,
				e.Attempts,
				truncate(e.Detail, 40),
			)
		}

		fmt.Println(strings.Repeat("─", 100))
		var parts []string
		for status, n := range counts {
			parts = append(parts, fmt.Sprintf("%s: %d", status, n))
		}
		fmt.Println(strings.Join(parts, "  "))
		return nil
	},
}
