package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizpilot/internal/answer"
	"github.com/abhisek/quizpilot/internal/app"
	"github.com/abhisek/quizpilot/internal/browser"
	"github.com/abhisek/quizpilot/internal/config"
	"github.com/abhisek/quizpilot/internal/inject"
	"github.com/abhisek/quizpilot/internal/llm"
	"github.com/abhisek/quizpilot/internal/ocr"
	"github.com/abhisek/quizpilot/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer the quiz at the configured URL",
	RunE:  runSolver,
}

func init() {
	runCmd.Flags().StringP("config", "c", "", "Path to config file (default: ./config.yaml)")
	runCmd.Flags().Bool("headless", false, "Run the browser without a window")
	runCmd.Flags().IntP("max-questions", "n", 0, "Stop after N questions (0 = run to the last one)")
	runCmd.Flags().String("user-data-dir", "", "Browser profile directory (keeps the login session)")
	runCmd.Flags().Bool("verbose", false, "Debug logging")
}

func runSolver(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = resolveDBPath(cmd); err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	headless, _ := cmd.Flags().GetBool("headless")
	userDataDir, _ := cmd.Flags().GetString("user-data-dir")
	session, err := browser.NewSession(ctx, browser.Options{
		QuizURL:     cfg.Quiz.URL,
		Headless:    headless,
		UserDataDir: userDataDir,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	injector := inject.NewInjector(nil).
		WithMaxAttempts(cfg.Inject.MaxAttempts).
		WithBackoff(time.Duration(cfg.Inject.BackoffMs) * time.Millisecond)

	opts := []app.Option{
		app.WithEventRepo(eventRepo),
		app.WithLogger(log),
	}
	if n, _ := cmd.Flags().GetInt("max-questions"); n > 0 {
		opts = append(opts, app.WithMaxQuestions(n))
	}
	if cfg.OCR.Enabled {
		recognizer := ocr.NewRecognizer(ocr.NewHTTPBackend(cfg.OCR.Endpoint))
		opts = append(opts, app.WithRecognizer(recognizer, cfg.OCR.Concurrency))
	}

	requester := answer.NewRequester(provider, cfg.Models.Policies()).
		WithLanguage(cfg.Quiz.Language)
	runner := app.New(session, requester, injector, opts...)

	stats, err := runner.Run(ctx, cfg.Quiz.Username, cfg.Quiz.Password)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s: %d questions, %d answered, %d failed, %d skipped\n",
		runner.RunID(), stats.Questions, stats.Succeeded, stats.Failed, stats.Skipped)
	return nil
}
