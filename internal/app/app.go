// Package app wires the pipeline together and runs the question loop:
// extract, recognize, classify, answer, inject, save, advance. Each
// question is isolated; one failure is logged and recorded, never
// fatal to the run.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/abhisek/quizpilot/internal/answer"
	"github.com/abhisek/quizpilot/internal/classify"
	"github.com/abhisek/quizpilot/internal/extract"
	"github.com/abhisek/quizpilot/internal/inject"
	"github.com/abhisek/quizpilot/internal/ocr"
	"github.com/abhisek/quizpilot/internal/page"
	"github.com/abhisek/quizpilot/internal/store"
)

// Runner drives one quiz run end to end.
type Runner struct {
	nav        page.Navigator
	requester  *answer.Requester
	injector   *inject.Injector
	recognizer *ocr.Recognizer // nil disables formula recognition
	events     store.EventRepo // nil disables outcome recording
	log        *slog.Logger

	runID          string
	ocrConcurrency int
	maxQuestions   int // 0 means run to the last question
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecognizer enables formula image recognition.
func WithRecognizer(r *ocr.Recognizer, concurrency int) Option {
	return func(run *Runner) {
		run.recognizer = r
		if concurrency > 0 {
			run.ocrConcurrency = concurrency
		}
	}
}

// WithEventRepo records per-question outcomes.
func WithEventRepo(repo store.EventRepo) Option {
	return func(run *Runner) { run.events = repo }
}

// WithMaxQuestions stops the run after n questions.
func WithMaxQuestions(n int) Option {
	return func(run *Runner) { run.maxQuestions = n }
}

// WithLogger sets the run's logger.
func WithLogger(l *slog.Logger) Option {
	return func(run *Runner) { run.log = l }
}

func New(nav page.Navigator, requester *answer.Requester, injector *inject.Injector, opts ...Option) *Runner {
	r := &Runner{
		nav:            nav,
		requester:      requester,
		injector:       injector,
		log:            slog.Default(),
		runID:          uuid.NewString(),
		ocrConcurrency: 4,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RunID identifies this run in the outcome log.
func (r *Runner) RunID() string { return r.runID }

// Stats summarizes a finished run.
type Stats struct {
	Questions int
	Succeeded int
	Failed    int // terminal non-success outcomes
	Skipped   int // pipeline errors and abandoned questions
}

// Run logs in and answers questions until the last one, the question
// budget, or context cancellation.
func (r *Runner) Run(ctx context.Context, username, password string) (*Stats, error) {
	if err := r.nav.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	r.log.Info("logged in", "run_id", r.runID)

	stats := &Stats{}
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if r.maxQuestions > 0 && stats.Questions >= r.maxQuestions {
			break
		}

		src, err := r.nav.Question(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			r.log.Error("question not available", "error", err)
			stats.Skipped++
		} else {
			stats.Questions++
			r.answerOne(ctx, src, stats)
		}

		if err := r.nav.Save(ctx); err != nil {
			r.log.Warn("save failed", "error", err)
		}
		last, err := r.nav.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			return stats, fmt.Errorf("advance to next question: %w", err)
		}
		if last {
			r.log.Info("reached last question", "run_id", r.runID)
			break
		}
	}

	r.log.Info("run finished", "run_id", r.runID,
		"questions", stats.Questions, "succeeded", stats.Succeeded,
		"failed", stats.Failed, "skipped", stats.Skipped)
	return stats, nil
}

// answerOne runs the pipeline for one question. Errors are absorbed
// here so the loop always advances.
func (r *Runner) answerOne(ctx context.Context, src page.Source, stats *Stats) {
	log := r.log.With("question", src.ID())

	outcome, typ, err := r.process(ctx, src)
	if err != nil {
		stats.Skipped++
		if errors.Is(err, page.ErrDetached) {
			log.Warn("question abandoned, page moved on")
			r.record(ctx, src.ID(), typ, "abandoned", 0, err.Error())
			return
		}
		log.Error("question failed", "error", err)
		r.record(ctx, src.ID(), typ, "error", 0, err.Error())
		return
	}

	r.record(ctx, src.ID(), typ, string(outcome.Status), outcome.Attempts, outcome.Detail)
	if outcome.Status == inject.StatusSuccess {
		stats.Succeeded++
		log.Info("answered", "type", typ, "adapter", outcome.Adapter, "attempts", outcome.Attempts)
		return
	}
	stats.Failed++
	log.Warn("injection did not land", "type", typ, "status", outcome.Status,
		"attempts", outcome.Attempts, "detail", outcome.Detail)
}

// process runs extract → recognize → classify → answer → inject for
// one question.
func (r *Runner) process(ctx context.Context, src page.Source) (*inject.Outcome, classify.Type, error) {
	q, err := extract.FromSource(ctx, src)
	if err != nil {
		return nil, "", err
	}

	if err := r.resolveFormulas(ctx, src, q); err != nil {
		return nil, "", err
	}

	typ, err := classify.Classify(q)
	if err != nil {
		return nil, "", err
	}

	ans, err := r.requester.Answer(ctx, q, typ)
	if err != nil {
		return nil, typ, err
	}
	r.log.Debug("answer parsed", "question", q.ID, "type", typ, "answer", ans.String())

	w, err := r.nav.Target(ctx)
	if err != nil {
		return nil, typ, err
	}
	outcome, err := r.injector.Inject(ctx, w, ans.Values())
	if err != nil {
		return nil, typ, err
	}
	return outcome, typ, nil
}

// resolveFormulas captures the question's embedded images and replaces
// the placeholders in the prompt. Without a recognizer, or when the
// backend is down, placeholders degrade to bare image markers.
func (r *Runner) resolveFormulas(ctx context.Context, src page.Source, q *extract.Question) error {
	if len(q.Formulas) == 0 {
		return nil
	}
	if r.recognizer == nil {
		q.ResolveFormulas(nil)
		return nil
	}

	images := make([][]byte, len(q.Formulas))
	for i, ref := range q.Formulas {
		raw, err := src.ImageBytes(ctx, ref.Ref)
		if err != nil {
			if errors.Is(err, page.ErrDetached) || ctx.Err() != nil {
				return err
			}
			r.log.Warn("image capture failed", "question", q.ID, "ref", ref.Ref, "error", err)
			continue
		}
		images[i] = raw
	}

	notations, err := r.recognizer.RecognizeAll(ctx, images, r.ocrConcurrency)
	if err != nil {
		return err
	}
	q.ResolveFormulas(notations)
	return nil
}

// record appends one outcome event; recording problems are logged and
// otherwise ignored.
func (r *Runner) record(ctx context.Context, questionID string, typ classify.Type, status string, attempts int, detail string) {
	if r.events == nil {
		return
	}
	err := r.events.AppendOutcome(ctx, store.OutcomeData{
		RunID:        r.runID,
		QuestionID:   questionID,
		QuestionType: string(typ),
		Status:       status,
		Attempts:     attempts,
		Detail:       detail,
	})
	if err != nil {
		r.log.Warn("outcome not recorded", "question", questionID, "error", err)
	}
}
