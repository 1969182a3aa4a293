package inject

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizpilot/internal/page"
)

// Status is a terminal injection outcome.
type Status string

const (
	// StatusSuccess: the readback matched the written answer.
	StatusSuccess Status = "success"
	// StatusVerificationFailed: every attempt wrote cleanly but the
	// readback never matched.
	StatusVerificationFailed Status = "verification-failed"
	// StatusAdapterNotFound: no adapter recognized the widget.
	StatusAdapterNotFound Status = "adapter-not-found"
	// StatusExhaustedRetries: the attempt budget ran out on write or
	// read errors.
	StatusExhaustedRetries Status = "exhausted-retries"
)

// Outcome is the terminal result of injecting one answer.
type Outcome struct {
	Status   Status
	Attempts int
	Adapter  string // empty when no adapter matched
	Detail   string // last failure detail, for the outcome log
}

const (
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 300 * time.Millisecond
)

// Injector runs the write/verify/retry loop over a widget. A page that
// detaches mid-flight (navigation, ctx cancellation) aborts the loop
// with an error instead of an Outcome; the caller abandons the
// question without counting it as answered.
type Injector struct {
	adapters    []Adapter
	maxAttempts int
	backoff     time.Duration
}

func NewInjector(adapters []Adapter) *Injector {
	if len(adapters) == 0 {
		adapters = DefaultAdapters()
	}
	return &Injector{
		adapters:    adapters,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultRetryBackoff,
	}
}

// WithMaxAttempts bounds the write/verify attempts per question.
func (in *Injector) WithMaxAttempts(n int) *Injector {
	if n > 0 {
		in.maxAttempts = n
	}
	return in
}

// WithBackoff sets the pause between failed attempts.
func (in *Injector) WithBackoff(d time.Duration) *Injector {
	in.backoff = d
	return in
}

// Inject writes values into the widget and verifies them, retrying up
// to the attempt budget. Every question gets a terminal Outcome unless
// the widget detaches or the context ends.
func (in *Injector) Inject(ctx context.Context, w page.Widget, values []string) (*Outcome, error) {
	adapter, err := in.detect(ctx, w)
	if err != nil {
		return nil, err
	}
	if adapter == nil {
		return &Outcome{Status: StatusAdapterNotFound}, nil
	}

	expected := normalizeContent(adapter.Expected(values))

	var lastMismatch bool
	var detail string
	for attempt := 1; attempt <= in.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, in.backoff); err != nil {
				return nil, err
			}
		}

		if err := adapter.Write(ctx, w, values); err != nil {
			if abandoned(ctx, err) {
				return nil, fmt.Errorf("write attempt %d: %w", attempt, err)
			}
			lastMismatch = false
			detail = "write: " + err.Error()
			continue
		}

		got, err := adapter.Read(ctx, w)
		if err != nil {
			if abandoned(ctx, err) {
				return nil, fmt.Errorf("verify attempt %d: %w", attempt, err)
			}
			lastMismatch = false
			detail = "read: " + err.Error()
			continue
		}

		if normalizeContent(got) == expected {
			return &Outcome{Status: StatusSuccess, Attempts: attempt, Adapter: adapter.Name()}, nil
		}
		lastMismatch = true
		detail = fmt.Sprintf("readback mismatch on attempt %d", attempt)
	}

	status := StatusExhaustedRetries
	if lastMismatch {
		status = StatusVerificationFailed
	}
	return &Outcome{
		Status:   status,
		Attempts: in.maxAttempts,
		Adapter:  adapter.Name(),
		Detail:   detail,
	}, nil
}

// detect probes the adapters in order. Probe errors other than
// detachment demote the adapter instead of failing the question.
func (in *Injector) detect(ctx context.Context, w page.Widget) (Adapter, error) {
	for _, a := range in.adapters {
		ok, err := a.Detect(ctx, w)
		if err != nil {
			if abandoned(ctx, err) {
				return nil, fmt.Errorf("detect %s: %w", a.Name(), err)
			}
			continue
		}
		if ok {
			return a, nil
		}
	}
	return nil, nil
}

// abandoned reports errors that end the question rather than one
// attempt: the handle detached or the run's context is done.
func abandoned(ctx context.Context, err error) bool {
	return errors.Is(err, page.ErrDetached) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		ctx.Err() != nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// normalizeContent makes readback comparison robust to the whitespace
// editors rewrite: CRLF becomes LF, trailing space per line drops, and
// outer blank lines drop.
func normalizeContent(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
