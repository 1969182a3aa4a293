// Package browser implements the page interfaces on a real Chrome
// session via chromedp. All script evaluation funnels through one
// mutex, so page mutation stays serialized no matter how many pipeline
// stages hold handles.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Options configures the Chrome session.
type Options struct {
	// QuizURL is the page Login navigates to.
	QuizURL string

	// Headless runs Chrome without a visible window. Live quiz runs
	// usually want a window so a human can watch.
	Headless bool

	// UserDataDir persists cookies between runs; empty means a
	// throwaway profile.
	UserDataDir string

	// OpTimeout bounds each individual page operation.
	OpTimeout time.Duration
}

const defaultOpTimeout = 20 * time.Second

// Session owns the Chrome tab. It implements page.Navigator and hands
// out page.Source and page.Widget handles that are invalidated when
// the session advances to the next question.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	quizURL   string
	opTimeout time.Duration

	// mu serializes every script evaluation against the tab.
	mu sync.Mutex

	// gen increments on navigation; handles carry the generation they
	// were created under and detach when it moves on.
	gen atomic.Int64

	// dialog holds the text of the most recent JavaScript dialog, which
	// the session auto-accepts. The quiz page alerts on the last
	// question.
	dialog atomic.Value // string
}

// NewSession starts Chrome and returns the live session.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
		quizURL:     opts.QuizURL,
		opTimeout:   opts.OpTimeout,
	}
	if s.opTimeout <= 0 {
		s.opTimeout = defaultOpTimeout
	}
	s.dialog.Store("")

	chromedp.ListenTarget(tabCtx, func(ev any) {
		if d, ok := ev.(*cdppage.EventJavascriptDialogOpening); ok {
			s.dialog.Store(d.Message)
			go func() {
				_ = chromedp.Run(tabCtx, cdppage.HandleJavaScriptDialog(true))
			}()
		}
	})

	// Fail fast if Chrome cannot start.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return s, nil
}

// Close tears down the tab and the browser process.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// run executes chromedp actions under the session mutex and the
// per-operation timeout.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opCtx, cancel := mergeContext(s.ctx, ctx, s.opTimeout)
	defer cancel()
	return chromedp.Run(opCtx, actions...)
}

// evalJSON evaluates a script and unmarshals its JSON value into out
// (out may be nil).
func (s *Session) evalJSON(ctx context.Context, script string, out any) error {
	var raw json.RawMessage
	if err := s.run(ctx, chromedp.Evaluate(script, &raw)); err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode script result: %w", err)
	}
	return nil
}

// takeDialog returns and clears the last auto-accepted dialog text.
func (s *Session) takeDialog() string {
	msg, _ := s.dialog.Load().(string)
	s.dialog.Store("")
	return msg
}

// mergeContext derives an operation context from the tab context that
// is also cancelled when the caller's context ends.
func mergeContext(tab, caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	opCtx, cancel := context.WithTimeout(tab, timeout)
	stop := context.AfterFunc(caller, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

// jsQuote renders a Go string as a JavaScript string literal.
func jsQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
