package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/abhisek/quizpilot/internal/page"
)

// Selectors of the quiz platform's markup. The question grid loads via
// AJAX; everything below it is addressed relative to the active item.
const (
	selUsername     = "#UserName"
	selPassword     = "#Password"
	selLoginSubmit  = "button[type='submit']"
	selQuestionItem = "#c-grid-ajax .question-item"
	selAnswerArea   = "#c-grid-ajax .question-item .question-answer"
	selSaveButton   = "#cmd_saveQuestion"
	selNextButton   = "#cmd_next"
)

// lastQuestionMarkers are dialog fragments the platform shows when the
// next-question click runs off the end.
var lastQuestionMarkers = []string{"最后", "last question", "没有下一题"}

// Login opens the quiz URL and signs in with the account form.
func (s *Session) Login(ctx context.Context, username, password string) error {
	err := s.run(ctx,
		chromedp.Navigate(s.quizURL),
		chromedp.WaitVisible(selUsername),
		chromedp.SendKeys(selUsername, username),
		chromedp.SendKeys(selPassword, password),
		chromedp.Click(selLoginSubmit),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// Question waits for the active question to render and returns its
// source handle, bound to the current navigation generation.
func (s *Session) Question(ctx context.Context) (page.Source, error) {
	if err := s.run(ctx, chromedp.WaitVisible(selQuestionItem)); err != nil {
		return nil, fmt.Errorf("wait for question: %w", err)
	}

	var meta struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}
	script := fmt.Sprintf(`(function () {
	var el = document.querySelector(%s);
	if (!el) return { id: '', kind: '' };
	return { id: el.id || '', kind: (el.getAttribute('data-type') || '').toUpperCase() };
})()`, jsQuote(selQuestionItem))
	if err := s.evalJSON(ctx, script, &meta); err != nil {
		return nil, fmt.Errorf("read question meta: %w", err)
	}
	if meta.ID == "" && meta.Kind == "" {
		return nil, page.ErrDetached
	}

	return &questionSource{
		sess: s,
		gen:  s.gen.Load(),
		id:   meta.ID,
		kind: meta.Kind,
	}, nil
}

// Target returns the answer widget of the current question. The widget
// falls back to the whole question item when the page has no dedicated
// answer container (code editors often replace it).
func (s *Session) Target(ctx context.Context) (page.Widget, error) {
	var sel string
	script := fmt.Sprintf(`document.querySelector(%s) ? %s : %s`,
		jsQuote(selAnswerArea), jsQuote(selAnswerArea), jsQuote(selQuestionItem))
	if err := s.evalJSON(ctx, script, &sel); err != nil {
		return nil, fmt.Errorf("locate answer widget: %w", err)
	}
	return &widget{sess: s, gen: s.gen.Load(), sel: sel}, nil
}

// Save clicks the save control when the page has one. Its absence is
// not an error; some platforms persist on input events alone.
func (s *Session) Save(ctx context.Context) error {
	script := fmt.Sprintf(`(function () {
	var btn = document.querySelector(%s);
	if (!btn) return false;
	btn.click();
	return true;
})()`, jsQuote(selSaveButton))
	if err := s.evalJSON(ctx, script, nil); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Next advances to the next question. It reports last=true when the
// platform's dialog announced the end of the quiz. All outstanding
// handles detach.
func (s *Session) Next(ctx context.Context) (bool, error) {
	s.takeDialog()

	script := fmt.Sprintf(`(function () {
	var btn = document.querySelector(%s);
	if (!btn) return false;
	btn.click();
	return true;
})()`, jsQuote(selNextButton))

	var clicked bool
	if err := s.evalJSON(ctx, script, &clicked); err != nil {
		return false, fmt.Errorf("next: %w", err)
	}
	s.gen.Add(1)
	if !clicked {
		return true, nil
	}

	// Give a last-question dialog a moment to fire before reading it.
	if err := s.run(ctx, chromedp.Sleep(500*time.Millisecond)); err != nil {
		return false, err
	}
	return isLastQuestionDialog(s.takeDialog()), nil
}

func isLastQuestionDialog(msg string) bool {
	if msg == "" {
		return false
	}
	lower := strings.ToLower(msg)
	for _, marker := range lastQuestionMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
