// Package page defines the interfaces through which the engine talks to a
// live quiz page. The browser session, navigation, and widget handles are
// owned by the driver (see internal/browser); the pipeline only ever sees
// these interfaces, which keeps every stage testable without a browser.
package page

import (
	"context"
	"errors"
)

// ErrDetached is returned by handle operations after the page navigated
// away from the question that owned the handle. Callers treat it as a
// signal to abandon the current question, never as a crash.
var ErrDetached = errors.New("page: handle detached from live page")

// Source is read access to one question's rendered markup and assets.
// Handles are valid only while their question is the active one.
type Source interface {
	// ID returns the page-scoped identifier of the question element.
	ID() string

	// Kind returns the page's own type attribute for the question,
	// upper-cased (e.g. "SINGLE_CHOICE", "JUDGE", "FILL_BLANK",
	// "PROGRAM_DESIGN"). May be empty on pages that don't tag types.
	Kind() string

	// HTML returns the outer HTML of the question block, including the
	// stem, option labels, blank inputs, and any starter-code <pre>.
	HTML(ctx context.Context) (string, error)

	// ImageBytes captures the rendered bytes of an embedded image,
	// addressed by the reference the extractor found in the markup.
	ImageBytes(ctx context.Context, ref string) ([]byte, error)
}

// Widget is a handle to the question's answer widget. Adapters drive it
// exclusively through script evaluation so that one contract covers
// radio groups, blank-input groups, textareas, rich-text editors, and
// code editors alike. Scripts run in the widget's own document (the
// driver resolves same-origin iframe wrappers).
type Widget interface {
	// Eval evaluates a JavaScript expression against the widget and
	// unmarshals the result into out (out may be nil to discard it).
	// The widget element is bound as `el` in the script's scope.
	Eval(ctx context.Context, script string, out any) error
}

// Navigator is the excluded collaborator that owns login, question
// iteration, and persistence clicks. The engine calls it between
// questions; it never mutates a question's content itself.
type Navigator interface {
	// Login opens the quiz URL and authenticates.
	Login(ctx context.Context, username, password string) error

	// Question waits for the current question to render and returns
	// its source handle.
	Question(ctx context.Context) (Source, error)

	// Target returns the answer widget handle of the current question.
	Target(ctx context.Context) (Widget, error)

	// Save clicks the page's save control when one is present. Absence
	// of the control is not an error.
	Save(ctx context.Context) error

	// Next advances to the next question. It reports true when the
	// page signalled that the current question was the last one.
	Next(ctx context.Context) (last bool, err error)
}
