// Package answer obtains a typed answer for a classified question: it
// builds the per-type prompt, calls the model under the configured
// policy, and parses the reply into a structured Answer. A reply that
// doesn't match the expected shape earns exactly one strict reformat
// retry before the question is given up.
package answer

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizpilot/internal/classify"
)

// Answer is the parsed result for one question. Exactly one of the
// payload fields is populated, selected by Type.
type Answer struct {
	Type   classify.Type
	Choice string   // option letter, for single-choice and true-false
	Blanks []string // one value per blank, in order
	Code   string   // full editor content for programming
}

// Values returns the strings to inject, in widget order. Choice and
// code answers are a single value; fill-blank answers fan out one per
// blank.
func (a *Answer) Values() []string {
	switch a.Type {
	case classify.TypeFillBlank:
		return a.Blanks
	case classify.TypeProgramming:
		return []string{a.Code}
	default:
		return []string{a.Choice}
	}
}

// String renders a short loggable form.
func (a *Answer) String() string {
	switch a.Type {
	case classify.TypeFillBlank:
		return strings.Join(a.Blanks, " | ")
	case classify.TypeProgramming:
		if len(a.Code) > 60 {
			return a.Code[:60] + "..."
		}
		return a.Code
	default:
		return a.Choice
	}
}

// ParseError reports a model reply that failed shape validation even
// after the reformat retry.
type ParseError struct {
	Type   classify.Type
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s answer: %s", e.Type, e.Reason)
}
