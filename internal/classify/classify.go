// Package classify assigns each extracted question one of four types.
// Classification is purely structural and deterministic: the same
// extracted content always yields the same type.
package classify

import (
	"errors"
	"strings"

	"github.com/abhisek/quizpilot/internal/extract"
)

// Type is a question's classified type. It selects the answer prompt,
// the model policy, and the injection adapter family downstream.
type Type string

const (
	TypeSingleChoice Type = "single-choice"
	TypeTrueFalse    Type = "true-false"
	TypeFillBlank    Type = "fill-blank"
	TypeProgramming  Type = "programming"
)

// ErrUnclassified reports content matching none of the known shapes.
// The question is recorded and skipped.
var ErrUnclassified = errors.New("classify: question matches no known type")

// booleanTexts are option texts that mark a judgement question, after
// lower-casing and trimming. Both Chinese and English platforms are
// covered.
var booleanTexts = map[string]bool{
	"true": true, "false": true,
	"t": true, "f": true,
	"yes": true, "no": true,
	"对": true, "错": true,
	"正确": true, "错误": true,
	"是": true, "否": true,
	"√": true, "×": true,
}

// programmingKinds are the page's own type tags that imply a code
// editor even when the markup carries no starter snippet.
var programmingKinds = map[string]bool{
	"PROGRAM": true, "SQL": true, "DESIGN": true,
}

// Classify determines the question type. Signals are checked in a
// fixed order; the first match wins:
//
//  1. a starter code snippet or a programming page tag
//  2. one or more blanks
//  3. exactly two boolean-like options
//  4. any options at all
func Classify(q *extract.Question) (Type, error) {
	if q.Code != "" || programmingKinds[q.Kind] {
		return TypeProgramming, nil
	}
	if q.BlankCount > 0 {
		return TypeFillBlank, nil
	}
	if len(q.Options) == 2 && booleanLike(q.Options[0]) && booleanLike(q.Options[1]) {
		return TypeTrueFalse, nil
	}
	if len(q.Options) > 0 {
		return TypeSingleChoice, nil
	}
	return "", ErrUnclassified
}

func booleanLike(o extract.Option) bool {
	return booleanTexts[strings.ToLower(strings.TrimSpace(o.Text))]
}
