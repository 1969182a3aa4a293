package answer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/quizpilot/internal/classify"
	"github.com/abhisek/quizpilot/internal/extract"
)

// blankSplitRE splits a fill-blank reply on the pipe delimiter, also
// tolerating plain or full-width commas.
var blankSplitRE = regexp.MustCompile(`[|,，]`)

// codeFenceRE strips a single wrapping markdown fence, with or without
// a language tag.
var codeFenceRE = regexp.MustCompile("(?s)\\A```[a-zA-Z0-9+#._-]*\\n(.*?)\\n?```\\s*\\z")

// parseReply validates a raw model reply against the shape the
// question type requires.
func parseReply(raw string, q *extract.Question, typ classify.Type) (*Answer, error) {
	switch typ {
	case classify.TypeSingleChoice, classify.TypeTrueFalse:
		letter, err := parseChoice(raw, q.Options, typ)
		if err != nil {
			return nil, err
		}
		return &Answer{Type: typ, Choice: letter}, nil

	case classify.TypeFillBlank:
		blanks, err := parseBlanks(raw, q.BlankCount)
		if err != nil {
			return nil, err
		}
		return &Answer{Type: typ, Blanks: blanks}, nil

	case classify.TypeProgramming:
		code := stripCodeFences(raw)
		if strings.TrimSpace(code) == "" {
			return nil, &ParseError{Type: typ, Raw: raw, Reason: "empty code reply"}
		}
		return &Answer{Type: typ, Code: code}, nil
	}
	return nil, &ParseError{Type: typ, Raw: raw, Reason: "unsupported question type"}
}

// parseChoice finds the first latin letter in the reply and checks it
// against the question's option keys. "The answer is B." normalizes
// to "B".
func parseChoice(raw string, options []extract.Option, typ classify.Type) (string, error) {
	keys := make(map[string]bool, len(options))
	for _, o := range options {
		if o.Key != "" {
			keys[o.Key] = true
		}
	}

	for _, r := range strings.ToUpper(raw) {
		if r < 'A' || r > 'Z' {
			continue
		}
		letter := string(r)
		if keys[letter] {
			return letter, nil
		}
		return "", &ParseError{
			Type: typ, Raw: raw,
			Reason: "letter " + letter + " is not an option",
		}
	}
	return "", &ParseError{
		Type: typ, Raw: raw,
		Reason: "no option letter in reply",
	}
}

// parseBlanks splits the reply into per-blank values and requires
// exactly want of them. A single-blank question accepts the whole
// reply verbatim so values containing commas survive.
func parseBlanks(raw string, want int) ([]string, error) {
	trimmed := strings.TrimSpace(stripCodeFences(raw))
	if trimmed == "" {
		return nil, &ParseError{Type: classify.TypeFillBlank, Raw: raw, Reason: "empty reply"}
	}

	if want == 1 && !strings.Contains(trimmed, blankDelimiter) {
		return []string{trimmed}, nil
	}

	parts := blankSplitRE.Split(trimmed, -1)
	blanks := make([]string, 0, len(parts))
	for _, p := range parts {
		blanks = append(blanks, strings.TrimSpace(p))
	}
	if len(blanks) != want {
		return nil, &ParseError{
			Type: classify.TypeFillBlank, Raw: raw,
			Reason: fmt.Sprintf("expected %d value(s), got %d", want, len(blanks)),
		}
	}
	for _, b := range blanks {
		if b == "" {
			return nil, &ParseError{Type: classify.TypeFillBlank, Raw: raw, Reason: "empty blank value"}
		}
	}
	return blanks, nil
}

// stripCodeFences unwraps a reply that arrived inside a markdown code
// block despite instructions.
func stripCodeFences(raw string) string {
	t := strings.TrimSpace(raw)
	if m := codeFenceRE.FindStringSubmatch(t); m != nil {
		return m[1]
	}
	return t
}
