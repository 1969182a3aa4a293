package extract

import (
	"fmt"
	"strings"
)

// Option is one choice label, split into its letter key and text.
// Key is empty when the label didn't carry a recognizable letter.
type Option struct {
	Key  string
	Text string
}

// FormulaRef points at one embedded image awaiting formula recognition,
// in stem order. Ref is the image's source reference as found in the
// markup; the page driver resolves it back to rendered bytes.
type FormulaRef struct {
	Index int
	Ref   string
}

// Question is the normalized record produced from one question's markup.
// Prompt contains an indexed placeholder where each embedded image sat;
// ResolveFormulas substitutes recognized notation in place.
type Question struct {
	ID         string
	Kind       string // page's own type attribute, upper-cased; may be empty
	Prompt     string
	Options    []Option
	BlankCount int
	Code       string // starter code, verbatim; empty when absent
	Formulas   []FormulaRef
}

// imagePlaceholder returns the in-stem marker for image i.
func imagePlaceholder(i int) string {
	return fmt.Sprintf("[[img:%d]]", i)
}

// ResolveFormulas replaces each image placeholder with its recognized
// notation, in order. Empty notation degrades to a bare image marker so
// the model still sees that something was there.
func (q *Question) ResolveFormulas(notations []string) {
	for i := range q.Formulas {
		repl := "[image]"
		if i < len(notations) && notations[i] != "" {
			repl = "[formula: " + notations[i] + "]"
		}
		q.Prompt = strings.ReplaceAll(q.Prompt, imagePlaceholder(i), repl)
		for j := range q.Options {
			q.Options[j].Text = strings.ReplaceAll(q.Options[j].Text, imagePlaceholder(i), repl)
		}
	}
}
