// Package extract turns a question's raw markup into a normalized
// Question record: stem text, option labels, blank count, starter code,
// and references to embedded formula images. Extraction is a pure read;
// nothing on the page is mutated.
package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/abhisek/quizpilot/internal/page"
)

// ErrNoContent reports markup with no recognizable question body,
// options, or answer widget. The question is skipped, not fatal.
var ErrNoContent = errors.New("extract: no recognizable question content")

// optionLabelRE splits "A. some text" into key and text. Full-width
// punctuation after the letter is tolerated.
var optionLabelRE = regexp.MustCompile(`^([A-Z])\s*[.、．]?\s*(.*)$`)

// blankMarkerRE matches textual gap markers like "___" or "___2".
var blankMarkerRE = regexp.MustCompile(`_{3,}\d*`)

// CSS classes of the quiz platform's question markup.
const (
	classQuestionFace = "question-face"
	classAnswerArea   = "question-answer"
	classBlankInput   = "question-blank-input"
)

// FromSource reads the current question's markup from the page and
// parses it.
func FromSource(ctx context.Context, src page.Source) (*Question, error) {
	markup, err := src.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("read question markup: %w", err)
	}
	q, err := Parse(markup)
	if err != nil {
		return nil, err
	}
	if q.ID == "" {
		q.ID = src.ID()
	}
	if q.Kind == "" {
		q.Kind = src.Kind()
	}
	return q, nil
}

// Parse extracts a Question from the outer HTML of a question block.
func Parse(markup string) (*Question, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse question markup: %w", err)
	}

	item := firstNode(root, hasClass("question-item"))
	if item == nil {
		item = root
	}

	q := &Question{
		ID:   attrVal(item, "id"),
		Kind: strings.ToUpper(strings.TrimSpace(attrVal(item, "data-type"))),
	}

	// Stem: one or more question-face blocks, images replaced by
	// indexed placeholders so recognition can substitute later.
	var stems []string
	for _, face := range allNodes(item, hasClass(classQuestionFace)) {
		if txt := flattenInline(face, &q.Formulas); txt != "" {
			stems = append(stems, txt)
		}
	}
	q.Prompt = strings.Join(stems, "\n")

	// Options: labels inside the answer area.
	for _, area := range allNodes(item, hasClass(classAnswerArea)) {
		for _, lab := range allNodes(area, isElement("label")) {
			raw := flattenInline(lab, &q.Formulas)
			if raw == "" {
				continue
			}
			key, text := parseOptionLabel(raw)
			q.Options = append(q.Options, Option{Key: key, Text: text})
		}
	}

	// Blanks: one input per fill slot; textual gap markers are the
	// fallback when the widget renders blanks inline.
	q.BlankCount = len(allNodes(item, func(n *html.Node) bool {
		return n.Data == "input" && nodeHasClass(n, classBlankInput)
	}))
	if q.BlankCount == 0 && len(q.Options) == 0 {
		q.BlankCount = len(blankMarkerRE.FindAllString(q.Prompt, -1))
	}

	// Starter code: <pre> blocks in the answer area (or tagged with a
	// language), kept verbatim including line breaks and indentation.
	var snippets []string
	for _, pre := range allNodes(item, isElement("pre")) {
		if !underClass(pre, classAnswerArea) && attrVal(pre, "data-lang") == "" {
			continue
		}
		code := strings.ReplaceAll(rawText(pre), "\r\n", "\n")
		code = strings.Trim(code, "\n")
		if code != "" {
			snippets = append(snippets, code)
		}
	}
	q.Code = strings.Join(snippets, "\n\n")

	if q.Prompt == "" && len(q.Options) == 0 && q.BlankCount == 0 {
		return nil, ErrNoContent
	}
	return q, nil
}

// parseOptionLabel splits "A. text" into ("A", "text"). Labels without
// a leading letter come back with an empty key and the original text.
func parseOptionLabel(raw string) (string, string) {
	t := strings.TrimSpace(raw)
	if m := optionLabelRE.FindStringSubmatch(t); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", t
}

// flattenInline renders a node's content as one line of text: <br>
// becomes a space-separated break, each <img> becomes an indexed
// placeholder (recorded into refs), and all other whitespace collapses.
func flattenInline(n *html.Node, refs *[]FormulaRef) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br":
				b.WriteString("\n")
			case "img":
				idx := len(*refs)
				*refs = append(*refs, FormulaRef{Index: idx, Ref: attrVal(n, "src")})
				b.WriteString(" " + imagePlaceholder(idx) + " ")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return cleanWhitespace(b.String())
}

// rawText concatenates text nodes without collapsing whitespace.
func rawText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

var spaceRE = regexp.MustCompile(`\s+`)

// cleanWhitespace collapses runs of whitespace into single spaces and
// trims the ends.
func cleanWhitespace(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

// hasClass builds a predicate matching element nodes carrying class c.
func hasClass(c string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return nodeHasClass(n, c)
	}
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func nodeHasClass(n *html.Node, c string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, f := range strings.Fields(attrVal(n, "class")) {
		if f == c {
			return true
		}
	}
	return false
}

// underClass reports whether any ancestor of n carries class c.
func underClass(n *html.Node, c string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if nodeHasClass(p, c) {
			return true
		}
	}
	return false
}

func attrVal(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// firstNode returns the first node (depth-first) matching pred.
func firstNode(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstNode(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// allNodes returns every node (depth-first) matching pred.
func allNodes(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return out
}
