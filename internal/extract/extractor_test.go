package extract

import (
	"errors"
	"testing"
)

const singleChoiceMarkup = `
<div class="question-item" id="q-1001" data-type="single">
  <div class="question-face">1. What is the time complexity<br>of binary search?</div>
  <div class="question-answer">
    <label>A. O(n)</label>
    <label>B、O(log n)</label>
    <label>C． O(n log n)</label>
    <label>D O(1)</label>
  </div>
</div>`

func TestParseSingleChoice(t *testing.T) {
	q, err := Parse(singleChoiceMarkup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.ID != "q-1001" {
		t.Errorf("unexpected id: %q", q.ID)
	}
	if q.Kind != "SINGLE" {
		t.Errorf("unexpected kind: %q", q.Kind)
	}
	if q.Prompt != "1. What is the time complexity of binary search?" {
		t.Errorf("unexpected prompt: %q", q.Prompt)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	want := []Option{
		{Key: "A", Text: "O(n)"},
		{Key: "B", Text: "O(log n)"},
		{Key: "C", Text: "O(n log n)"},
		{Key: "D", Text: "O(1)"},
	}
	for i, w := range want {
		if q.Options[i] != w {
			t.Errorf("option %d: got %+v, want %+v", i, q.Options[i], w)
		}
	}
	if q.BlankCount != 0 {
		t.Errorf("expected no blanks, got %d", q.BlankCount)
	}
}

func TestParseFillBlankInputs(t *testing.T) {
	q, err := Parse(`
<div class="question-item" id="q-2002" data-type="fill">
  <div class="question-face">TCP uses a ___1 handshake and ___2 to close.</div>
  <div class="question-answer">
    <input class="question-blank-input" type="text">
    <input class="question-blank-input" type="text">
  </div>
</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.BlankCount != 2 {
		t.Errorf("expected 2 blanks from inputs, got %d", q.BlankCount)
	}
	if len(q.Options) != 0 {
		t.Errorf("expected no options, got %d", len(q.Options))
	}
}

func TestParseFillBlankTextMarkers(t *testing.T) {
	q, err := Parse(`
<div class="question-item" id="q-2003" data-type="fill">
  <div class="question-face">The capital of France is ___1 and of Spain is ___2, while ___3 is Italy's.</div>
</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.BlankCount != 3 {
		t.Errorf("expected 3 blanks from markers, got %d", q.BlankCount)
	}
}

func TestParseFormulaImages(t *testing.T) {
	q, err := Parse(`
<div class="question-item" id="q-3001" data-type="single">
  <div class="question-face">Evaluate <img src="/assets/f1.png"> for x=2.</div>
  <div class="question-answer">
    <label>A. <img src="/assets/f2.png"></label>
    <label>B. 4</label>
  </div>
</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(q.Formulas) != 2 {
		t.Fatalf("expected 2 formula refs, got %d", len(q.Formulas))
	}
	if q.Formulas[0].Ref != "/assets/f1.png" || q.Formulas[1].Ref != "/assets/f2.png" {
		t.Errorf("unexpected refs: %+v", q.Formulas)
	}
	if q.Prompt != "Evaluate [[img:0]] for x=2." {
		t.Errorf("unexpected prompt: %q", q.Prompt)
	}
	if q.Options[0].Text != "[[img:1]]" {
		t.Errorf("unexpected option text: %q", q.Options[0].Text)
	}

	q.ResolveFormulas([]string{`x^2`, ""})
	if q.Prompt != "Evaluate [formula: x^2] for x=2." {
		t.Errorf("unexpected resolved prompt: %q", q.Prompt)
	}
	if q.Options[0].Text != "[image]" {
		t.Errorf("unexpected resolved option: %q", q.Options[0].Text)
	}
}

func TestParseCodeSnippet(t *testing.T) {
	q, err := Parse(`
<div class="question-item" id="q-4001" data-type="program">
  <div class="question-face">Complete the function.</div>
  <div class="question-answer">
    <pre>def add(a, b):
    # TODO
    pass</pre>
  </div>
</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "def add(a, b):\n    # TODO\n    pass"
	if q.Code != want {
		t.Errorf("code not kept verbatim:\ngot  %q\nwant %q", q.Code, want)
	}
	if q.Kind != "PROGRAM" {
		t.Errorf("unexpected kind: %q", q.Kind)
	}
}

func TestParseCodeOutsideAnswerNeedsLang(t *testing.T) {
	q, err := Parse(`
<div class="question-item" id="q-4002">
  <div class="question-face">Fix the query.</div>
  <pre data-lang="sql">SELECT * FROM users;</pre>
</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Code != "SELECT * FROM users;" {
		t.Errorf("unexpected code: %q", q.Code)
	}
}

func TestParseNoContent(t *testing.T) {
	_, err := Parse(`<div class="question-item" id="q-5001"><div class="decoration"></div></div>`)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestParseOptionLabelVariants(t *testing.T) {
	cases := []struct {
		in       string
		key, txt string
	}{
		{"A. first", "A", "first"},
		{"B、second", "B", "second"},
		{"C  third", "C", "third"},
		{"true", "", "true"},
	}
	for _, c := range cases {
		k, txt := parseOptionLabel(c.in)
		if k != c.key || txt != c.txt {
			t.Errorf("parseOptionLabel(%q) = (%q, %q), want (%q, %q)", c.in, k, txt, c.key, c.txt)
		}
	}
}
