package inject

import (
	"context"
	"strings"
	"testing"
)

// scriptCapture records every script an adapter evaluates.
type scriptCapture struct {
	scripts []string
}

func (s *scriptCapture) Eval(_ context.Context, script string, out any) error {
	s.scripts = append(s.scripts, script)
	if b, ok := out.(*bool); ok {
		*b = true
	}
	return nil
}

func TestJSStringEscaping(t *testing.T) {
	got := jsString(`line1
"quoted" \back`)
	if !strings.Contains(got, `\n`) || !strings.Contains(got, `\"quoted\"`) {
		t.Errorf("unsafe literal: %s", got)
	}
	if strings.Contains(got, "\n") {
		t.Error("literal must not contain raw newlines")
	}
}

func TestJSStringsArray(t *testing.T) {
	got := jsStrings([]string{"a", "b's"})
	if got != `["a","b's"]` {
		t.Errorf("unexpected array literal: %s", got)
	}
}

func TestPlainExpectedJoinsSlots(t *testing.T) {
	a := &PlainAdapter{}
	if got := a.Expected([]string{"1", "2", "3"}); got != "1"+unitSep+"2"+unitSep+"3" {
		t.Errorf("unexpected expected encoding: %q", got)
	}
	if got := a.Expected([]string{"B"}); got != "B" {
		t.Errorf("single value should pass through, got %q", got)
	}
}

func TestPlainBlankSelectionConsistent(t *testing.T) {
	a := &PlainAdapter{}
	w := &scriptCapture{}
	if err := a.Write(context.Background(), w, []string{"x", "y"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := a.Read(context.Background(), w); err != nil {
		t.Fatalf("read: %v", err)
	}

	// Write and Read must address the same input set, and both must
	// ignore stray text inputs when classed blanks are present.
	for i, script := range w.scripts {
		if !strings.Contains(script, blankGroupScript) {
			t.Errorf("script %d does not use the shared blank selection:\n%s", i, script)
		}
		if strings.Contains(script, "'input.question-blank-input, input[type=text]'") {
			t.Errorf("script %d mixes classed blanks with generic text inputs", i)
		}
	}
}

func TestPlainRadioMatchesOnValue(t *testing.T) {
	a := &PlainAdapter{}
	w := &scriptCapture{}
	if err := a.Write(context.Background(), w, []string{"C"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(w.scripts[0], `input[type=radio][value=`) {
		t.Error("radio write should match the input value before falling back to position")
	}
	if !strings.Contains(w.scripts[0], "charCodeAt(0) - 65") {
		t.Error("positional fallback missing for radios without letter values")
	}
	if !strings.Contains(plainReadScript, "radios[i].value") {
		t.Error("radio read should report the checked input's value letter")
	}
}

func TestSingleSurfaceExpected(t *testing.T) {
	c := &CodeEditorAdapter{}
	if got := c.Expected([]string{"print(1)"}); got != "print(1)" {
		t.Errorf("unexpected code expected: %q", got)
	}
}
