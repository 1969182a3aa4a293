package answer

import (
	"errors"
	"testing"

	"github.com/abhisek/quizpilot/internal/classify"
	"github.com/abhisek/quizpilot/internal/extract"
)

var fourOptions = []extract.Option{
	{Key: "A", Text: "one"}, {Key: "B", Text: "two"},
	{Key: "C", Text: "three"}, {Key: "D", Text: "four"},
}

func TestParseChoice(t *testing.T) {
	cases := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"B", "B", true},
		{"b", "B", true},
		{"C.", "C", true},
		{"d) four", "D", true},
		{"E", "", false},
		{"The answer is C.", "", false}, // first letter wins, and it must be an option
		{"42", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := parseChoice(tc.raw, fourOptions, classify.TypeSingleChoice)
		if tc.wantOK {
			if err != nil {
				t.Errorf("parseChoice(%q): unexpected error %v", tc.raw, err)
				continue
			}
			if got != tc.want {
				t.Errorf("parseChoice(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("parseChoice(%q): expected ParseError, got %v", tc.raw, err)
		}
	}
}

func TestParseBlanks(t *testing.T) {
	got, err := parseBlanks("1|2|3", 3)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"1", "2", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("blank %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseBlanksCommaDelimiter(t *testing.T) {
	got, err := parseBlanks("三次握手，四次挥手", 2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got[0] != "三次握手" || got[1] != "四次挥手" {
		t.Errorf("unexpected blanks: %v", got)
	}
}

func TestParseBlanksCountMismatch(t *testing.T) {
	var perr *ParseError
	if _, err := parseBlanks("1|2", 3); !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for short reply, got %v", err)
	}
	if _, err := parseBlanks("1|2|3|4", 3); !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for long reply, got %v", err)
	}
}

func TestParseBlanksSingleKeepsCommas(t *testing.T) {
	got, err := parseBlanks("1,024", 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 || got[0] != "1,024" {
		t.Errorf("unexpected blanks: %v", got)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"```python\nprint(1)\n```", "print(1)"},
		{"```\nSELECT 1;\n```", "SELECT 1;"},
		{"print(1)", "print(1)"},
		{"```go\nfunc main() {\n\tprintln(1)\n}\n```", "func main() {\n\tprintln(1)\n}"},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseReplyProgrammingEmpty(t *testing.T) {
	q := &extract.Question{Prompt: "write code"}
	var perr *ParseError
	if _, err := parseReply("   ", q, classify.TypeProgramming); !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
