package answer

import (
	"strings"
	"testing"

	"github.com/abhisek/quizpilot/internal/classify"
	"github.com/abhisek/quizpilot/internal/extract"
)

func TestBuildPromptFillBlankStatesCount(t *testing.T) {
	q := &extract.Question{Prompt: "A ___1 and a ___2.", BlankCount: 2}
	system, user := buildPrompt(q, classify.TypeFillBlank, "")
	if system != fillBlankSystemPrompt {
		t.Error("wrong system prompt")
	}
	if !strings.Contains(user, "2 blank(s)") {
		t.Errorf("blank count missing from prompt: %q", user)
	}
}

func TestBuildPromptProgrammingLanguage(t *testing.T) {
	q := &extract.Question{Prompt: "Reverse a list.", Code: "# starter"}
	_, user := buildPrompt(q, classify.TypeProgramming, "python")
	if !strings.Contains(user, "Write the solution in python.") {
		t.Errorf("language constraint missing: %q", user)
	}
	if !strings.Contains(user, "# starter") {
		t.Errorf("starter code missing: %q", user)
	}

	_, user = buildPrompt(q, classify.TypeProgramming, "")
	if strings.Contains(user, "Write the solution in") {
		t.Errorf("unexpected language constraint: %q", user)
	}
}

func TestBuildPromptTrueFalseListsOptions(t *testing.T) {
	q := &extract.Question{
		Prompt: "The sky is green.",
		Options: []extract.Option{
			{Key: "A", Text: "True"}, {Key: "B", Text: "False"},
		},
	}
	system, user := buildPrompt(q, classify.TypeTrueFalse, "")
	if system != trueFalseSystemPrompt {
		t.Error("wrong system prompt")
	}
	if !strings.Contains(user, "A. True") || !strings.Contains(user, "B. False") {
		t.Errorf("options missing: %q", user)
	}
}
