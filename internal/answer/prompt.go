package answer

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizpilot/internal/classify"
	"github.com/abhisek/quizpilot/internal/extract"
)

// blankDelimiter separates per-blank answers in the model's reply.
const blankDelimiter = "|"

const choiceSystemPrompt = `You are answering a quiz question. Read the question and its options, then reply with ONLY the letter of the correct option. No explanation, no punctuation, just the single letter.`

const trueFalseSystemPrompt = `You are answering a true/false quiz question. Decide whether the statement is correct, then reply with ONLY the letter of the matching option. No explanation, just the single letter.`

const fillBlankSystemPrompt = `You are answering a fill-in-the-blank quiz question. Reply with the answer for each blank in order, separated by "|". Give exactly one value per blank. No explanation, no numbering, nothing else.`

const programmingSystemPrompt = `You are answering a programming quiz question. Reply with ONLY the complete code to submit. No markdown fences, no commentary before or after the code.`

// buildPrompt renders the system and user messages for one question.
// language constrains programming answers when set.
func buildPrompt(q *extract.Question, typ classify.Type, language string) (system, user string) {
	var b strings.Builder
	b.WriteString(q.Prompt)

	switch typ {
	case classify.TypeSingleChoice, classify.TypeTrueFalse:
		b.WriteString("\n\nOptions:\n")
		for _, o := range q.Options {
			fmt.Fprintf(&b, "%s. %s\n", o.Key, o.Text)
		}
		if typ == classify.TypeTrueFalse {
			return trueFalseSystemPrompt, b.String()
		}
		return choiceSystemPrompt, b.String()

	case classify.TypeFillBlank:
		fmt.Fprintf(&b, "\n\nThis question has %d blank(s). Answer each in order, separated by %q.",
			q.BlankCount, blankDelimiter)
		return fillBlankSystemPrompt, b.String()

	case classify.TypeProgramming:
		if q.Code != "" {
			b.WriteString("\n\nStarter code:\n")
			b.WriteString(q.Code)
		}
		if language != "" {
			fmt.Fprintf(&b, "\n\nWrite the solution in %s.", language)
		}
		return programmingSystemPrompt, b.String()
	}

	return choiceSystemPrompt, b.String()
}

// reformatInstruction is the follow-up sent when the first reply fails
// shape validation. It restates only the format contract.
func reformatInstruction(q *extract.Question, typ classify.Type) string {
	switch typ {
	case classify.TypeSingleChoice, classify.TypeTrueFalse:
		keys := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			if o.Key != "" {
				keys = append(keys, o.Key)
			}
		}
		return fmt.Sprintf("Your reply did not match the required format. Answer with exactly one letter from: %s. Nothing else.",
			strings.Join(keys, ", "))
	case classify.TypeFillBlank:
		return fmt.Sprintf("Your reply did not match the required format. Give exactly %d value(s) separated by %q, with no other text.",
			q.BlankCount, blankDelimiter)
	case classify.TypeProgramming:
		return "Your reply did not match the required format. Return only the code itself, with no markdown fences and no commentary."
	}
	return "Your reply did not match the required format. Answer again following the format exactly."
}
