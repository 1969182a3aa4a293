package answer

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizpilot/internal/classify"
	"github.com/abhisek/quizpilot/internal/extract"
	"github.com/abhisek/quizpilot/internal/llm"
)

const (
	shortAnswerMaxTokens = 256
	codeAnswerMaxTokens  = 4096
)

// Requester answers classified questions through an LLM provider.
type Requester struct {
	provider llm.Provider
	policies PolicySet
	language string
}

func NewRequester(provider llm.Provider, policies PolicySet) *Requester {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Requester{provider: provider, policies: policies}
}

// WithLanguage pins the language programming answers are written in
// (e.g. "python", "sql"). Empty leaves it to the question text.
func (r *Requester) WithLanguage(lang string) *Requester {
	r.language = lang
	return r
}

// Answer asks the model for q's answer under the type's policy and
// parses the reply. A malformed reply triggers one reformat retry with
// a stricter instruction; a second malformed reply is returned as a
// ParseError.
func (r *Requester) Answer(ctx context.Context, q *extract.Question, typ classify.Type) (*Answer, error) {
	system, user := buildPrompt(q, typ, r.language)
	policy := r.policies.For(typ)

	ctx = llm.WithPurpose(ctx, "answer-"+string(typ))

	req := llm.Request{
		System:    system,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: user}},
		Reasoning: policy.useReasoning(),
		MaxTokens: maxTokensFor(typ),
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	ans, err := parseReply(resp.Text, q, typ)
	if err == nil {
		return ans, nil
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		return nil, err
	}

	// One strict retry: show the model its own reply and restate the
	// format contract.
	req.Messages = append(req.Messages,
		llm.Message{Role: llm.RoleAssistant, Content: resp.Text},
		llm.Message{Role: llm.RoleUser, Content: reformatInstruction(q, typ)},
	)
	resp, err = r.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate answer (reformat): %w", err)
	}
	return parseReply(resp.Text, q, typ)
}

func maxTokensFor(typ classify.Type) int {
	if typ == classify.TypeProgramming {
		return codeAnswerMaxTokens
	}
	return shortAnswerMaxTokens
}
