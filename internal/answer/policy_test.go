package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/quizpilot/internal/classify"
)

func TestDefaultPolicies(t *testing.T) {
	s := DefaultPolicies()

	assert.False(t, s.For(classify.TypeSingleChoice).useReasoning())
	assert.False(t, s.For(classify.TypeTrueFalse).useReasoning())
	assert.False(t, s.For(classify.TypeFillBlank).useReasoning())
	assert.True(t, s.For(classify.TypeProgramming).useReasoning())
}

func TestPolicyForUnknownTypeFallsBack(t *testing.T) {
	s := PolicySet{}
	p := s.For(classify.TypeSingleChoice)
	assert.Equal(t, ModelNormal, p.Model)
	assert.False(t, p.useReasoning())
}

func TestReasonerTierImpliesReasoning(t *testing.T) {
	p := ModelPolicy{Model: ModelReasoner}
	assert.True(t, p.useReasoning())

	p = ModelPolicy{Model: ModelNormal, Reasoning: true}
	assert.True(t, p.useReasoning())
}
