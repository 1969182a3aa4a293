package answer

import "github.com/abhisek/quizpilot/internal/classify"

// Model tiers a policy can select. The provider maps "reasoner" to its
// own stronger model or enables extended thinking.
const (
	ModelNormal   = "normal"
	ModelReasoner = "reasoner"
)

// ModelPolicy picks the model tier and reasoning mode for one question
// type.
type ModelPolicy struct {
	Model     string `mapstructure:"model"`
	Reasoning bool   `mapstructure:"reasoning"`
}

// useReasoning reports whether the provider call should run in
// reasoning mode.
func (p ModelPolicy) useReasoning() bool {
	return p.Reasoning || p.Model == ModelReasoner
}

// PolicySet maps each question type to its policy. Lookups for types
// without an entry fall back to the normal tier.
type PolicySet map[classify.Type]ModelPolicy

// For returns the policy for typ, defaulting to the normal tier.
func (s PolicySet) For(typ classify.Type) ModelPolicy {
	if p, ok := s[typ]; ok {
		return p
	}
	return ModelPolicy{Model: ModelNormal}
}

// DefaultPolicies answers choice and fill questions on the normal tier
// and sends programming questions to the reasoner.
func DefaultPolicies() PolicySet {
	return PolicySet{
		classify.TypeSingleChoice: {Model: ModelNormal},
		classify.TypeTrueFalse:    {Model: ModelNormal},
		classify.TypeFillBlank:    {Model: ModelNormal},
		classify.TypeProgramming:  {Model: ModelReasoner, Reasoning: true},
	}
}
