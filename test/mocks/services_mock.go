package mocks

import (
	"context"
)

// WellFormedResponse is a model reply that fills every field of the response
// template. Tests that only need "a good reply" share it.
const WellFormedResponse = `HOOK_SCORE: 82
HOOK_SCORE_JUSTIFICATION: Concrete promise aimed at a clear reader.
AUDIENCE_PERSONA: Frontend engineers at early-stage startups.
AUDIENCE_PERSONA_JUSTIFICATION: The copy leans on framework names and developer pain points.
CONVERSION_KILLERS:
1. synergy | Corporate filler that says nothing concrete.
2. leverage | Vague verb; name the actual benefit.`

// MockContentGenerator provides a mock implementation of insight.ContentGenerator
type MockContentGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	Calls      int
	LastPrompt string
}

func (m *MockContentGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return WellFormedResponse, nil
}
