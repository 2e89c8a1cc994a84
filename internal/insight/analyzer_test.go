package insight

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	raw    string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.raw, s.err
}

func TestAnalyzerAnalyze(t *testing.T) {
	t.Run("model response is parsed", func(t *testing.T) {
		gen := &stubGenerator{raw: wellFormedResponse}
		a := NewAnalyzer(gen, zerolog.Nop())

		got := a.Analyze(context.Background(), "Ship faster", "Ship faster with our deploy tool.")

		assert.False(t, got.FallbackUsed)
		assert.Empty(t, got.LLMError)
		assert.Equal(t, 82, got.HookScore)
		assert.Equal(t, "Ship faster", got.HookTextUsed)
		assert.Equal(t, "Ship faster with our deploy tool.", got.FullTextUsed)
	})

	t.Run("prompt carries both text sections", func(t *testing.T) {
		gen := &stubGenerator{raw: wellFormedResponse}
		a := NewAnalyzer(gen, zerolog.Nop())

		a.Analyze(context.Background(), "the hook line", "the whole page body")

		assert.Contains(t, gen.prompt, "the hook line")
		assert.Contains(t, gen.prompt, "the whole page body")
		assert.Contains(t, gen.prompt, "HOOK_SCORE:")
		assert.Contains(t, gen.prompt, "CONVERSION_KILLERS:")
	})

	t.Run("generator failure falls back to heuristic", func(t *testing.T) {
		gen := &stubGenerator{err: &ServiceError{Reason: "model call failed after 3 attempts"}}
		a := NewAnalyzer(gen, zerolog.Nop())

		got := a.Analyze(context.Background(), "Why developers love us?", "A JavaScript guide where we leverage synergy.")

		assert.True(t, got.FallbackUsed)
		assert.Contains(t, got.LLMError, "model call failed after 3 attempts")
		assert.Equal(t, personaDeveloper, got.AudiencePersona)
		require.Len(t, got.ConversionKillers, 3)
		assert.Equal(t, "synergy", got.ConversionKillers[0].Phrase)
		assert.Equal(t, "leverage", got.ConversionKillers[1].Phrase)
		assert.Equal(t, "Why developers love us?", got.HookTextUsed)
	})

	t.Run("empty model text falls back to heuristic", func(t *testing.T) {
		gen := &stubGenerator{raw: "   "}
		a := NewAnalyzer(gen, zerolog.Nop())

		got := a.Analyze(context.Background(), "hook", "full")

		assert.True(t, got.FallbackUsed)
		assert.NotEmpty(t, got.LLMError)
	})

	t.Run("configuration failure also degrades", func(t *testing.T) {
		gen := &stubGenerator{err: &ConfigurationError{Reason: "missing API key"}}
		a := NewAnalyzer(gen, zerolog.Nop())

		got := a.Analyze(context.Background(), "hook", "full")

		assert.True(t, got.FallbackUsed)
		assert.Contains(t, got.LLMError, "missing API key")
	})

	t.Run("result always carries three killers", func(t *testing.T) {
		gen := &stubGenerator{raw: "HOOK_SCORE: 50"}
		a := NewAnalyzer(gen, zerolog.Nop())

		got := a.Analyze(context.Background(), "hook", "full")

		assert.False(t, got.FallbackUsed)
		assert.Len(t, got.ConversionKillers, 3)
	})
}
