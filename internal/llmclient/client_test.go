package llmclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mia/internal/insight"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

// newTestClient builds a Client whose API calls and sleeps are replaced, and
// returns the recorded backoff durations.
func newTestClient(gen generateFunc) (*Client, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	c := &Client{
		apiKey:     "test-key",
		modelName:  "test-model",
		maxRetries: 3,
		log:        zerolog.Nop(),
		ready:      true,
		generate:   gen,
		sleep:      func(d time.Duration) { *sleeps = append(*sleeps, d) },
	}
	return c, sleeps
}

func TestGenerate(t *testing.T) {
	t.Run("returns text on first success", func(t *testing.T) {
		calls := 0
		c, sleeps := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			calls++
			return textResponse("HOOK_SCORE: 90"), nil
		})

		got, err := c.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "HOOK_SCORE: 90", got)
		assert.Equal(t, 1, calls)
		assert.Empty(t, *sleeps)
	})

	t.Run("joins all candidate parts with a space", func(t *testing.T) {
		c, _ := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			return textResponse("HOOK_SCORE: 75", "AUDIENCE_PERSONA: Founders."), nil
		})

		got, err := c.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "HOOK_SCORE: 75 AUDIENCE_PERSONA: Founders.", got)
	})

	t.Run("retries transient errors with exponential backoff", func(t *testing.T) {
		calls := 0
		c, sleeps := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("rpc error: code = Unavailable desc = try later")
			}
			return textResponse("HOOK_SCORE: 60"), nil
		})

		got, err := c.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "HOOK_SCORE: 60", got)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *sleeps)
	})

	t.Run("transient error on the last attempt fails", func(t *testing.T) {
		calls := 0
		c, sleeps := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			calls++
			return nil, errors.New("500 INTERNAL server error")
		})

		_, err := c.Generate(context.Background(), "prompt")
		require.Error(t, err)
		var serviceErr *insight.ServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.Contains(t, err.Error(), "Gemini call failed after 3 attempts")
		assert.Contains(t, err.Error(), "500 INTERNAL")
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *sleeps)
	})

	t.Run("non transient error fails immediately", func(t *testing.T) {
		calls := 0
		cause := errors.New("permission denied")
		c, sleeps := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			calls++
			return nil, cause
		})

		_, err := c.Generate(context.Background(), "prompt")
		require.Error(t, err)
		var serviceErr *insight.ServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 1, calls)
		assert.Empty(t, *sleeps)
	})

	t.Run("safety block is reported without retry", func(t *testing.T) {
		calls := 0
		c, sleeps := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			calls++
			return &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			}, nil
		})

		_, err := c.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "blocked by safety filters")
		assert.Equal(t, 1, calls)
		assert.Empty(t, *sleeps)
	})

	t.Run("response without text parts is a service error", func(t *testing.T) {
		c, _ := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		})

		_, err := c.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did not return any usable text")
	})

	t.Run("whitespace only parts count as no text", func(t *testing.T) {
		c, _ := newTestClient(func(context.Context, string) (*genai.GenerateContentResponse, error) {
			return textResponse("   ", "\n"), nil
		})

		_, err := c.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did not return any usable text")
	})

	t.Run("missing api key is a configuration error", func(t *testing.T) {
		c := New(Settings{APIKey: "", Model: "test-model", MaxRetries: 3}, zerolog.Nop())

		_, err := c.Generate(context.Background(), "prompt")
		require.Error(t, err)
		var configErr *insight.ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(errors.New("service UNAVAILABLE")))
	assert.True(t, isTransient(errors.New("internal error")))
	assert.True(t, isTransient(errors.New("context deadline exceeded")))
	assert.False(t, isTransient(errors.New("invalid argument")))
	assert.False(t, isTransient(errors.New("quota exceeded")))
}
