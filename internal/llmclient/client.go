package llmclient

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"mia/internal/insight"
)

const (
	// Generation settings are fixed: the response has to follow a strict
	// line template, so randomness buys nothing.
	generationTemperature = 0.2
	maxOutputTokens       = 512
)

const missingKeyMsg = "Missing API key. Set GEMINI_API_KEY or GOOGLE_API_KEY in your environment or .env file."

// transientMarkers are matched case-insensitively against error text to
// decide whether a failed call is worth retrying.
var transientMarkers = []string{"unavailable", "internal", "deadline"}

type generateFunc func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)

// Settings carries what a Client needs to talk to the Gemini API.
type Settings struct {
	APIKey     string
	Model      string
	MaxRetries int
}

// Client invokes Gemini with bounded retries and classifies its failure
// modes. It satisfies insight.ContentGenerator. The underlying API client is
// configured lazily on first use so construction never needs credentials.
type Client struct {
	apiKey     string
	modelName  string
	maxRetries int
	log        zerolog.Logger

	mu    sync.Mutex
	genai *genai.Client
	ready bool

	generate generateFunc
	sleep    func(time.Duration)
}

func New(s Settings, log zerolog.Logger) *Client {
	c := &Client{
		apiKey:     s.APIKey,
		modelName:  s.Model,
		maxRetries: s.MaxRetries,
		log:        log,
	}
	c.generate = c.callModel
	c.sleep = time.Sleep
	return c
}

// Generate sends one prompt to the model and returns its raw text reply.
// Transient backend errors are retried with exponential backoff (1s, 2s,
// 4s, ...); everything else is classified and returned for the caller to
// degrade on.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.ensureClient(ctx); err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		c.log.Debug().Int("attempt", attempt).Str("model", c.modelName).Msg("calling gemini")

		resp, err := c.generate(ctx, prompt)
		if err == nil {
			return c.extractText(resp)
		}

		lastErr = err
		if !isTransient(err) {
			return "", &insight.ServiceError{Reason: "Unexpected error during Gemini call", Err: err}
		}
		if attempt < c.maxRetries {
			wait := time.Duration(1<<(attempt-1)) * time.Second
			c.log.Info().Dur("wait", wait).Int("attempt", attempt).Err(err).Msg("transient gemini error; retrying")
			c.sleep(wait)
		}
	}

	return "", &insight.ServiceError{
		Reason: fmt.Sprintf("Gemini call failed after %d attempts", c.maxRetries),
		Err:    lastErr,
	}
}

// Close releases the underlying API client, if one was ever configured.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.genai == nil {
		return nil
	}
	err := c.genai.Close()
	c.genai = nil
	c.ready = false
	return err
}

// ensureClient configures the API client on first use. A failed attempt is
// not latched, so a later call can retry after the credential is fixed.
func (c *Client) ensureClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}

	if c.apiKey == "" {
		return &insight.ConfigurationError{Reason: missingKeyMsg}
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return &insight.ServiceError{Reason: "Failed to configure the Gemini client. Check your API key.", Err: err}
	}

	c.genai = gc
	c.ready = true
	c.log.Info().Str("model", c.modelName).Msg("gemini client configured")
	return nil
}

func (c *Client) callModel(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	model := c.genai.GenerativeModel(c.modelName)
	model.SetTemperature(generationTemperature)
	model.SetMaxOutputTokens(maxOutputTokens)
	return model.GenerateContent(ctx, genai.Text(prompt))
}

// extractText collects the text parts of every candidate instead of trusting
// a single convenience accessor: partial answers are still parseable. A reply
// with no text at all is inspected for a safety block first.
func (c *Client) extractText(resp *genai.GenerateContentResponse) (string, error) {
	var collected []string
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil {
				continue
			}
			c.log.Debug().Str("finish_reason", fmt.Sprintf("%v", cand.FinishReason)).Msg("candidate finished")
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok && t != "" {
					collected = append(collected, string(t))
				}
			}
		}
	}

	raw := strings.TrimSpace(strings.Join(collected, " "))
	if raw != "" {
		return raw, nil
	}

	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", &insight.ServiceError{
			Reason: fmt.Sprintf(
				"AI response was blocked by safety filters (reason: %v). Try a different URL or less sensitive content.",
				resp.PromptFeedback.BlockReason,
			),
		}
	}

	return "", &insight.ServiceError{
		Reason: "AI did not return any usable text (no content parts). This can happen if the model was interrupted, blocked, or misconfigured.",
	}
}

func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
