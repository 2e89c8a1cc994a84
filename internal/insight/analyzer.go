package insight

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ContentGenerator produces raw model text for a prompt.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns extracted page content into marketing insights. It prefers
// the generative backend and degrades to the offline heuristic when that
// path fails for any reason.
type Analyzer struct {
	gen ContentGenerator
	log zerolog.Logger
}

func NewAnalyzer(gen ContentGenerator, log zerolog.Logger) *Analyzer {
	return &Analyzer{gen: gen, log: log}
}

// Analyze runs the full pipeline for one page's hook and full text. It never
// returns an error: a failed generation or unparseable reply is absorbed into
// the heuristic fallback, with the failure recorded on the result's LLMError.
func (a *Analyzer) Analyze(ctx context.Context, hookText, fullText string) Insights {
	a.log.Info().Msg("generating marketing insights")

	ins, err := a.fromModel(ctx, hookText, fullText)
	if err != nil {
		a.logFailure(err)
		ins = Fallback(hookText, fullText)
		ins.LLMError = err.Error()
	}

	ins.HookTextUsed = hookText
	ins.FullTextUsed = fullText
	return ins
}

func (a *Analyzer) fromModel(ctx context.Context, hookText, fullText string) (Insights, error) {
	raw, err := a.gen.Generate(ctx, BuildPrompt(hookText, fullText))
	if err != nil {
		return Insights{}, err
	}
	a.log.Debug().Str("raw", truncate(raw, 500)).Msg("raw model response")
	return Parse(raw)
}

// Classified failures are the expected degradation path and log at warn;
// anything unclassified logs at error but degrades the same way.
func (a *Analyzer) logFailure(err error) {
	var serviceErr *ServiceError
	var configErr *ConfigurationError
	var parseErr *ParseError
	if errors.As(err, &serviceErr) || errors.As(err, &configErr) || errors.As(err, &parseErr) {
		a.log.Warn().Err(err).Msg("generative analysis failed; using heuristic fallback")
		return
	}
	a.log.Error().Err(err).Msg("unexpected analysis failure; using heuristic fallback")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
