package adapt

import (
	"context"

	"github.com/rs/zerolog/log"
)

// defaultTemperature balances fidelity to the source against the
// restructuring the learning modes ask for.
const defaultTemperature = 0.7

// Request carries everything a single transformation needs. Constructed
// fresh per invocation and never persisted.
type Request struct {
	// SourceText is the content to adapt. Must be non-empty.
	SourceText string

	// Mode is the learning style to adapt the content to.
	Mode Mode

	// TargetLanguage is an optional BCP 47 tag. When set and non-English,
	// the backend is instructed to answer wholly in that language.
	TargetLanguage string
}

// Generator is the opaque generation backend. Implementations perform a
// single request/response round trip; retries and caching are the caller's
// concern (and this package deliberately does neither).
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string, temperature float64) (string, error)
}

// Transformer turns a Request into adapted text via a Generator. It is
// stateless aside from its collaborators and safe for concurrent use.
type Transformer struct {
	generator Generator
}

// NewTransformer creates a Transformer backed by the given generator.
func NewTransformer(g Generator) *Transformer {
	return &Transformer{generator: g}
}

// Transform adapts req.SourceText to req.Mode, translated when the target
// language calls for it. Returns ErrEmptyInput for empty source text
// without contacting the backend, and *UpstreamError when the backend
// fails or produces no usable content.
func (t *Transformer) Transform(ctx context.Context, req Request) (string, error) {
	if req.SourceText == "" {
		return "", ErrEmptyInput
	}

	prompt := BuildPrompt(req)

	log.Debug().
		Str("mode", string(req.Mode)).
		Str("target_language", req.TargetLanguage).
		Int("source_chars", len(req.SourceText)).
		Msg("Requesting content adaptation")

	text, err := t.generator.Generate(ctx, prompt, SystemInstruction, defaultTemperature)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	if text == "" {
		return "", &UpstreamError{Err: errEmptyCompletion}
	}

	return text, nil
}
