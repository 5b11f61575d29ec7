package adapt

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator records Generate calls and returns canned responses.
type fakeGenerator struct {
	mu sync.Mutex

	response string
	err      error

	calls []generateCall
}

type generateCall struct {
	prompt            string
	systemInstruction string
	temperature       float64
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt, systemInstruction string, temperature float64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, generateCall{prompt, systemInstruction, temperature})
	return g.response, g.err
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func TestTransform(t *testing.T) {
	t.Run("empty input never reaches the backend", func(t *testing.T) {
		gen := &fakeGenerator{response: "should not be seen"}
		tr := NewTransformer(gen)

		text, err := tr.Transform(context.Background(), Request{Mode: ModeVisual})

		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Empty(t, text)
		assert.Zero(t, gen.callCount())
	})

	t.Run("success returns backend text verbatim", func(t *testing.T) {
		gen := &fakeGenerator{response: "Here is your adapted content in Visual learner format: **ok**"}
		tr := NewTransformer(gen)

		text, err := tr.Transform(context.Background(), Request{
			SourceText:     "Hello world",
			Mode:           ModeVisual,
			TargetLanguage: "en-US",
		})

		require.NoError(t, err)
		assert.Equal(t, gen.response, text)
		require.Equal(t, 1, gen.callCount())
		assert.Equal(t, SystemInstruction, gen.calls[0].systemInstruction)
		assert.Contains(t, gen.calls[0].prompt, "Visual learner")
		assert.NotContains(t, gen.calls[0].prompt, "IMPORTANT:")
	})

	t.Run("non-english target adds translation instruction", func(t *testing.T) {
		gen := &fakeGenerator{response: "Bonjour le monde"}
		tr := NewTransformer(gen)

		_, err := tr.Transform(context.Background(), Request{
			SourceText:     "Hello world",
			Mode:           ModeVisual,
			TargetLanguage: "fr-FR",
		})

		require.NoError(t, err)
		require.Equal(t, 1, gen.callCount())
		assert.Contains(t, gen.calls[0].prompt, `"fr-FR"`)
	})

	t.Run("backend failure surfaces as UpstreamError", func(t *testing.T) {
		cause := errors.New("connection reset")
		tr := NewTransformer(&fakeGenerator{err: cause})

		text, err := tr.Transform(context.Background(), Request{
			SourceText: "Hello world",
			Mode:       ModeADHD,
		})

		assert.Empty(t, text)
		assert.True(t, IsUpstream(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("empty completion surfaces as UpstreamError", func(t *testing.T) {
		tr := NewTransformer(&fakeGenerator{response: ""})

		_, err := tr.Transform(context.Background(), Request{
			SourceText: "Hello world",
			Mode:       ModeADHD,
		})

		assert.True(t, IsUpstream(err))
	})
}
