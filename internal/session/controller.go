// Package session owns the content-adaptation request lifecycle and the
// coordination between transformation, voice selection and playback.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/harutok/readapt/internal/adapt"
	"github.com/harutok/readapt/internal/provider"
)

// ErrGenerationFailed is the user-facing marker stored when the generation
// backend fails. It deliberately carries no backend detail; the user just
// retries.
var ErrGenerationFailed = errors.New("content generation failed, please try again")

// Transformer adapts a request into rewritten text. Satisfied by
// *adapt.Transformer.
type Transformer interface {
	Transform(ctx context.Context, req adapt.Request) (string, error)
}

// VoiceSource exposes the currently selected voice. Satisfied by
// *catalog.Catalog.
type VoiceSource interface {
	Selected() *provider.Voice
}

// Stopper halts active audio playback. Satisfied by
// *playback.Controller.
type Stopper interface {
	Stop()
}

// Controller runs transformations single-flight: while one is loading,
// further Run calls are refused by precondition, never queued, and the
// in-flight call is never aborted. The current source text and mode live
// here, set by the surrounding UI, so a run always picks up whatever they
// are at call time.
type Controller struct {
	transformer Transformer
	voices      VoiceSource
	playback    Stopper

	mu         sync.Mutex
	sourceText string
	mode       adapt.Mode
	loading    bool
	result     string
	lastErr    error
}

// NewController wires a transformation controller to its collaborators.
func NewController(t Transformer, voices VoiceSource, playback Stopper) *Controller {
	return &Controller{
		transformer: t,
		voices:      voices,
		playback:    playback,
		mode:        adapt.ModeADHD,
	}
}

// SetSource replaces the source text for subsequent runs. The stored
// result is kept; the user may still replay or re-run it.
func (c *Controller) SetSource(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sourceText = text
}

// SetMode replaces the learning mode for subsequent runs. A mode change
// alone never re-triggers a transformation (only a voice-language change
// does).
func (c *Controller) SetMode(m adapt.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
}

// Source returns the current source text.
func (c *Controller) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sourceText
}

// Mode returns the current learning mode.
func (c *Controller) Mode() adapt.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Loading reports whether a transformation is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Result returns the last successful transformation, or "" when none.
func (c *Controller) Result() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the error marker of the last failed transformation, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Run performs one transformation. It is a silent no-op when the source
// text is empty or another run is loading. The in-flight flag is claimed
// atomically with the precondition check; playback is then stopped before
// the previous result is cleared and the backend invoked, so stale audio
// never plays over content that is about to change. The target language is
// whatever voice is selected at call time. The loading flag is cleared on
// every outcome.
func (c *Controller) Run(ctx context.Context) {
	c.mu.Lock()
	if c.sourceText == "" || c.loading {
		c.mu.Unlock()
		log.Debug().Msg("Transformation refused: empty source or already loading")
		return
	}
	c.loading = true
	text := c.sourceText
	mode := c.mode
	c.mu.Unlock()

	c.playback.Stop()

	c.mu.Lock()
	c.lastErr = nil
	c.result = ""
	c.mu.Unlock()

	targetLanguage := ""
	if v := c.voices.Selected(); v != nil {
		targetLanguage = v.Language
	}

	out, err := c.transformer.Transform(ctx, adapt.Request{
		SourceText:     text,
		Mode:           mode,
		TargetLanguage: targetLanguage,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Msg("Transformation failed")
		c.lastErr = ErrGenerationFailed
		c.result = ""
		return
	}
	c.result = out
	c.lastErr = nil
}
