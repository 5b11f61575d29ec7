package playback

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// State is the playback machine's position.
type State string

const (
	StateIdle     State = "idle"
	StateSpeaking State = "speaking"
	StatePaused   State = "paused"
)

// Controller owns the single active playback session and the transitions
// between Idle, Speaking and Paused. When the engine is unsupported every
// operation is a safe no-op and the state stays Idle.
//
// Engine callbacks may arrive at arbitrary times, including after the
// session they belong to was torn down; a generation counter ties each
// utterance to the session that started it so stale callbacks are ignored.
type Controller struct {
	engine Engine

	mu      sync.Mutex
	state   State
	current *Utterance
	gen     uint64
}

// NewController creates an idle controller over the given engine.
func NewController(engine Engine) *Controller {
	return &Controller{engine: engine, state: StateIdle}
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins speaking the given text with the given voice. Permitted
// only from Idle with non-empty text; any prior host-level utterance is
// cancelled first as a defensive clear.
func (c *Controller) Start(text, voiceURI, language string) {
	if !c.engine.Supported() {
		return
	}

	c.mu.Lock()
	if c.state != StateIdle || text == "" {
		c.mu.Unlock()
		return
	}

	c.gen++
	gen := c.gen

	u := &Utterance{
		Text:     text,
		VoiceURI: voiceURI,
		Language: language,
		OnEnd:    func() { c.finish(gen, nil) },
		OnError:  func(err error) { c.finish(gen, err) },
	}
	c.current = u
	c.state = StateSpeaking
	c.mu.Unlock()

	_ = c.engine.Cancel()

	if err := c.engine.Speak(u); err != nil {
		c.finish(gen, err)
	}
}

// Pause requests host pause. Valid only while Speaking.
func (c *Controller) Pause() {
	if !c.engine.Supported() {
		return
	}

	c.mu.Lock()
	if c.state != StateSpeaking {
		c.mu.Unlock()
		return
	}
	c.state = StatePaused
	c.mu.Unlock()

	if err := c.engine.Pause(); err != nil {
		log.Warn().Err(err).Msg("Failed to pause playback")
	}
}

// Resume requests host resume. Valid only while Paused.
func (c *Controller) Resume() {
	if !c.engine.Supported() {
		return
	}

	c.mu.Lock()
	if c.state != StatePaused {
		c.mu.Unlock()
		return
	}
	c.state = StateSpeaking
	c.mu.Unlock()

	if err := c.engine.Resume(); err != nil {
		log.Warn().Err(err).Msg("Failed to resume playback")
	}
}

// Stop cancels the active utterance and returns to Idle. Idempotent: safe
// to call when already Idle. The state transition is synchronous even
// though the host cancel may not be.
func (c *Controller) Stop() {
	if !c.engine.Supported() {
		return
	}

	c.mu.Lock()
	wasActive := c.state != StateIdle || c.current != nil
	c.gen++ // orphan any in-flight callbacks
	c.current = nil
	c.state = StateIdle
	c.mu.Unlock()

	if wasActive {
		_ = c.engine.Cancel()
	}
}

// HandleReadAloud is the single toggle exposed to the UI layer: Speaking
// pauses, Paused resumes, anything else starts.
func (c *Controller) HandleReadAloud(text, voiceURI, language string) {
	switch c.State() {
	case StateSpeaking:
		c.Pause()
	case StatePaused:
		c.Resume()
	default:
		c.Start(text, voiceURI, language)
	}
}

// finish is the terminal transition shared by completion, error and
// failed-start paths. Callbacks from a superseded session are dropped.
func (c *Controller) finish(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.state = StateIdle
	c.mu.Unlock()

	if err != nil && !errors.Is(err, ErrInterrupted) {
		log.Warn().Err(err).Msg("Playback failed")
	}
}
