// Package playback drives read-aloud audio: a speech engine abstraction
// and the play/pause/resume/stop state machine on top of it.
package playback

import "errors"

// ErrInterrupted marks a playback error caused by a deliberate stop or
// cancel. It is expected and always swallowed, never surfaced to the user.
var ErrInterrupted = errors.New("playback interrupted")

// Utterance is one unit of text bound to a voice, submitted to the engine
// for audio playback. The callbacks fire exactly once, on whichever of
// natural completion or failure happens, from the engine's goroutine.
type Utterance struct {
	Text     string
	VoiceURI string
	Language string

	OnEnd   func()
	OnError func(err error)
}

// Engine is the host speech facility. Speak starts asynchronously and
// reports completion through the utterance callbacks; Pause, Resume and
// Cancel act on whatever utterance is currently active.
type Engine interface {
	// Supported reports whether the host can play audio at all.
	Supported() bool

	// Speak begins playing the utterance. The returned error covers only
	// failures to start; later failures arrive via OnError.
	Speak(u *Utterance) error

	Pause() error
	Resume() error

	// Cancel discards the active utterance, if any. The utterance's
	// OnError fires with ErrInterrupted (possibly wrapped).
	Cancel() error
}
