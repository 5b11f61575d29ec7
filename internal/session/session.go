package session

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/harutok/readapt/internal/adapt"
	"github.com/harutok/readapt/internal/catalog"
	"github.com/harutok/readapt/internal/playback"
)

// Session is the top-level coordination surface: it ties the voice catalog,
// the transformation controller and the playback controller together and
// implements the cross-cutting rules between them, most notably the
// re-transformation that follows a voice change into another language.
type Session struct {
	catalog   *catalog.Catalog
	transform *Controller
	playback  *playback.Controller
}

// New assembles a session from its three controllers.
func New(cat *catalog.Catalog, transform *Controller, pb *playback.Controller) *Session {
	return &Session{catalog: cat, transform: transform, playback: pb}
}

// Transform exposes the transformation controller.
func (s *Session) Transform() *Controller { return s.transform }

// Playback exposes the playback controller.
func (s *Session) Playback() *playback.Controller { return s.playback }

// Catalog exposes the voice catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// SetText replaces the source text for subsequent transformations.
func (s *Session) SetText(text string) { s.transform.SetSource(text) }

// SetMode replaces the learning mode for subsequent transformations.
func (s *Session) SetMode(m adapt.Mode) { s.transform.SetMode(m) }

// Adapt runs one transformation with the current text, mode and voice.
func (s *Session) Adapt(ctx context.Context) { s.transform.Run(ctx) }

// RefreshVoices reloads the catalog from the providers.
func (s *Session) RefreshVoices(ctx context.Context) { s.catalog.Refresh(ctx) }

// ReadAloud toggles playback of the current transformed content with the
// selected voice. With no result yet, playback refuses the empty text and
// stays idle.
func (s *Session) ReadAloud() {
	var voiceURI, lang string
	if v := s.catalog.Selected(); v != nil {
		voiceURI = v.URI
		lang = v.Language
	}
	s.playback.HandleReadAloud(s.transform.Result(), voiceURI, lang)
}

// SelectVoice switches the catalog selection and, when the new voice speaks
// a different language than the previous one while a transformed result is
// already on screen and nothing is loading, re-runs the transformation once
// so the content follows the voice's language. Selecting a voice with the
// same language, or changing the mode, never re-triggers on its own.
func (s *Session) SelectVoice(ctx context.Context, uri string) {
	prev := s.catalog.Selected()
	s.catalog.Select(uri)
	next := s.catalog.Selected()

	if next == nil {
		return
	}
	prevLang := ""
	if prev != nil {
		prevLang = prev.Language
	}
	if next.Language == prevLang {
		return
	}
	if s.transform.Result() == "" || s.transform.Loading() {
		return
	}

	log.Debug().
		Str("voice", next.URI).
		Str("language", next.Language).
		Msg("Voice language changed; re-running transformation")
	s.transform.Run(ctx)
}
