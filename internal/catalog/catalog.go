// Package catalog maintains the list of synthesis voices discovered from
// the speech platforms and the user's currently selected voice.
package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/harutok/readapt/internal/adapt"
	"github.com/harutok/readapt/internal/provider"
)

// Discovery supplies the current voice list. Satisfied by
// *provider.Registry.
type Discovery interface {
	ListVoices(ctx context.Context) []provider.Voice
}

// Catalog holds the ordered voice list and at most one selected voice.
// Safe for concurrent use; discovery notifications may arrive at any time
// and Refresh is idempotent given identical input.
type Catalog struct {
	discovery Discovery

	mu       sync.Mutex
	voices   []provider.Voice
	selected *provider.Voice
}

// New creates a catalog over the given discovery source. The catalog is
// empty until the first Refresh.
func New(d Discovery) *Catalog {
	return &Catalog{discovery: d}
}

// Refresh replaces the stored voice list with the discovery source's
// current one and re-derives the selection: a previously selected voice is
// kept when its URI is still present (attributes refreshed), otherwise the
// default policy picks a replacement. An empty result leaves the selection
// untouched.
func (c *Catalog) Refresh(ctx context.Context) {
	voices := c.discovery.ListVoices(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.voices = voices
	if len(voices) == 0 {
		log.Debug().Msg("Voice refresh returned no voices; selection unchanged")
		return
	}

	if c.selected != nil {
		for i := range voices {
			if voices[i].URI == c.selected.URI {
				c.selected = &voices[i]
				return
			}
		}
	}

	c.selected = pickDefault(voices)
	log.Debug().
		Int("count", len(voices)).
		Str("selected", c.selected.URI).
		Msg("Voice catalog refreshed")
}

// Select makes the voice with the given URI the current selection. It does
// nothing when no voice matches.
func (c *Catalog) Select(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.voices {
		if c.voices[i].URI == uri {
			c.selected = &c.voices[i]
			return
		}
	}
	log.Debug().Str("uri", uri).Msg("Voice selection ignored: no such voice")
}

// Voices returns a copy of the current voice list.
func (c *Catalog) Voices() []provider.Voice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]provider.Voice, len(c.voices))
	copy(out, c.voices)
	return out
}

// Selected returns a copy of the selected voice, or nil when nothing is
// selected.
func (c *Catalog) Selected() *provider.Voice {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return nil
	}
	v := *c.selected
	return &v
}

// pickDefault chooses a selection for a non-empty voice list: the first
// English voice flagged default, else the first English voice, else the
// first voice.
func pickDefault(voices []provider.Voice) *provider.Voice {
	for i := range voices {
		if voices[i].Default && adapt.IsEnglish(voices[i].Language) {
			return &voices[i]
		}
	}
	for i := range voices {
		if adapt.IsEnglish(voices[i].Language) {
			return &voices[i]
		}
	}
	return &voices[0]
}
