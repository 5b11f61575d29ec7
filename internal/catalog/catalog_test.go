package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harutok/readapt/internal/provider"
)

// fakeDiscovery serves whatever voice list the test sets.
type fakeDiscovery struct {
	voices []provider.Voice
}

func (d *fakeDiscovery) ListVoices(ctx context.Context) []provider.Voice {
	return d.voices
}

func voice(uri, lang string, def bool) provider.Voice {
	return provider.Voice{URI: uri, Name: uri, Language: lang, Default: def}
}

func TestRefreshDefaultPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers english default voice", func(t *testing.T) {
		d := &fakeDiscovery{voices: []provider.Voice{
			voice("p:fr", "fr-FR", true),
			voice("p:en1", "en-GB", false),
			voice("p:en2", "en-US", true),
		}}
		c := New(d)
		c.Refresh(ctx)

		require.NotNil(t, c.Selected())
		assert.Equal(t, "p:en2", c.Selected().URI)
	})

	t.Run("falls back to first english voice", func(t *testing.T) {
		d := &fakeDiscovery{voices: []provider.Voice{
			voice("p:ja", "ja-JP", false),
			voice("p:en", "en-AU", false),
		}}
		c := New(d)
		c.Refresh(ctx)

		require.NotNil(t, c.Selected())
		assert.Equal(t, "p:en", c.Selected().URI)
	})

	t.Run("falls back to first voice", func(t *testing.T) {
		d := &fakeDiscovery{voices: []provider.Voice{
			voice("p:ja", "ja-JP", false),
			voice("p:fr", "fr-FR", false),
		}}
		c := New(d)
		c.Refresh(ctx)

		require.NotNil(t, c.Selected())
		assert.Equal(t, "p:ja", c.Selected().URI)
	})

	t.Run("empty list leaves selection untouched", func(t *testing.T) {
		d := &fakeDiscovery{}
		c := New(d)
		c.Refresh(ctx)

		assert.Nil(t, c.Selected())
		assert.Empty(t, c.Voices())
	})
}

func TestRefreshPreservesSelectionByURI(t *testing.T) {
	ctx := context.Background()

	d := &fakeDiscovery{voices: []provider.Voice{
		voice("p:en", "en-US", true),
		voice("p:fr", "fr-FR", false),
	}}
	c := New(d)
	c.Refresh(ctx)
	c.Select("p:fr")
	require.Equal(t, "p:fr", c.Selected().URI)

	// Same URI comes back with refreshed attributes.
	d.voices = []provider.Voice{
		voice("p:en", "en-US", true),
		{URI: "p:fr", Name: "Renamed", Language: "fr-CA", Default: false},
	}
	c.Refresh(ctx)

	require.NotNil(t, c.Selected())
	assert.Equal(t, "p:fr", c.Selected().URI)
	assert.Equal(t, "Renamed", c.Selected().Name)
	assert.Equal(t, "fr-CA", c.Selected().Language)
}

func TestRefreshReplacesRemovedSelection(t *testing.T) {
	ctx := context.Background()

	d := &fakeDiscovery{voices: []provider.Voice{
		voice("p:fr", "fr-FR", false),
		voice("p:en", "en-US", true),
	}}
	c := New(d)
	c.Refresh(ctx)
	c.Select("p:fr")

	d.voices = []provider.Voice{voice("p:en", "en-US", true)}
	c.Refresh(ctx)

	require.NotNil(t, c.Selected())
	assert.Equal(t, "p:en", c.Selected().URI)
}

func TestRefreshIsIdempotent(t *testing.T) {
	ctx := context.Background()

	d := &fakeDiscovery{voices: []provider.Voice{
		voice("p:en", "en-US", true),
		voice("p:fr", "fr-FR", false),
	}}
	c := New(d)

	// Bursts of change notifications re-invoke Refresh with the same list.
	c.Refresh(ctx)
	first := c.Selected().URI
	c.Refresh(ctx)
	c.Refresh(ctx)

	assert.Equal(t, first, c.Selected().URI)
	assert.Len(t, c.Voices(), 2)
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	d := &fakeDiscovery{voices: []provider.Voice{
		voice("p:en", "en-US", true),
		voice("p:fr", "fr-FR", false),
	}}
	c := New(d)
	c.Refresh(ctx)

	t.Run("selects a matching voice", func(t *testing.T) {
		c.Select("p:fr")
		assert.Equal(t, "p:fr", c.Selected().URI)
	})

	t.Run("unknown URI is a silent no-op", func(t *testing.T) {
		c.Select("p:fr")
		c.Select("p:nope")
		assert.Equal(t, "p:fr", c.Selected().URI)
	})
}
