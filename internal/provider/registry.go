package provider

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Registry aggregates providers: one voice list for the catalog, one
// synthesis entry point that routes on the voice URI prefix.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. A provider registered twice under the same
// name replaces the earlier one.
func (r *Registry) Register(p Provider) {
	name := p.Name()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = p
}

// Providers returns the registered provider names in registration order.
func (r *Registry) Providers() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ListVoices returns the voices of every available provider, in
// registration order. A provider that fails to list is skipped with a
// warning so one broken platform does not empty the whole catalog.
func (r *Registry) ListVoices(ctx context.Context) []Voice {
	var all []Voice

	for _, name := range r.order {
		p := r.providers[name]
		if !p.IsAvailable(ctx) {
			continue
		}
		voices, err := p.ListVoices(ctx)
		if err != nil {
			log.Warn().Err(err).Str("provider", name).Msg("Failed to list voices from provider")
			continue
		}
		all = append(all, voices...)
	}

	return all
}

// Synthesize routes the voice URI to its provider and renders the text.
func (r *Registry) Synthesize(ctx context.Context, text, voiceURI string) (io.ReadCloser, error) {
	providerName, voiceID, err := SplitVoiceURI(voiceURI)
	if err != nil {
		return nil, err
	}

	p, exists := r.providers[providerName]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", providerName)
	}
	if !p.IsAvailable(ctx) {
		return nil, fmt.Errorf("provider %s is not available", providerName)
	}

	return p.Synthesize(ctx, text, voiceID)
}

// FromEnv builds a registry from environment variables, mirroring how the
// CLI is deployed: AWS_REGION enables Amazon Polly, GOOGLE_CLOUD_PROJECT
// enables Google Cloud TTS. A registry with zero providers is valid; the
// catalog just stays empty.
func FromEnv(ctx context.Context) *Registry {
	r := NewRegistry()

	if region := os.Getenv("AWS_REGION"); region != "" {
		p, err := NewPollyProvider(ctx, region)
		if err != nil {
			log.Warn().Err(err).Msg("Amazon Polly provider unavailable")
		} else {
			r.Register(p)
			log.Debug().Str("region", region).Msg("Amazon Polly provider initialized")
		}
	}

	if projectID := os.Getenv("GOOGLE_CLOUD_PROJECT"); projectID != "" {
		p, err := NewGCPProvider(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Google Cloud TTS provider unavailable")
		} else {
			r.Register(p)
			log.Debug().Str("project", projectID).Msg("Google Cloud TTS provider initialized")
		}
	}

	return r
}
