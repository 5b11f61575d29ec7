// Package provider abstracts the speech-synthesis platforms that supply
// voices and audio: voice discovery and text-to-speech synthesis behind a
// single interface, with a registry that aggregates several platforms.
package provider

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Voice is a synthesis identity supplied by a platform. The core never
// constructs voices, only selects from the discovered list.
type Voice struct {
	// URI uniquely identifies the voice across providers, in the form
	// "<provider>:<id>".
	URI string `json:"uri"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Language is the voice's BCP 47 language tag, e.g. "en-US".
	Language string `json:"language"`

	// Default marks the provider's preferred voice.
	Default bool `json:"default,omitempty"`

	// Gender is informational only.
	Gender string `json:"gender,omitempty"`
}

// Provider is a speech-synthesis platform: it lists the voices it offers
// and renders text to audio with one of them.
type Provider interface {
	// Name returns the provider name used as the voice URI prefix.
	Name() string

	// IsAvailable checks if the provider is usable (credentials, connectivity).
	IsAvailable(ctx context.Context) bool

	// ListVoices returns the voices this provider currently offers.
	ListVoices(ctx context.Context) ([]Voice, error)

	// Synthesize renders text with the given voice ID and returns an audio
	// stream. The caller closes the stream.
	Synthesize(ctx context.Context, text, voiceID string) (io.ReadCloser, error)
}

// VoiceURI builds the cross-provider voice identifier.
func VoiceURI(providerName, voiceID string) string {
	return providerName + ":" + voiceID
}

// SplitVoiceURI breaks a voice URI into provider name and voice ID.
func SplitVoiceURI(uri string) (providerName, voiceID string, err error) {
	providerName, voiceID, ok := strings.Cut(uri, ":")
	if !ok || providerName == "" || voiceID == "" {
		return "", "", fmt.Errorf("malformed voice URI: %q", uri)
	}
	return providerName, voiceID, nil
}
