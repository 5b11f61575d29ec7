package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
)

// defaultGCPVoice is flagged as the provider default in the catalog.
const defaultGCPVoice = "en-US-Neural2-C"

// GCPClient is the subset of the Cloud TTS API this provider needs.
type GCPClient interface {
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...grpc.CallOption) (*texttospeechpb.ListVoicesResponse, error)
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...grpc.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// gcpClientAdapter bridges the generated client, whose methods take
// gax.CallOption rather than grpc.CallOption.
type gcpClientAdapter struct {
	client *texttospeech.Client
}

func (a *gcpClientAdapter) ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, _ ...grpc.CallOption) (*texttospeechpb.ListVoicesResponse, error) {
	return a.client.ListVoices(ctx, req)
}

func (a *gcpClientAdapter) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, _ ...grpc.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	return a.client.SynthesizeSpeech(ctx, req)
}

func (a *gcpClientAdapter) Close() error {
	return a.client.Close()
}

// GCPProvider implements Provider on Google Cloud Text-to-Speech.
// Authentication comes from GOOGLE_APPLICATION_CREDENTIALS or Application
// Default Credentials.
type GCPProvider struct {
	client GCPClient
}

// NewGCPProvider creates a Cloud TTS provider.
func NewGCPProvider(ctx context.Context) (*GCPProvider, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP TTS client: %w", err)
	}
	return &GCPProvider{client: &gcpClientAdapter{client: client}}, nil
}

// Name implements Provider.
func (p *GCPProvider) Name() string {
	return "gcp"
}

// IsAvailable implements Provider.
func (p *GCPProvider) IsAvailable(ctx context.Context) bool {
	return p.client != nil
}

// Close releases the underlying gRPC connection.
func (p *GCPProvider) Close() error {
	return p.client.Close()
}

// ListVoices implements Provider. A GCP voice that carries several
// language codes is listed once per code, since selection is per-language.
func (p *GCPProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list GCP voices: %w", err)
	}

	var voices []Voice
	for _, v := range resp.Voices {
		gender := ""
		switch v.SsmlGender {
		case texttospeechpb.SsmlVoiceGender_MALE:
			gender = "male"
		case texttospeechpb.SsmlVoiceGender_FEMALE:
			gender = "female"
		case texttospeechpb.SsmlVoiceGender_NEUTRAL:
			gender = "neutral"
		}

		for _, langCode := range v.LanguageCodes {
			voices = append(voices, Voice{
				URI:      VoiceURI(p.Name(), v.Name),
				Name:     v.Name,
				Language: langCode,
				Default:  v.Name == defaultGCPVoice,
				Gender:   gender,
			})
		}
	}

	log.Debug().Int("count", len(voices)).Msg("Listed GCP TTS voices")
	return voices, nil
}

// Synthesize implements Provider with MP3 output. The language code is
// derived from the voice name (e.g. "ja-JP-Neural2-B" -> "ja-JP").
func (p *GCPProvider) Synthesize(ctx context.Context, text, voiceID string) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if voiceID == "" {
		voiceID = defaultGCPVoice
	}

	langCode := languageFromVoiceName(voiceID)

	log.Debug().
		Str("voice", voiceID).
		Str("language", langCode).
		Msg("Making GCP TTS synthesis request")

	resp, err := p.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: langCode,
			Name:         voiceID,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	return io.NopCloser(bytes.NewReader(resp.AudioContent)), nil
}

// languageFromVoiceName extracts the leading BCP 47 tag from a GCP voice
// name like "en-US-Neural2-C".
func languageFromVoiceName(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return name
}

var _ Provider = (*GCPProvider)(nil)
