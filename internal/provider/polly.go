package provider

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultPollyVoice is flagged as the provider default in the catalog.
const defaultPollyVoice = "Joanna"

// PollyClient is the subset of the Polly API this provider needs.
type PollyClient interface {
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyProvider implements Provider on Amazon Polly.
type PollyProvider struct {
	client PollyClient
	region string
}

// NewPollyProvider creates a Polly provider in the given region, using the
// default AWS credential chain.
func NewPollyProvider(ctx context.Context, region string) (*PollyProvider, error) {
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &PollyProvider{
		client: polly.NewFromConfig(cfg),
		region: region,
	}, nil
}

// Name implements Provider.
func (p *PollyProvider) Name() string {
	return "polly"
}

// IsAvailable implements Provider.
func (p *PollyProvider) IsAvailable(ctx context.Context) bool {
	return p.client != nil
}

// ListVoices implements Provider.
func (p *PollyProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	result, err := p.client.DescribeVoices(ctx, &polly.DescribeVoicesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Polly voices: %w", err)
	}

	voices := make([]Voice, 0, len(result.Voices))
	for _, v := range result.Voices {
		voice := Voice{
			URI:      VoiceURI(p.Name(), string(v.Id)),
			Name:     aws.ToString(v.Name),
			Language: string(v.LanguageCode),
			Default:  string(v.Id) == defaultPollyVoice,
			Gender:   cases.Lower(language.English).String(string(v.Gender)),
		}
		voices = append(voices, voice)
	}

	return voices, nil
}

// Synthesize implements Provider using the neural engine and MP3 output.
func (p *PollyProvider) Synthesize(ctx context.Context, text, voiceID string) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if voiceID == "" {
		voiceID = defaultPollyVoice
	}

	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voiceID),
		OutputFormat: types.OutputFormatMp3,
		Engine:       types.EngineNeural,
		TextType:     types.TextTypeText,
	}

	log.Debug().
		Str("voice_id", voiceID).
		Str("region", p.region).
		Msg("Making Polly synthesis request")

	result, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	return result.AudioStream, nil
}

var _ Provider = (*PollyProvider)(nil)
