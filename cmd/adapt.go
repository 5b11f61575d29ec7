package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/harutok/readapt/internal/adapt"
	"github.com/harutok/readapt/internal/catalog"
	"github.com/harutok/readapt/internal/playback"
	"github.com/harutok/readapt/internal/provider"
	"github.com/harutok/readapt/internal/session"
)

// buildSession assembles the full pipeline: providers from the environment,
// the voice catalog, the generation backend and the playback engine.
func buildSession(ctx context.Context, c *cli.Command) (*session.Session, error) {
	apiKey := c.String("api-key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("generation API key is required (use --api-key or set OPENAI_API_KEY)")
	}

	generator, err := adapt.NewOpenAIGenerator(apiKey, c.String("model"))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	registry := provider.FromEnv(ctx)
	cat := catalog.New(registry)
	cat.Refresh(ctx)

	pb := playback.NewController(playback.NewLocalEngine(registry))
	transform := session.NewController(adapt.NewTransformer(generator), cat, pb)

	return session.New(cat, transform, pb), nil
}

// readSourceText takes the content from the argument list, or stdin when no
// argument is given.
func readSourceText(c *cli.Command) (string, error) {
	if text := strings.TrimSpace(strings.Join(c.Args().Slice(), " ")); text != "" {
		return text, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func handleAdapt(ctx context.Context, c *cli.Command) error {
	mode, err := adapt.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	text, err := readSourceText(c)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no content to adapt (pass text as an argument or pipe it to stdin)")
	}

	s, err := buildSession(ctx, c)
	if err != nil {
		return err
	}

	if uri := c.String("voice"); uri != "" {
		s.SelectVoice(ctx, uri)
		selected := s.Catalog().Selected()
		if selected == nil || selected.URI != uri {
			return fmt.Errorf("voice '%s' not found (run 'readapt voices')", uri)
		}
	}

	s.SetText(text)
	s.SetMode(mode)
	s.Adapt(ctx)

	if err := s.Transform().Err(); err != nil {
		return err
	}
	result := s.Transform().Result()

	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(os.Stderr, "── %s ──\n", mode)
	fmt.Println(result)

	if c.Bool("speak") {
		return speakResult(s)
	}
	return nil
}

// speakResult reads the adapted content aloud and blocks until playback
// finishes.
func speakResult(s *session.Session) error {
	if s.Catalog().Selected() == nil {
		return fmt.Errorf("no synthesis voice available (set AWS_REGION or GOOGLE_CLOUD_PROJECT)")
	}

	s.ReadAloud()
	if s.Playback().State() == playback.StateIdle {
		return fmt.Errorf("read-aloud is not supported on this machine")
	}

	voice := s.Catalog().Selected()
	fmt.Fprintf(os.Stderr, "🔊 Reading aloud with %s (%s)\n", voice.Name, voice.Language)

	for s.Playback().State() != playback.StateIdle {
		time.Sleep(200 * time.Millisecond)
	}
	return nil
}
