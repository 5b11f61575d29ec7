package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	// Setup logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:  "readapt",
		Usage: "Adapt learning content to different learning styles and read it aloud",
		Description: `readapt rewrites pasted or piped text for a chosen learning style
(ADHD-friendly, Dyslexia-friendly, visual, audio, example-based or mixed),
optionally translated to match the selected synthesis voice, and can speak
the result through Amazon Polly or Google Cloud Text-to-Speech.`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "adapt",
				Usage:     "Adapt text for a learning style (from argument or stdin)",
				Action:    handleAdapt,
				Aliases:   []string{"a"},
				ArgsUsage: "[text]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Learning mode: adhd, dyslexia, visual, audio, example, mixed",
						Value:   "adhd",
					},
					&cli.StringFlag{
						Name:  "voice",
						Usage: "Voice URI (e.g. polly:Joanna); sets the output language",
					},
					&cli.BoolFlag{
						Name:    "speak",
						Aliases: []string{"s"},
						Usage:   "Read the adapted content aloud after printing it",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Generation model",
						Value: "gpt-4o-mini",
					},
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "Generation API key (or set OPENAI_API_KEY)",
					},
				},
			},
			{
				Name:    "voices",
				Usage:   "List synthesis voices from the configured providers",
				Action:  handleVoices,
				Aliases: []string{"v"},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "language",
						Usage: "Only show voices for this language tag prefix (e.g. en, fr-FR)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the content adapter as an MCP stdio server",
				Action: handleMCP,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "model",
						Usage: "Generation model",
						Value: "gpt-4o-mini",
					},
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "Generation API key (or set OPENAI_API_KEY)",
					},
				},
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Failed to run application")
	}
}
