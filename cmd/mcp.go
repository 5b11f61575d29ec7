package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/harutok/readapt/internal/adapt"
)

// handleMCP exposes the content adapter as an MCP tool so agent hosts can
// request learning-style rewrites over stdio.
func handleMCP(ctx context.Context, c *cli.Command) error {
	apiKey := c.String("api-key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("generation API key is required (use --api-key or set OPENAI_API_KEY)")
	}

	generator, err := adapt.NewOpenAIGenerator(apiKey, c.String("model"))
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	transformer := adapt.NewTransformer(generator)

	s := server.NewMCPServer("readapt", version,
		server.WithToolCapabilities(false),
	)

	modeNames := make([]string, 0, len(adapt.Modes()))
	for _, m := range adapt.Modes() {
		modeNames = append(modeNames, string(m))
	}

	tool := mcp.NewTool("adapt_content",
		mcp.WithDescription("Rewrite learning content for a specific learning style, optionally translated to a target language."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The content to adapt."),
		),
		mcp.WithString("mode",
			mcp.Description(fmt.Sprintf("Learning mode, one of: %s. Defaults to %s.",
				strings.Join(modeNames, ", "), adapt.ModeADHD)),
		),
		mcp.WithString("language",
			mcp.Description("Optional BCP 47 target language tag (e.g. fr-FR). English tags leave the content untranslated."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		mode := adapt.ModeADHD
		if raw := request.GetString("mode", ""); raw != "" {
			mode, err = adapt.ParseMode(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		result, err := transformer.Transform(ctx, adapt.Request{
			SourceText:     text,
			Mode:           mode,
			TargetLanguage: request.GetString("language", ""),
		})
		if err != nil {
			log.Warn().Err(err).Msg("MCP adaptation failed")
			return mcp.NewToolResultError(fmt.Sprintf("adaptation failed: %v", err)), nil
		}

		return mcp.NewToolResultText(result), nil
	})

	log.Info().Str("version", version).Msg("Starting MCP stdio server")
	return server.ServeStdio(s)
}
