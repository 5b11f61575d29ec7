package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/harutok/readapt/internal/catalog"
	"github.com/harutok/readapt/internal/provider"
)

func handleVoices(ctx context.Context, c *cli.Command) error {
	registry := provider.FromEnv(ctx)
	if len(registry.Providers()) == 0 {
		return fmt.Errorf("no speech providers configured (set AWS_REGION for Polly or GOOGLE_CLOUD_PROJECT for Google Cloud TTS)")
	}

	cat := catalog.New(registry)
	cat.Refresh(ctx)

	voices := cat.Voices()
	if len(voices) == 0 {
		return fmt.Errorf("no voices found")
	}

	langFilter := c.String("language")
	selected := cat.Selected()

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	marker := color.New(color.FgGreen)

	count := 0
	for _, v := range voices {
		if langFilter != "" && !strings.HasPrefix(v.Language, langFilter) {
			continue
		}
		count++

		prefix := "  "
		if selected != nil && selected.URI == v.URI {
			prefix = marker.Sprint("* ")
		}
		line := fmt.Sprintf("%s%s", prefix, bold.Sprint(v.URI))
		details := fmt.Sprintf("%s, %s", v.Language, v.Name)
		if v.Gender != "" {
			details += ", " + v.Gender
		}
		fmt.Printf("%s  %s\n", line, dim.Sprintf("(%s)", details))
	}

	if count == 0 {
		return fmt.Errorf("no voices match language '%s'", langFilter)
	}

	fmt.Printf("\n%d voices from %s\n", count, strings.Join(registry.Providers(), ", "))
	return nil
}
