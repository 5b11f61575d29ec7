package adapt

import (
	"fmt"
	"strings"
)

// Mode is a learning mode: a named content-adaptation style the user picks.
type Mode string

const (
	ModeADHD     Mode = "ADHD-friendly"
	ModeDyslexia Mode = "Dyslexia-friendly"
	ModeVisual   Mode = "Visual learner"
	ModeAudio    Mode = "Audio learner"
	ModeExample  Mode = "Example-based learner"
	ModeMixed    Mode = "Mixed mode"
)

// Modes lists every supported learning mode in display order.
func Modes() []Mode {
	return []Mode{ModeADHD, ModeDyslexia, ModeVisual, ModeAudio, ModeExample, ModeMixed}
}

// ParseMode resolves a user-supplied string to a Mode. Matching is
// case-insensitive and also accepts the short aliases used by the CLI
// (e.g. "adhd", "visual").
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	aliases := map[string]Mode{
		"adhd":     ModeADHD,
		"dyslexia": ModeDyslexia,
		"visual":   ModeVisual,
		"audio":    ModeAudio,
		"example":  ModeExample,
		"examples": ModeExample,
		"mixed":    ModeMixed,
	}
	if m, ok := aliases[normalized]; ok {
		return m, nil
	}

	for _, m := range Modes() {
		if strings.ToLower(string(m)) == normalized {
			return m, nil
		}
	}

	return "", fmt.Errorf("unknown learning mode: %q", s)
}

// guidance returns the adaptation instructions sent to the generation
// backend for this mode.
func (m Mode) guidance() string {
	switch m {
	case ModeADHD:
		return "Break the content into short, focused chunks with clear headings. " +
			"Use bullet points, keep sentences brief, and put the most important point first in every section."
	case ModeDyslexia:
		return "Use simple, common words and short sentences. " +
			"Avoid dense paragraphs, idioms, and ambiguous phrasing; prefer one idea per line."
	case ModeVisual:
		return "Restructure the content around visual anchors: describe diagrams, tables, and spatial layouts, " +
			"and use formatting that creates a clear visual hierarchy."
	case ModeAudio:
		return "Rewrite the content as if it were spoken aloud: conversational tone, natural rhythm, " +
			"spelled-out numbers and symbols, and verbal signposts like \"first\" and \"next\"."
	case ModeExample:
		return "Teach every concept through concrete, worked examples before stating the general rule. " +
			"Each abstract idea must be paired with at least one practical illustration."
	case ModeMixed:
		return "Combine the strongest techniques from the other styles: short visual sections, " +
			"a conversational voice, and a concrete example for every key concept."
	default:
		return "Rewrite the content so it is easier to learn from."
	}
}
