package adapt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// SystemInstruction is the protocol the generation backend is held to.
// The framing phrases are load-bearing: downstream consumers recognize the
// response by its fixed preamble and postamble, and the translation case
// must produce nothing but the translated text. Treat this as a wire
// format, not prose.
const SystemInstruction = `You are a learning-content adaptation assistant. ` +
	`Always begin your response with "Here is your adapted content in <mode> format:" ` +
	`where <mode> is the requested learning mode, use markdown bold for key points, ` +
	`and always end with "Would you like this in another learning style?". ` +
	`EXCEPTION: if the prompt contains a translation instruction, your entire response ` +
	`must be ONLY the translated adapted text, in that language, with none of the ` +
	`framing phrases above.`

// BuildPrompt assembles the backend prompt for a request. Mode adaptation
// comes first; the translation instruction is appended only when the target
// language is set and is not English.
func BuildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Adapt the following content for a %q learner. %s\n\n", req.Mode, req.Mode.guidance())
	fmt.Fprintf(&b, "Content:\n%s", req.SourceText)

	if req.TargetLanguage != "" && !IsEnglish(req.TargetLanguage) {
		fmt.Fprintf(&b, "\n\nIMPORTANT: The final output must be written wholly in %q. "+
			"Do not include any content in any other language.", req.TargetLanguage)
	}

	return b.String()
}

// IsEnglish reports whether a BCP 47 tag denotes English ("en", "en-US",
// "en_GB", ...). Unparseable tags fall back to a prefix check so a bad tag
// from a host voice never blocks adaptation.
func IsEnglish(tag string) bool {
	parsed, err := language.Parse(tag)
	if err != nil {
		return strings.HasPrefix(strings.ToLower(tag), "en")
	}
	base, _ := parsed.Base()
	return base.String() == "en"
}
