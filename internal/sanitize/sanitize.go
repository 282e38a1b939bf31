// Package sanitize escapes untrusted text before it is rendered into chat
// transcripts.
package sanitize

import "strings"

// escaper replaces every markup-significant character in a single pass.
// strings.Replacer never rescans replacement output, so a produced
// ampersand is not escaped twice; a literal "&lt;" in the input becomes
// "&amp;lt;".
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeText escapes & < > " ' for safe insertion into markup.
func EscapeText(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}

// TextToHTML escapes the text and converts literal newlines to <br> tags.
// Escaping runs first so the break tags themselves survive.
func TextToHTML(s string) string {
	return strings.ReplaceAll(EscapeText(s), "\n", "<br>")
}
