// internal/chatbot/fallback/clean.go
package fallback

import (
	"regexp"
	"strings"
)

var (
	leadingGreeting = regexp.MustCompile(`(?is)^[\s\x{00A0}]*(?:bonjour|salut|bonsoir|hello|hi)\b[\s\x{00A0}]*[!.,]*(?:\r?\n)*`)
	greetingLine    = regexp.MustCompile(`(?i)^(?:bonjour|salut|bonsoir|hello|hi)\b`)
)

// cleanResponse strips a greeting the model put in front of its answer.
// If a greeting still opens the text, its whole first line goes.
func cleanResponse(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = leadingGreeting.ReplaceAllString(cleaned, "")
	if greetingLine.MatchString(cleaned) {
		if _, rest, ok := strings.Cut(cleaned, "\n"); ok {
			cleaned = rest
		} else {
			cleaned = ""
		}
	}
	return strings.TrimSpace(cleaned)
}
