// File: services/retrieval/preprocess.go
package retrieval

import (
	"strings"
	"unicode"
)

// maxEmbedChars keeps inputs under the embedding model's token ceiling.
const maxEmbedChars = 8000

// Normalize applies the deterministic preprocessing applied before every
// embedding call: trim, collapse whitespace, strip decorative symbols,
// truncate.
func Normalize(text string) string {
	var sb strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsSpace(r) {
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
			continue
		}
		lastSpace = false
		// Drop decorative symbols (emoji, dingbats) but keep punctuation
		// and all letters/digits, Thai included.
		if unicode.IsSymbol(r) || unicode.In(r, unicode.So) {
			continue
		}
		sb.WriteRune(r)
	}

	out := strings.TrimSpace(sb.String())
	if len(out) > maxEmbedChars {
		runes := []rune(out)
		if len(runes) > maxEmbedChars {
			runes = runes[:maxEmbedChars]
		}
		out = string(runes)
	}
	return out
}

// DetectLanguage classifies the message as Thai, English or other by script.
func DetectLanguage(text string) string {
	var thai, latin int
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Thai):
			thai++
		case unicode.In(r, unicode.Latin):
			latin++
		}
	}
	switch {
	case thai > 0 && thai >= latin:
		return "th"
	case latin > 0:
		return "en"
	default:
		return "other"
	}
}

// DetectIntent derives a coarse intent category for retrieval metadata.
func DetectIntent(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "cancel", "ยกเลิก"):
		return "cancellation"
	case containsAny(lower, "available", "availability", "free", "ว่าง", "คิว"):
		return "availability"
	case containsAny(lower, "book", "reserve", "จอง", "coaching", "lesson", "เรียน"):
		return "booking"
	default:
		return "general"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
