package ocr

import (
	"strings"
	"unicode"
)

// detectLanguage classifies page text as Malayalam, English, mixed or
// unknown by script composition. A page needs a dominant script fraction
// above 0.7 to get a definite label.
func detectLanguage(text string) string {
	if len(strings.TrimSpace(text)) < 10 {
		return "unknown"
	}

	var malayalam, latin int
	for _, r := range text {
		switch {
		case r >= 0x0D00 && r <= 0x0D7F:
			malayalam++
		case unicode.In(r, unicode.Latin):
			latin++
		}
	}

	total := malayalam + latin
	if total == 0 {
		return "unknown"
	}

	switch {
	case float64(malayalam)/float64(total) > 0.7:
		return "ml"
	case float64(latin)/float64(total) > 0.7:
		return "en"
	default:
		return "mixed"
	}
}
