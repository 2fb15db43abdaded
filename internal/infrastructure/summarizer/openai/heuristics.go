package openai

import (
	"regexp"
	"strings"
)

// detectDocumentType buckets a document by a few strong content markers.
func detectDocumentType(text string) string {
	lower := strings.ToLower(text)

	containsAny := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("resume", "cv", "experience", "skills"):
		return "Resume/CV"
	case containsAny("invoice", "bill", "payment"):
		return "Invoice"
	case containsAny("contract", "agreement", "terms"):
		return "Contract"
	case strings.Contains(lower, "report"):
		return "Report"
	default:
		return "Document"
	}
}

var (
	namePattern  = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	datePattern  = regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// extractKeyInformation pulls names, dates and contact details out of the
// summary text with pattern matching. Values are deduplicated and joined in
// first-seen order.
func extractKeyInformation(summaryText string) map[string]string {
	contact := append(emailPattern.FindAllString(summaryText, -1),
		phonePattern.FindAllString(summaryText, -1)...)

	return map[string]string{
		"names":        joinDistinct(namePattern.FindAllString(summaryText, -1)),
		"dates":        joinDistinct(datePattern.FindAllString(summaryText, -1)),
		"contact_info": joinDistinct(contact),
	}
}

func joinDistinct(values []string) string {
	seen := make(map[string]struct{}, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	return strings.Join(distinct, ", ")
}
