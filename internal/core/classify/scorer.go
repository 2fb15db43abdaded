package classify

import (
	"strings"
	"unicode"
)

// normalizeText lowercases, collapses whitespace runs to single spaces, then
// replaces everything that is not alphanumeric or whitespace with a space.
// Substitution runs after collapsing, so punctuation leaves a widened gap
// that multi-word keywords do not match across.
func normalizeText(text string) string {
	collapsed := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	var b strings.Builder
	b.Grow(len(collapsed))
	for _, r := range collapsed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// keywordScore computes the normalized relevance of text for one keyword set.
//
// Each keyword that appears contributes 1 plus 0.1 per substring occurrence,
// so a single occurrence counts 1.1, not 1.0. The first occurrence counts
// twice; downstream thresholds are tuned to this.
func keywordScore(text string, keywords []string, weight float64) float64 {
	if len(keywords) == 0 {
		return 0
	}
	normalized := normalizeText(text)

	var hits float64
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		if !strings.Contains(normalized, kw) {
			continue
		}
		hits += 1 + 0.1*float64(strings.Count(normalized, kw))
	}

	score := hits / float64(len(keywords)) * weight
	return min(score, 1.0)
}

// domainAffinity measures how strongly text relates to the operator the
// model specializes in. Unlike keywordScore it counts distinct keywords
// only, and saturates once half the affinity set is present.
func domainAffinity(text string, affinityKeywords []string) float64 {
	if len(affinityKeywords) == 0 {
		return 0
	}
	normalized := normalizeText(text)

	distinct := 0
	for _, keyword := range affinityKeywords {
		if strings.Contains(normalized, strings.ToLower(keyword)) {
			distinct++
		}
	}
	return min(float64(distinct)/float64(len(affinityKeywords))*2, 1.0)
}
