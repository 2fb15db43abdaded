package classify

import (
	"math"
	"sort"
	"strings"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

const (
	// Categories scoring at or below this are dropped (strictly greater wins).
	scoreThreshold = 0.1
	// At most this many categories are reported per document.
	maxResults = 5
	// Affinity above this boosts the kept category scores.
	affinityBoostThreshold = 0.3

	unknownCategory  = "Unknown Document"
	fallbackCategory = "General Railway Document"
)

// Classifier ranks document text against the category model. It is a pure
// function over strings and the immutable model: no call can fail.
type Classifier struct {
	model Model
}

func New(model Model) *Classifier {
	return &Classifier{model: model}
}

// Classify scores combined text+summary against every category and returns
// ranked results, highest confidence first. Ties keep model declaration
// order. Blank input short-circuits to a single Unknown Document result.
func (c *Classifier) Classify(text, summary string) []domain.ClassificationResult {
	combined := text + " " + summary
	if strings.TrimSpace(combined) == "" {
		return []domain.ClassificationResult{{
			Category:        unknownCategory,
			Confidence:      0.1,
			DomainRelevance: 0.0,
		}}
	}

	type scored struct {
		category Category
		score    float64
	}
	kept := make([]scored, 0, len(c.model.Categories))
	for _, category := range c.model.Categories {
		score := keywordScore(combined, category.Keywords, category.Weight)
		if score > scoreThreshold {
			kept = append(kept, scored{category: category, score: score})
		}
	}

	affinity := domainAffinity(combined, c.model.AffinityKeywords)

	if len(kept) == 0 {
		confidence := 0.2
		if affinity > 0.2 {
			confidence = 0.3
		}
		return []domain.ClassificationResult{{
			Category:        fallbackCategory,
			Confidence:      confidence,
			DomainRelevance: round2(affinity),
		}}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})
	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}

	results := make([]domain.ClassificationResult, 0, len(kept))
	for _, entry := range kept {
		score := entry.score
		if affinity > affinityBoostThreshold {
			score = min(score*(1+affinity*0.5), 1.0)
		}
		results = append(results, domain.ClassificationResult{
			Category:        DisplayName(entry.category.ID),
			Confidence:      round2(score),
			DomainRelevance: round2(affinity),
		})
	}
	return results
}

// Insights derives document-level signals from a ranked result sequence.
func Insights(results []domain.ClassificationResult) *domain.Insights {
	if len(results) == 0 {
		return nil
	}
	top := results[0]

	highConfidence := 0
	for _, r := range results {
		if r.Confidence >= 0.7 {
			highConfidence++
		}
	}

	return &domain.Insights{
		PrimaryCategory:     top.Category,
		PrimaryConfidence:   top.Confidence,
		DomainRelevance:     top.DomainRelevance,
		HighConfidenceCount: highConfidence,
		IsDomainDocument:    top.DomainRelevance > 0.3,
		ConfidenceLevel:     ConfidenceLevel(top.Confidence),
		CategoryCount:       len(results),
	}
}

// ConfidenceLevel maps a confidence score to its human-readable label.
// Thresholds are inclusive lower bounds, evaluated highest-first.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "Very High"
	case confidence >= 0.7:
		return "High"
	case confidence >= 0.5:
		return "Medium"
	case confidence >= 0.3:
		return "Low"
	default:
		return "Very Low"
	}
}

// acronymOverrides fixes title-cased words that are really acronyms or unit
// abbreviations. Applied whole-word after title casing.
var acronymOverrides = map[string]string{
	"Sop":  "SOP",
	"Ppe":  "PPE",
	"Emu":  "EMU",
	"Dmu":  "DMU",
	"Kmrl": "KMRL",
	"25Kv": "25kV",
}

// DisplayName renders a category id for display: separators become spaces,
// each word is title-cased, acronyms are restored.
func DisplayName(categoryID string) string {
	words := strings.Split(strings.ReplaceAll(categoryID, "_", " "), " ")
	for i, word := range words {
		words[i] = titleWord(word)
		if override, ok := acronymOverrides[words[i]]; ok {
			words[i] = override
		}
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(strings.ToLower(word))
	for i, r := range runes {
		if 'a' <= r && r <= 'z' {
			runes[i] = r - 'a' + 'A'
			break
		}
	}
	return string(runes)
}

// round2 rounds to 2 decimal places, half to even (0.125 -> 0.12).
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
