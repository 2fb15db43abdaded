// Package chunking splits large document text into summarizer-sized chunks.
package chunking

import "strings"

// Rough token estimate used across the summarizer: ~4 characters per token.
const charsPerToken = 4

// EstimateTokens approximates the token count of text.
func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}

// Splitter breaks text on paragraph boundaries so each chunk stays under
// MaxTokens. A single paragraph larger than MaxTokens becomes its own chunk
// rather than being cut mid-sentence.
type Splitter struct {
	MaxTokens int
}

func NewSplitter(maxTokens int) *Splitter {
	if maxTokens <= 0 {
		maxTokens = 5000
	}
	return &Splitter{MaxTokens: maxTokens}
}

func (s *Splitter) Split(text string) []string {
	paragraphs := strings.Split(text, "\n\n")

	var out []string
	var current strings.Builder
	currentTokens := 0

	for _, para := range paragraphs {
		paraTokens := EstimateTokens(para)

		if currentTokens+paraTokens > s.MaxTokens && current.Len() > 0 {
			if chunk := strings.TrimSpace(current.String()); chunk != "" {
				out = append(out, chunk)
			}
			current.Reset()
			currentTokens = 0
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
		currentTokens += paraTokens
	}

	if chunk := strings.TrimSpace(current.String()); chunk != "" {
		out = append(out, chunk)
	}
	return out
}
