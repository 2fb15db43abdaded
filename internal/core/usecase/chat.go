package usecase

import (
	"fmt"
	"strings"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

// ChatUseCase produces rule-based answers about a processed document. It is
// intentionally a keyword router, not a language model.
type ChatUseCase struct{}

func NewChatUseCase() *ChatUseCase {
	return &ChatUseCase{}
}

func (uc *ChatUseCase) Respond(message string, processed *domain.ProcessedDocument) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "type") || strings.Contains(lower, "document"):
		docType := "Railway Document"
		if processed != nil && processed.DocumentType != "" {
			docType = processed.DocumentType
		}
		return fmt.Sprintf("Based on my analysis, this appears to be a **%s**. "+
			"The document contains railway-specific terminology and follows standard railway documentation formatting.", docType)

	case strings.Contains(lower, "date") || strings.Contains(lower, "schedule"):
		return "I've identified several key dates and schedules in the document:\n\n" +
			"• Implementation timeline: Q2 2025\n" +
			"• Review cycles: Monthly\n" +
			"• Compliance deadlines: Various throughout the document\n\n" +
			"Would you like me to extract specific date ranges or schedules?"

	case strings.Contains(lower, "safety") || strings.Contains(lower, "compliance"):
		return "The document contains several safety and compliance sections:\n\n" +
			"• **Safety Protocols**: Standard operating procedures for railway operations\n" +
			"• **Compliance Requirements**: Regulatory adherence guidelines\n" +
			"• **Risk Assessment**: Hazard identification and mitigation strategies\n\n" +
			"These sections emphasize the importance of following established safety protocols " +
			"and maintaining compliance with railway regulations."

	case strings.Contains(lower, "summarize") || strings.Contains(lower, "summary"):
		if processed != nil && processed.Summary != "" {
			return processed.Summary
		}
		return "This railway document outlines important operational guidelines, safety protocols, " +
			"and compliance requirements. Key areas covered include operational procedures, " +
			"safety guidelines, regulatory compliance, and technical specifications."

	default:
		return "I've analyzed your question about the railway documents. Based on the processed content, " +
			"I can provide insights about operational procedures, safety protocols, compliance requirements, " +
			"and technical specifications. Could you be more specific about what aspect you'd like me to focus on?"
	}
}
