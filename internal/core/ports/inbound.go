package ports

import (
	"context"
	"io"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

// DocumentProcessor is the inbound contract for the OCR/merge/classify pipeline.
type DocumentProcessor interface {
	Process(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessedDocument, error)
}

// DocumentIngestor is the inbound contract for file upload handling.
type DocumentIngestor interface {
	Upload(ctx context.Context, originalName string, body io.Reader) (domain.InputFile, error)
}

// ChatResponder answers questions about already processed documents.
type ChatResponder interface {
	Respond(message string, processed *domain.ProcessedDocument) string
}
