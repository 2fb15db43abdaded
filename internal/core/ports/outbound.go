package ports

import (
	"context"
	"io"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

// TextExtractor extracts per-page text from a stored document. Pages come
// back in local page order with LocalPage set; GlobalPage is left to the
// aggregator. outputDir receives per-page artifact files.
type TextExtractor interface {
	Extract(ctx context.Context, filePath, outputDir, languageHint string) ([]domain.PageRecord, string, error)
}

// Summarizer produces a document-level summary over the merged document.
type Summarizer interface {
	Summarize(ctx context.Context, doc *domain.AggregateDocument) (domain.Summary, error)
}

// ObjectStorage stores uploaded source documents until they are processed.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Path(key string) string
	Remove(ctx context.Context, key string) error
}
