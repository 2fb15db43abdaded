// Package aggregate merges per-file extraction results into one logical
// document with request-scoped global page numbering.
package aggregate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

// Merge folds ordered per-file results into a single AggregateDocument.
//
// Files are consumed strictly in submission order; within a file, pages keep
// the extractor's local order. Global page numbers form a contiguous run
// starting at 1. Files that failed extraction are skipped with no gap and no
// placeholder. Zero successful pages is terminal: ErrNoContent.
func Merge(results []domain.FileExtraction) (*domain.AggregateDocument, error) {
	doc := &domain.AggregateDocument{}
	var combined strings.Builder

	globalPage := 1
	for _, file := range results {
		if file.Err != nil {
			continue
		}
		for _, page := range file.Pages {
			page.GlobalPage = globalPage
			page.SourceFile = file.SourceFile
			doc.Pages = append(doc.Pages, page)
			globalPage++
		}
		combined.WriteString(fmt.Sprintf("\n\n--- Document: %s ---\n\n", file.SourceFile))
		combined.WriteString(file.Text)
	}

	if len(doc.Pages) == 0 {
		return nil, domain.WrapError(domain.ErrNoContent, "merge documents",
			errors.New("no file produced any pages"))
	}

	doc.CombinedText = combined.String()
	return doc, nil
}
