// Package ocr extracts per-page text from PDF and image documents. PDF pages
// are read text-first; image files go through Tesseract.
package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

// Pages whose direct PDF text is shorter than this are considered scanned
// and flagged as sparse.
const minDirectTextChars = 50

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".tiff": {},
	".bmp":  {},
}

type Extractor struct {
	defaultLanguages string
}

func New(defaultLanguages string) *Extractor {
	if defaultLanguages == "" {
		defaultLanguages = "mal+eng"
	}
	return &Extractor{defaultLanguages: defaultLanguages}
}

// Extract returns the document's pages in local order plus the combined
// marked text. Page artifacts (text + metadata) are written to outputDir.
func (e *Extractor) Extract(ctx context.Context, filePath, outputDir, languageHint string) ([]domain.PageRecord, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if languageHint == "" {
		languageHint = e.defaultLanguages
	}

	ext := strings.ToLower(filepath.Ext(filePath))

	var pages []domain.PageRecord
	var err error
	switch {
	case ext == ".pdf":
		pages, err = e.extractPDF(filePath)
	default:
		if _, ok := imageExtensions[ext]; !ok {
			return nil, "", domain.WrapError(domain.ErrUnsupportedFormat, "extract",
				fmt.Errorf("file type %q", ext))
		}
		pages, err = e.extractImage(filePath, languageHint)
	}
	if err != nil {
		return nil, "", err
	}

	if outputDir != "" {
		if err := writePageArtifacts(outputDir, pages); err != nil {
			return nil, "", err
		}
	}

	return pages, combineMarkedText(pages), nil
}

func (e *Extractor) extractPDF(filePath string) ([]domain.PageRecord, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]domain.PageRecord, 0, total)
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", pageNum, err)
		}

		method := "direct"
		if len(strings.TrimSpace(text)) < minDirectTextChars {
			// Scanned page with no embedded text layer. Rasterizing PDF
			// pages for OCR is not supported; the sparse text is kept as-is.
			method = "sparse"
		}

		pages = append(pages, domain.PageRecord{
			LocalPage: pageNum,
			Text:      text,
			Language:  detectLanguage(text),
			Method:    method,
		})
	}
	return pages, nil
}

func (e *Extractor) extractImage(filePath, languageHint string) ([]domain.PageRecord, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(languageHint, "+")...); err != nil {
		return nil, fmt.Errorf("set ocr languages: %w", err)
	}
	if err := client.SetImage(filePath); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("run ocr: %w", err)
	}

	return []domain.PageRecord{{
		LocalPage: 1,
		Text:      text,
		Language:  detectLanguage(text),
		Method:    "ocr",
	}}, nil
}

// combineMarkedText joins all pages into one block, each page prefixed by
// its local page marker.
func combineMarkedText(pages []domain.PageRecord) string {
	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(markedText(page))
	}
	return b.String()
}

func markedText(page domain.PageRecord) string {
	return fmt.Sprintf("[p%d]\n%s", page.LocalPage, page.Text)
}
