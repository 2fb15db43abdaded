package ocr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

type pageMeta struct {
	PageNum   int    `json:"page_num"`
	Language  string `json:"language"`
	Method    string `json:"method"`
	CharCount int    `json:"char_count"`
}

// writePageArtifacts saves the marked text and a metadata file per page so
// operators can inspect extraction quality after the fact.
func writePageArtifacts(outputDir string, pages []domain.PageRecord) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, page := range pages {
		textPath := filepath.Join(outputDir, fmt.Sprintf("page_%d.txt", page.LocalPage))
		if err := os.WriteFile(textPath, []byte(markedText(page)), 0o644); err != nil {
			return fmt.Errorf("write page text: %w", err)
		}

		meta, err := json.MarshalIndent(pageMeta{
			PageNum:   page.LocalPage,
			Language:  page.Language,
			Method:    page.Method,
			CharCount: len(page.Text),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal page meta: %w", err)
		}

		metaPath := filepath.Join(outputDir, fmt.Sprintf("page_%d_meta.json", page.LocalPage))
		if err := os.WriteFile(metaPath, meta, 0o644); err != nil {
			return fmt.Errorf("write page meta: %w", err)
		}
	}
	return nil
}
