package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

func TestWritePageArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	pages := []domain.PageRecord{
		{LocalPage: 1, Text: "first page text", Language: "en", Method: "direct"},
		{LocalPage: 2, Text: "second page text", Language: "ml", Method: "ocr"},
	}

	if err := writePageArtifacts(dir, pages); err != nil {
		t.Fatalf("writePageArtifacts() error = %v", err)
	}

	text, err := os.ReadFile(filepath.Join(dir, "page_1.txt"))
	if err != nil {
		t.Fatalf("read page text: %v", err)
	}
	if string(text) != "[p1]\nfirst page text" {
		t.Fatalf("page text = %q", text)
	}

	metaRaw, err := os.ReadFile(filepath.Join(dir, "page_2_meta.json"))
	if err != nil {
		t.Fatalf("read page meta: %v", err)
	}
	var meta pageMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		t.Fatalf("decode page meta: %v", err)
	}
	want := pageMeta{PageNum: 2, Language: "ml", Method: "ocr", CharCount: len("second page text")}
	if meta != want {
		t.Fatalf("meta = %+v, want %+v", meta, want)
	}
}

func TestCombineMarkedText(t *testing.T) {
	pages := []domain.PageRecord{
		{LocalPage: 1, Text: "alpha"},
		{LocalPage: 2, Text: "beta"},
	}
	got := combineMarkedText(pages)
	want := "[p1]\nalpha\n\n[p2]\nbeta"
	if got != want {
		t.Fatalf("combineMarkedText() = %q, want %q", got, want)
	}
	if combineMarkedText(nil) != "" {
		t.Fatalf("empty pages must combine to empty text")
	}
}

func TestExtractRejectsUnsupportedExtension(t *testing.T) {
	e := New("")

	_, _, err := e.Extract(context.Background(), "document.docx", "", "")
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("Extract() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractHonorsContextCancellation(t *testing.T) {
	e := New("")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := e.Extract(ctx, "document.pdf", "", "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Extract() error = %v, want context.Canceled", err)
	}
}
