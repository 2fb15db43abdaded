package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

func TestUploadStoresFileUnderGeneratedKey(t *testing.T) {
	storage := newFakeStorage()
	uc := NewIngestDocumentUseCase(storage)

	file, err := uc.Upload(context.Background(), "Safety Manual.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if file.OriginalName != "Safety Manual.pdf" {
		t.Fatalf("original name = %q", file.OriginalName)
	}
	if !strings.HasSuffix(file.StorageKey, "_Safety_Manual.pdf") {
		t.Fatalf("storage key = %q, want sanitized filename suffix", file.StorageKey)
	}
	if _, ok := storage.saved[file.StorageKey]; !ok {
		t.Fatalf("file not saved under %q", file.StorageKey)
	}
}

func TestUploadKeysDoNotCollide(t *testing.T) {
	storage := newFakeStorage()
	uc := NewIngestDocumentUseCase(storage)

	a, err := uc.Upload(context.Background(), "same.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	b, err := uc.Upload(context.Background(), "same.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if a.StorageKey == b.StorageKey {
		t.Fatalf("duplicate keys for identical filenames: %q", a.StorageKey)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	uc := NewIngestDocumentUseCase(newFakeStorage())

	for _, name := range []string{"notes.txt", "macro.docx", "noextension", "archive.zip"} {
		_, err := uc.Upload(context.Background(), name, strings.NewReader("data"))
		if !errors.Is(err, domain.ErrUnsupportedFormat) {
			t.Fatalf("Upload(%q) error = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestUploadExtensionIsCaseInsensitive(t *testing.T) {
	uc := NewIngestDocumentUseCase(newFakeStorage())

	if _, err := uc.Upload(context.Background(), "SCAN.PDF", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my report.pdf", "my_report.pdf"},
		{"../../etc/passwd.pdf", "passwd.pdf"},
		{"സുരക്ഷ.pdf", "______.pdf"},
		{"a/b-c.pdf", "b-c.pdf"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
