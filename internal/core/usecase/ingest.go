package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/metrorail-labs/docscan/internal/core/domain"
	"github.com/metrorail-labs/docscan/internal/core/ports"
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

type IngestDocumentUseCase struct {
	storage ports.ObjectStorage
}

func NewIngestDocumentUseCase(storage ports.ObjectStorage) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{storage: storage}
}

// Upload stores one incoming file under a collision-free key and returns the
// handle a later process request refers to.
func (uc *IngestDocumentUseCase) Upload(ctx context.Context, originalName string, body io.Reader) (domain.InputFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return domain.InputFile{}, domain.WrapError(domain.ErrUnsupportedFormat, "upload",
			fmt.Errorf("extension %q not allowed", ext))
	}

	key := fmt.Sprintf("%d_%s_%s", time.Now().Unix(), uuid.NewString()[:8], sanitizeFilename(originalName))
	if err := uc.storage.Save(ctx, key, body); err != nil {
		return domain.InputFile{}, fmt.Errorf("save upload: %w", err)
	}

	return domain.InputFile{
		StorageKey:   key,
		OriginalName: originalName,
	}, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
