package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/metrorail-labs/docscan/internal/core/aggregate"
	"github.com/metrorail-labs/docscan/internal/core/classify"
	"github.com/metrorail-labs/docscan/internal/core/domain"
	"github.com/metrorail-labs/docscan/internal/core/ports"
)

// PipelineObserver receives pipeline-level measurements. Implemented by the
// metrics package; a nil interface disables recording. Callers must pass a
// true nil interface, not a typed-nil implementation.
type PipelineObserver interface {
	ObserveExtraction(sourceFile string, pages int, err error)
	ObserveClassification(topConfidence float64, resultCount int)
}

type ProcessDocumentUseCase struct {
	extractor       ports.TextExtractor
	summarizer      ports.Summarizer
	classifier      *classify.Classifier
	storage         ports.ObjectStorage
	observer        PipelineObserver
	parallelExtract bool
	artifactRoot    string
}

func NewProcessDocumentUseCase(
	extractor ports.TextExtractor,
	summarizer ports.Summarizer,
	classifier *classify.Classifier,
	storage ports.ObjectStorage,
	observer PipelineObserver,
	parallelExtract bool,
	artifactRoot string,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		extractor:       extractor,
		summarizer:      summarizer,
		classifier:      classifier,
		storage:         storage,
		observer:        observer,
		parallelExtract: parallelExtract,
		artifactRoot:    artifactRoot,
	}
}

// Process runs the full pipeline for one request: per-file extraction,
// ordered merge, summarization and classification. Per-file extraction
// failures skip the file; only a request with zero extractable pages fails.
func (uc *ProcessDocumentUseCase) Process(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessedDocument, error) {
	if len(req.Files) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "process documents",
			fmt.Errorf("no files provided"))
	}

	outputDir, err := os.MkdirTemp(uc.artifactRoot, "docscan-*")
	if err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	extractions := uc.extractAll(ctx, req, outputDir)

	doc, err := aggregate.Merge(extractions)
	if err != nil {
		return nil, err
	}

	summary := uc.summarize(ctx, doc)

	var classifications []domain.ClassificationResult
	if req.ClassificationMode == "railway" || req.ClassificationMode == "both" {
		classifications = uc.classifier.Classify(doc.CombinedText, summary.OverallSummary)
		if uc.observer != nil && len(classifications) > 0 {
			uc.observer.ObserveClassification(classifications[0].Confidence, len(classifications))
		}
	}

	uc.removeProcessed(ctx, req.Files)

	return &domain.ProcessedDocument{
		DocumentType:   summary.DocumentType,
		OCRText:        doc.CombinedText,
		Summary:        summary.OverallSummary,
		Classification: classifications,
		Insights:       classify.Insights(classifications),
		KeyInformation: summary.KeyInformation,
		Metadata:       buildMetadata(doc, extractions, req),
		Error:          summary.Err,
	}, nil
}

// extractAll produces one FileExtraction per input file, in submission
// order. With parallel extraction enabled, files are extracted concurrently
// but results land in a slice indexed by submission position, so the merge
// never observes completion order.
func (uc *ProcessDocumentUseCase) extractAll(ctx context.Context, req domain.ProcessRequest, outputDir string) []domain.FileExtraction {
	results := make([]domain.FileExtraction, len(req.Files))

	if !uc.parallelExtract {
		for i, file := range req.Files {
			results[i] = uc.extractOne(ctx, file, outputDir, req.OCRLanguage)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, file := range req.Files {
		wg.Add(1)
		go func(i int, file domain.InputFile) {
			defer wg.Done()
			results[i] = uc.extractOne(ctx, file, outputDir, req.OCRLanguage)
		}(i, file)
	}
	wg.Wait()
	return results
}

func (uc *ProcessDocumentUseCase) extractOne(ctx context.Context, file domain.InputFile, outputDir, language string) domain.FileExtraction {
	fileDir := filepath.Join(outputDir, sanitizeDirName(file.StorageKey))
	pages, text, err := uc.extractor.Extract(ctx, uc.storage.Path(file.StorageKey), fileDir, language)
	if uc.observer != nil {
		uc.observer.ObserveExtraction(file.OriginalName, len(pages), err)
	}
	if err != nil {
		slog.Warn("file extraction failed, skipping",
			"file", file.OriginalName,
			"storage_key", file.StorageKey,
			"error", err,
		)
		return domain.FileExtraction{SourceFile: file.OriginalName, Err: err}
	}
	return domain.FileExtraction{
		SourceFile: file.OriginalName,
		Pages:      pages,
		Text:       text,
	}
}

// summarize tolerates summarizer failure: the pipeline continues with an
// empty summary carrying the error message.
func (uc *ProcessDocumentUseCase) summarize(ctx context.Context, doc *domain.AggregateDocument) domain.Summary {
	summary, err := uc.summarizer.Summarize(ctx, doc)
	if err != nil {
		slog.Warn("summarization failed, continuing without summary", "error", err)
		return domain.Summary{Err: fmt.Sprintf("failed to generate summary: %v", err)}
	}
	return summary
}

func (uc *ProcessDocumentUseCase) removeProcessed(ctx context.Context, files []domain.InputFile) {
	for _, file := range files {
		if err := uc.storage.Remove(ctx, file.StorageKey); err != nil {
			slog.Warn("remove processed upload", "storage_key", file.StorageKey, "error", err)
		}
	}
}

func buildMetadata(doc *domain.AggregateDocument, extractions []domain.FileExtraction, req domain.ProcessRequest) domain.ProcessMetadata {
	skipped := 0
	for _, e := range extractions {
		if e.Err != nil {
			skipped++
		}
	}

	languages := make([]string, 0, len(doc.Languages()))
	for language := range doc.Languages() {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	return domain.ProcessMetadata{
		TotalPages:         len(doc.Pages),
		TotalCharacters:    len(doc.CombinedText),
		LanguagesDetected:  languages,
		FilesProcessed:     len(req.Files) - skipped,
		FilesSkipped:       skipped,
		OCRLanguage:        req.OCRLanguage,
		ClassificationMode: req.ClassificationMode,
	}
}

func sanitizeDirName(key string) string {
	base := filepath.Base(key)
	if base == "." || base == string(filepath.Separator) {
		return "file"
	}
	return base
}
