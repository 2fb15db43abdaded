package bootstrap

import (
	"fmt"

	"github.com/metrorail-labs/docscan/internal/config"
	"github.com/metrorail-labs/docscan/internal/core/classify"
	"github.com/metrorail-labs/docscan/internal/core/ports"
	"github.com/metrorail-labs/docscan/internal/core/usecase"
	"github.com/metrorail-labs/docscan/internal/infrastructure/extractor/ocr"
	"github.com/metrorail-labs/docscan/internal/infrastructure/resilience"
	"github.com/metrorail-labs/docscan/internal/infrastructure/storage/localfs"
	openaisum "github.com/metrorail-labs/docscan/internal/infrastructure/summarizer/openai"
	"github.com/metrorail-labs/docscan/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.Metrics

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	ChatUC    ports.ChatResponder
}

func New(cfg config.Config) (*App, error) {
	model := classify.DefaultModel()
	if cfg.CategoryModelPath != "" {
		loaded, err := classify.LoadModelFile(cfg.CategoryModelPath)
		if err != nil {
			return nil, fmt.Errorf("load category model: %w", err)
		}
		model = loaded
	}
	classifier := classify.New(model)

	storage, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	extractor := ocr.New(cfg.OCRLanguages)

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	summarizer := openaisum.New(openaisum.Config{
		BaseURL:         cfg.SummaryBaseURL,
		APIKey:          cfg.SummaryAPIKey,
		Model:           cfg.SummaryModel,
		MaxChunkTokens:  cfg.MaxChunkTokens,
		RequestInterval: cfg.SummaryRequestInterval,
	}, executor)

	m := metrics.New("docscan-api")

	ingestUC := usecase.NewIngestDocumentUseCase(storage)
	processUC := usecase.NewProcessDocumentUseCase(
		extractor,
		summarizer,
		classifier,
		storage,
		m,
		cfg.ParallelExtract,
		cfg.ArtifactDir,
	)
	chatUC := usecase.NewChatUseCase()

	return &App{
		Config:  cfg,
		Metrics: m,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		ChatUC:    chatUC,
	}, nil
}
