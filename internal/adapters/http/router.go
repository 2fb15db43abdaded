package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/metrorail-labs/docscan/internal/config"
	"github.com/metrorail-labs/docscan/internal/core/domain"
	"github.com/metrorail-labs/docscan/internal/core/ports"
	"github.com/metrorail-labs/docscan/internal/observability/metrics"
)

// maxMultipartMemory is the in-memory buffer threshold for multipart
// parsing; larger parts spool to disk. Total upload size is limited
// separately by the configured cap.
const maxMultipartMemory = 10 << 20

type Router struct {
	cfg       config.Config
	ingest    ports.DocumentIngestor
	processor ports.DocumentProcessor
	chat      ports.ChatResponder
	metrics   *metrics.Metrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	processor ports.DocumentProcessor,
	chat ports.ChatResponder,
	m *metrics.Metrics,
) *Router {
	return &Router{
		cfg:       cfg,
		ingest:    ingest,
		processor: processor,
		chat:      chat,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", rt.health)
	mux.HandleFunc("/api/upload", rt.upload)
	mux.HandleFunc("/api/process", rt.process)
	mux.HandleFunc("/api/chat", rt.chatHandler)
	mux.HandleFunc("/api/download/", rt.download)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type uploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

func (rt *Router) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// The size cap cuts the read off mid-body instead of spooling an
	// oversized upload and rejecting it afterwards.
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "total upload size exceeds limit")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	ocrLanguage := formValueOr(r, "ocrLanguage", rt.cfg.OCRLanguages)
	classificationMode := formValueOr(r, "classificationMode", rt.cfg.ClassificationMode)

	uploaded := make([]uploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("open uploaded file %q", header.Filename))
			return
		}

		input, err := rt.ingest.Upload(r.Context(), header.Filename, file)
		file.Close()
		if err != nil {
			writeError(w, mapErrorToHTTPStatus(err), err.Error())
			return
		}

		uploaded = append(uploaded, uploadedFile{
			Filename:     input.StorageKey,
			OriginalName: input.OriginalName,
			Path:         input.StorageKey,
			Size:         header.Size,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":             fmt.Sprintf("%d files uploaded successfully", len(uploaded)),
		"files":               uploaded,
		"ocr_language":        ocrLanguage,
		"classification_mode": classificationMode,
	})
}

func (rt *Router) process(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Files              []domain.InputFile `json:"files"`
		OCRLanguage        string             `json:"ocr_language"`
		ClassificationMode string             `json:"classification_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Files) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided for processing")
		return
	}
	if req.OCRLanguage == "" {
		req.OCRLanguage = rt.cfg.OCRLanguages
	}
	if req.ClassificationMode == "" {
		req.ClassificationMode = rt.cfg.ClassificationMode
	}

	start := time.Now()
	result, err := rt.processor.Process(r.Context(), domain.ProcessRequest{
		Files:              req.Files,
		OCRLanguage:        req.OCRLanguage,
		ClassificationMode: req.ClassificationMode,
	})
	if rt.metrics != nil {
		rt.metrics.RecordPipeline(time.Since(start), err)
	}
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Message       string                    `json:"message"`
		ProcessedData *domain.ProcessedDocument `json:"processed_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "no message provided")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response":  rt.chat.Respond(req.Message, req.ProcessedData),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (rt *Router) download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		OCRText string `json:"ocr_text"`
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	dataType := strings.TrimPrefix(r.URL.Path, "/api/download/")
	var content, filename string
	switch dataType {
	case "ocr":
		content, filename = req.OCRText, "ocr_results.txt"
	case "summary":
		content, filename = req.Summary, "ai_summary.txt"
	default:
		writeError(w, http.StatusBadRequest, "invalid data type")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"content":      content,
		"filename":     filename,
		"content_type": "text/plain",
	})
}

func formValueOr(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
