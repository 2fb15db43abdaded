// Package openai summarizes merged documents through an OpenAI-compatible
// chat-completions endpoint (GitHub Models by default).
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/metrorail-labs/docscan/internal/core/domain"
	"github.com/metrorail-labs/docscan/internal/infrastructure/chunking"
	"github.com/metrorail-labs/docscan/internal/infrastructure/resilience"
)

const (
	summaryMaxTokens = 2000
	sectionMaxTokens = 1000
	temperature      = 0.3
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// MaxChunkTokens is the estimated-token threshold above which the
	// document is summarized in sections.
	MaxChunkTokens int
	// RequestInterval paces section requests to stay under provider rate limits.
	RequestInterval time.Duration
}

type Summarizer struct {
	client   *openai.Client
	model    string
	splitter *chunking.Splitter
	limiter  *rate.Limiter
	executor *resilience.Executor
	hasKey   bool
}

func New(cfg Config, executor *resilience.Executor) *Summarizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}

	return &Summarizer{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		splitter: chunking.NewSplitter(cfg.MaxChunkTokens),
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		executor: executor,
		hasKey:   cfg.APIKey != "",
	}
}

// Summarize produces the document-level summary, document type and key
// information for a merged document.
func (s *Summarizer) Summarize(ctx context.Context, doc *domain.AggregateDocument) (domain.Summary, error) {
	if !s.hasKey {
		return domain.Summary{}, fmt.Errorf("summarizer api key is not configured")
	}

	var summaryText string
	var err error
	if chunking.EstimateTokens(doc.CombinedText) > s.splitter.MaxTokens {
		summaryText, err = s.summarizeChunked(ctx, doc.CombinedText)
	} else {
		summaryText, err = s.chat(ctx,
			"You are a helpful assistant specialized in document analysis and summarization. Provide structured summaries with key information extraction.",
			fmt.Sprintf("Document Content:\n%s\n\nPlease provide a comprehensive summary of this document.", doc.CombinedText),
			summaryMaxTokens,
		)
	}
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summary{
		DocumentType:   detectDocumentType(doc.CombinedText),
		OverallSummary: summaryText,
		KeyInformation: extractKeyInformation(summaryText),
	}, nil
}

// summarizeChunked splits an oversized document into sections, summarizes
// each with pacing between requests, then combines the section summaries.
// A failed section is recorded inline and does not abort the rest.
func (s *Summarizer) summarizeChunked(ctx context.Context, text string) (string, error) {
	chunks := s.splitter.Split(text)
	slog.Info("summarizing document in sections", "sections", len(chunks))

	sectionSummaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if i > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("wait for rate limit: %w", err)
			}
		}

		sectionSummary, err := s.chat(ctx,
			"You are a helpful assistant. Summarize this section of a document concisely while preserving key information.",
			fmt.Sprintf("Document Section %d:\n%s\n\nPlease summarize this section of the document.", i+1, chunk),
			sectionMaxTokens,
		)
		if err != nil {
			slog.Warn("section summarization failed", "section", i+1, "error", err)
			sectionSummaries = append(sectionSummaries,
				fmt.Sprintf("Section %d: [Error processing this section: %v]", i+1, err))
			continue
		}
		sectionSummaries = append(sectionSummaries, fmt.Sprintf("Section %d Summary:\n%s", i+1, sectionSummary))
	}

	combined := strings.Join(sectionSummaries, "\n\n")

	final, err := s.chat(ctx,
		"You are a helpful assistant specialized in document analysis. Combine these section summaries into a comprehensive, well-structured final summary.",
		fmt.Sprintf("Individual Section Summaries:\n%s\n\nPlease provide a comprehensive final summary that combines all these section summaries into a coherent document overview.", combined),
		summaryMaxTokens,
	)
	if err != nil {
		slog.Warn("final summary combination failed, returning section summaries", "error", err)
		return fmt.Sprintf("Document Summary (Chunked Processing):\n\n%s", combined), nil
	}
	return final, nil
}

func (s *Summarizer) chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	var content string
	call := func(callCtx context.Context) error {
		resp, err := s.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("chat completion: no choices returned")
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	if s.executor == nil {
		if err := call(ctx); err != nil {
			return "", err
		}
		return content, nil
	}
	if err := s.executor.Execute(ctx, "summarizer.chat", call, classifyAPIError); err != nil {
		return "", wrapTemporaryIfNeeded("summarize", err)
	}
	return content, nil
}
