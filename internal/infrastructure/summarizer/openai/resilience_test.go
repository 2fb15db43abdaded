package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"

	"github.com/metrorail-labs/docscan/internal/core/domain"
)

func TestClassifyAPIError(t *testing.T) {
	cases := []struct {
		name          string
		err           error
		retryable     bool
		recordFailure bool
	}{
		{"nil", nil, false, false},
		{"context canceled", context.Canceled, false, false},
		{"deadline exceeded", fmt.Errorf("call: %w", context.DeadlineExceeded), false, false},
		{"circuit open", gobreaker.ErrOpenState, true, true},
		{"rate limited", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, true, true},
		{"server error", &openai.APIError{HTTPStatusCode: http.StatusBadGateway}, true, true},
		{"bad request", &openai.APIError{HTTPStatusCode: http.StatusBadRequest}, false, false},
		{"unauthorized", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}, false, false},
		{"unknown error", errors.New("boom"), false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			class := classifyAPIError(tc.err)
			if class.Retryable != tc.retryable || class.RecordFailure != tc.recordFailure {
				t.Fatalf("classifyAPIError(%v) = %+v, want retryable=%v record=%v",
					tc.err, class, tc.retryable, tc.recordFailure)
			}
		})
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	retryable := &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}
	wrapped := wrapTemporaryIfNeeded("summarize", retryable)
	if !domain.IsKind(wrapped, domain.ErrTemporary) {
		t.Fatalf("retryable error not marked temporary: %v", wrapped)
	}

	permanent := &openai.APIError{HTTPStatusCode: http.StatusBadRequest}
	if got := wrapTemporaryIfNeeded("summarize", permanent); domain.IsKind(got, domain.ErrTemporary) {
		t.Fatalf("permanent error marked temporary: %v", got)
	}

	// Already-wrapped errors are not double wrapped.
	already := domain.WrapError(domain.ErrTemporary, "summarize", errors.New("x"))
	if got := wrapTemporaryIfNeeded("summarize", already); got != already {
		t.Fatalf("temporary error re-wrapped: %v", got)
	}

	if got := wrapTemporaryIfNeeded("summarize", nil); got != nil {
		t.Fatalf("nil error wrapped: %v", got)
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		if !isRetryableHTTPStatus(code) {
			t.Fatalf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404, 422} {
		if isRetryableHTTPStatus(code) {
			t.Fatalf("status %d should not be retryable", code)
		}
	}
}
