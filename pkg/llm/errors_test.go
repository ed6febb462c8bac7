package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
)

func TestParseAPIError_RequestError(t *testing.T) {
	src := &openai.RequestError{HTTPStatusCode: 429, Body: []byte("rate limit"), Err: errors.New("429")}
	err := parseAPIError("generate", src)

	if !errors.Is(err, domain.ErrProvider) {
		t.Fatal("expected ErrProvider wrap")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestParseAPIError_APIError(t *testing.T) {
	src := &openai.APIError{HTTPStatusCode: 400, Message: "bad prompt"}
	err := parseAPIError("embed", fmt.Errorf("call: %w", src))

	if !errors.Is(err, domain.ErrProvider) {
		t.Fatal("expected ErrProvider wrap")
	}
	if !strings.Contains(err.Error(), "bad prompt") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestParseAPIError_Unknown(t *testing.T) {
	src := errors.New("connection reset")
	err := parseAPIError("generate", src)

	if !errors.Is(err, domain.ErrProvider) || !errors.Is(err, src) {
		t.Fatalf("expected both wraps, got %v", err)
	}
}
