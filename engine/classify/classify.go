// Package classify turns a raw user query into a dispatchable label and
// extracts the structured parameters the retrieval strategies need.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
)

// Generator produces a single text completion for a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier runs the intent classification and query rewriting calls.
type Classifier struct {
	gen    Generator
	logger *slog.Logger
}

// New creates a Classifier.
func New(gen Generator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{gen: gen, logger: logger}
}

// Classify sends the query through the classification prompt and returns
// the raw label text. The label is untrusted model output; resolution by
// substring containment happens at dispatch. Errors propagate so the
// pipeline's top-level boundary can convert them; there is no retry here.
func (c *Classifier) Classify(ctx context.Context, query string) (string, error) {
	label, err := c.gen.Generate(ctx, renderClassifyPrompt(query))
	if err != nil {
		return "", fmt.Errorf("classify query: %w", err)
	}
	c.logger.Debug("query classified", "label", label)
	return label, nil
}

// Rewrite turns the original query into a standalone search string for
// vector retrieval. Called lazily, only when the label carried no payload.
func (c *Classifier) Rewrite(ctx context.Context, query string) (string, error) {
	rewritten, err := c.gen.Generate(ctx, renderRewritePrompt(query))
	if err != nil {
		return "", fmt.Errorf("rewrite query: %w", err)
	}
	return strings.TrimSpace(rewritten), nil
}

// payloadPatterns matches TOKEN<payload> for the categories that embed one.
var payloadPatterns = map[string]*regexp.Regexp{
	domain.LabelBoothNameSearch:   regexp.MustCompile(domain.LabelBoothNameSearch + `<(.+?)>`),
	domain.LabelBoothHandleSearch: regexp.MustCompile(domain.LabelBoothHandleSearch + `<(.+?)>`),
	domain.LabelVectorSearch:      regexp.MustCompile(domain.LabelVectorSearch + `<(.+?)>`),
}

// Payload extracts the literal between angle brackets after the given token.
// A malformed or empty tag resolves to ""; downstream handlers treat that as
// "no match" rather than an error.
func Payload(label, token string) string {
	re, ok := payloadPatterns[token]
	if !ok {
		return ""
	}
	m := re.FindStringSubmatch(label)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
