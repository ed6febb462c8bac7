// Package respond turns retrieval results into a persona-styled answer.
// Each strategy has its own prompt and its own canned empty-result message;
// generation failures propagate to the pipeline's error boundary.
package respond

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
	"github.com/bunfree-ai/bunfree-engine/engine/metrics"
)

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Composer renders answers from retrieval output.
type Composer struct {
	gen    Generator
	logger *slog.Logger
}

func New(gen Generator, logger *slog.Logger) *Composer {
	return &Composer{gen: gen, logger: logger}
}

// Normalize merges booth and item hits into one presentation list, booths
// first, and fills in any missing map-zone assignment from the area name.
func Normalize(booths, items []domain.Hit) []domain.Hit {
	merged := make([]domain.Hit, 0, len(booths)+len(items))
	for _, h := range booths {
		if h.Booth != nil && h.Booth.MapNumber == 0 {
			h.Booth.MapNumber = domain.MapZoneForArea(h.Booth.Area)
		}
		merged = append(merged, h)
	}
	for _, h := range items {
		if h.Item != nil && h.Item.BoothDetails.MapNumber == 0 {
			h.Item.BoothDetails.MapNumber = domain.MapZoneForArea(h.Item.BoothArea)
		}
		merged = append(merged, h)
	}
	return merged
}

// FormatResults serializes merged hits into the indented JSON block that the
// answer prompts embed verbatim.
func FormatResults(hits []domain.Hit) (string, error) {
	b, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format results: %w", err)
	}
	return string(b), nil
}

// VectorAnswer answers a semantic search. An empty result set short-circuits
// to a canned message without calling the model.
func (c *Composer) VectorAnswer(ctx context.Context, query string, booths, items []domain.Hit) (domain.Response, error) {
	merged := Normalize(booths, items)
	if len(merged) == 0 {
		return domain.EmptyResponse(NotFoundGeneric(query)), nil
	}
	message, err := c.answer(ctx, "vector", vectorAnswerPrompt, query, merged)
	if err != nil {
		return domain.Response{}, err
	}
	return response(message, booths, items), nil
}

// NameAnswer answers an exact booth-name lookup.
func (c *Composer) NameAnswer(ctx context.Context, query, name string, booths []domain.Hit) (domain.Response, error) {
	merged := Normalize(booths, nil)
	if len(merged) == 0 {
		return domain.EmptyResponse(NotFoundName(name)), nil
	}
	message, err := c.answer(ctx, "name", nameAnswerPrompt, query, merged)
	if err != nil {
		return domain.Response{}, err
	}
	return response(message, booths, nil), nil
}

// HandleAnswer answers a Twitter-handle lookup.
func (c *Composer) HandleAnswer(ctx context.Context, query, handle string, booths []domain.Hit) (domain.Response, error) {
	merged := Normalize(booths, nil)
	if len(merged) == 0 {
		return domain.EmptyResponse(NotFoundHandle(handle)), nil
	}
	message, err := c.answer(ctx, "handle", handleAnswerPrompt, query, merged)
	if err != nil {
		return domain.Response{}, err
	}
	return response(message, booths, nil), nil
}

// EventInfo answers venue questions from the built-in fact sheet.
func (c *Composer) EventInfo(ctx context.Context, query string) (domain.Response, error) {
	message, err := c.chat(ctx, "event_info", eventInfoPrompt, query)
	if err != nil {
		return domain.Response{}, err
	}
	return domain.EmptyResponse(message), nil
}

// GeneralChat answers greetings and small talk.
func (c *Composer) GeneralChat(ctx context.Context, query string) (domain.Response, error) {
	message, err := c.chat(ctx, "general_chat", generalChatPrompt, query)
	if err != nil {
		return domain.Response{}, err
	}
	return domain.EmptyResponse(message), nil
}

func (c *Composer) answer(ctx context.Context, purpose, template, query string, merged []domain.Hit) (string, error) {
	formatted, err := FormatResults(merged)
	if err != nil {
		return "", err
	}
	return c.generate(ctx, purpose, renderSearchPrompt(template, query, formatted))
}

func (c *Composer) chat(ctx context.Context, purpose, template, query string) (string, error) {
	return c.generate(ctx, purpose, renderChatPrompt(template, query))
}

func (c *Composer) generate(ctx context.Context, purpose, prompt string) (string, error) {
	start := time.Now()
	message, err := c.gen.Generate(ctx, prompt)
	metrics.GenerationDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("compose %s answer: %w", purpose, err)
	}
	return message, nil
}

func response(message string, booths, items []domain.Hit) domain.Response {
	if booths == nil {
		booths = []domain.Hit{}
	}
	if items == nil {
		items = []domain.Hit{}
	}
	return domain.Response{Message: message, BoothResults: booths, ItemResults: items}
}
