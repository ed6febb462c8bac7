// Package events publishes completed chat turns to NATS for downstream
// consumers. Publishing is best effort and never blocks a response.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
	"github.com/bunfree-ai/bunfree-engine/pkg/natsutil"
	"github.com/bunfree-ai/bunfree-engine/pkg/resilience"
)

// SubjectTurns is the subject completed turns are published on.
const SubjectTurns = "bunfree.chat.turns"

// Turn is one completed question/answer exchange.
type Turn struct {
	Query  string    `json:"query"`
	Intent string    `json:"intent"`
	Answer string    `json:"answer"`
	Booths int       `json:"booths"`
	Items  int       `json:"items"`
	At     time.Time `json:"at"`
}

// Publisher emits Turn events. A nil Publisher or nil connection is a no-op,
// so the engine runs unchanged without a broker.
type Publisher struct {
	nc      *nats.Conn
	limiter *resilience.Limiter
	logger  *slog.Logger
}

func New(nc *nats.Conn, logger *slog.Logger) *Publisher {
	if nc == nil {
		return nil
	}
	return &Publisher{
		nc: nc,
		// Shed events rather than queue them when a consumer backs up.
		limiter: resilience.NewLimiter(resilience.LimiterOpts{Rate: 50, Burst: 100}),
		logger:  logger,
	}
}

// Publish records a completed turn. Failures are logged, never returned.
func (p *Publisher) Publish(ctx context.Context, query, intent string, resp domain.Response) {
	if p == nil {
		return
	}
	if !p.limiter.Allow() {
		p.logger.Warn("turn event dropped", "reason", "rate limited")
		return
	}
	turn := Turn{
		Query:  query,
		Intent: intent,
		Answer: resp.Message,
		Booths: len(resp.BoothResults),
		Items:  len(resp.ItemResults),
		At:     time.Now().UTC(),
	}
	if err := natsutil.Publish(ctx, p.nc, SubjectTurns, turn); err != nil {
		p.logger.Error("publish turn event", "error", err)
	}
}
