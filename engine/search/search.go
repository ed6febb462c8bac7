// Package search implements the retrieval strategies over the booth and
// item collections.
package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
	"github.com/bunfree-ai/bunfree-engine/engine/metrics"
	"github.com/bunfree-ai/bunfree-engine/pkg/fn"
	"github.com/bunfree-ai/bunfree-engine/pkg/resilience"
)

// DefaultLimit is the per-collection hit cap for every strategy.
const DefaultLimit = 3

// VectorStore is the slice of the vector backend the service needs.
type VectorStore interface {
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.Hit, error)
	FilterExact(ctx context.Context, collection, field, value string, limit int) ([]domain.Hit, error)
}

// Embedder turns a query string into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service runs retrievals. Backend failures are logged and degrade to empty
// result lists; callers never see a retrieval error.
type Service struct {
	store   VectorStore
	embed   Embedder
	breaker *resilience.Breaker
	limit   int
	logger  *slog.Logger
}

// New builds a Service with the default per-collection limit.
func New(store VectorStore, embed Embedder, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		embed:   embed,
		breaker: resilience.NewBreaker(resilience.DefaultBreakerOpts),
		limit:   DefaultLimit,
		logger:  logger,
	}
}

// VectorSearch embeds the query once and looks it up in the booth and item
// collections concurrently.
func (s *Service) VectorSearch(ctx context.Context, query string) (booths, items []domain.Hit) {
	vector, err := s.embed.Embed(ctx, query)
	if err != nil {
		s.logger.Error("embed query", "error", err)
		return nil, nil
	}

	type lookup struct {
		hits []domain.Hit
		err  error
	}
	results := fn.FanOut(
		func() lookup {
			hits, err := s.searchCollection(ctx, domain.CollectionBooths, vector)
			return lookup{hits, err}
		},
		func() lookup {
			hits, err := s.searchCollection(ctx, domain.CollectionItems, vector)
			return lookup{hits, err}
		},
	)

	for i, r := range results {
		if r.err != nil {
			collection := domain.CollectionBooths
			if i == 1 {
				collection = domain.CollectionItems
			}
			s.logger.Error("vector search", "collection", collection, "error", r.err)
		}
	}
	if len(results[0].hits) == 0 && len(results[1].hits) == 0 {
		metrics.EmptyResultsTotal.WithLabelValues("vector").Inc()
	}
	return results[0].hits, results[1].hits
}

// BoothsByName returns booths whose name matches exactly.
func (s *Service) BoothsByName(ctx context.Context, name string) []domain.Hit {
	if name == "" {
		return nil
	}
	hits := s.filterExact(ctx, "name", name, "name")
	return hits
}

// BoothsByHandle returns booths by Twitter handle. Stored handles carry the
// leading @, so a bare handle gets one before matching.
func (s *Service) BoothsByHandle(ctx context.Context, handle string) []domain.Hit {
	if handle == "" || handle == "@" {
		return nil
	}
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return s.filterExact(ctx, "twitter", handle, "handle")
}

func (s *Service) searchCollection(ctx context.Context, collection string, vector []float32) ([]domain.Hit, error) {
	start := time.Now()
	hits, err := s.store.Search(ctx, collection, vector, s.limit)
	metrics.RetrievalDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	return hits, err
}

func (s *Service) filterExact(ctx context.Context, field, value, strategy string) []domain.Hit {
	var hits []domain.Hit
	err := s.breaker.Call(ctx, func(ctx context.Context) error {
		start := time.Now()
		found, err := s.store.FilterExact(ctx, domain.CollectionBooths, field, value, s.limit)
		metrics.RetrievalDuration.WithLabelValues(domain.CollectionBooths).Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		hits = found
		return nil
	})
	if err != nil {
		s.logger.Error("exact filter", "field", field, "value", value, "error", err)
		return nil
	}
	// Exact matches carry no similarity score from the backend.
	for i := range hits {
		hits[i].Score = 1.0
	}
	if len(hits) == 0 {
		metrics.EmptyResultsTotal.WithLabelValues(strategy).Inc()
	}
	return hits
}
