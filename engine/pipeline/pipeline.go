// Package pipeline wires classification, retrieval, and answer composition
// into a single query entry point.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bunfree-ai/bunfree-engine/engine/classify"
	"github.com/bunfree-ai/bunfree-engine/engine/domain"
	"github.com/bunfree-ai/bunfree-engine/engine/events"
	"github.com/bunfree-ai/bunfree-engine/engine/metrics"
	"github.com/bunfree-ai/bunfree-engine/engine/respond"
)

// Classifier labels queries and rewrites them for retrieval.
type Classifier interface {
	Classify(ctx context.Context, query string) (string, error)
	Rewrite(ctx context.Context, query string) (string, error)
}

// Retriever runs the retrieval strategies. Retrieval never fails from the
// pipeline's point of view; backends degrade to empty lists.
type Retriever interface {
	VectorSearch(ctx context.Context, query string) (booths, items []domain.Hit)
	BoothsByName(ctx context.Context, name string) []domain.Hit
	BoothsByHandle(ctx context.Context, handle string) []domain.Hit
}

// Composer renders the final answer for each strategy.
type Composer interface {
	VectorAnswer(ctx context.Context, query string, booths, items []domain.Hit) (domain.Response, error)
	NameAnswer(ctx context.Context, query, name string, booths []domain.Hit) (domain.Response, error)
	HandleAnswer(ctx context.Context, query, handle string, booths []domain.Hit) (domain.Response, error)
	EventInfo(ctx context.Context, query string) (domain.Response, error)
	GeneralChat(ctx context.Context, query string) (domain.Response, error)
}

// Pipeline answers one query end to end.
type Pipeline struct {
	classifier Classifier
	retriever  Retriever
	composer   Composer
	publisher  *events.Publisher
	logger     *slog.Logger
	tracer     trace.Tracer
}

// New builds a Pipeline. publisher may be nil.
func New(classifier Classifier, retriever Retriever, composer Composer, publisher *events.Publisher, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		classifier: classifier,
		retriever:  retriever,
		composer:   composer,
		publisher:  publisher,
		logger:     logger,
		tracer:     otel.Tracer("bunfree-engine/pipeline"),
	}
}

// Respond answers the query. It never returns an error: any internal failure
// is converted at this boundary into the fixed apologetic message with empty
// result arrays.
func (p *Pipeline) Respond(ctx context.Context, query string) domain.Response {
	if strings.TrimSpace(query) == "" {
		return domain.EmptyResponse(respond.MsgEmptyQuery)
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.respond")
	defer span.End()

	resp, intent, err := p.respond(ctx, query)
	if err != nil {
		p.logger.Error("query pipeline failed", "intent", intent, "error", err)
		metrics.PipelineFailuresTotal.Inc()
		return domain.EmptyResponse(respond.MsgFailure)
	}
	span.SetAttributes(attribute.String("query.intent", intent))
	metrics.QueriesTotal.WithLabelValues(intent).Inc()
	p.publisher.Publish(ctx, query, intent, resp)
	return resp
}

func (p *Pipeline) respond(ctx context.Context, query string) (domain.Response, string, error) {
	label, err := p.classifier.Classify(ctx, query)
	if err != nil {
		return domain.Response{}, "classify", err
	}
	return p.dispatch(ctx, query, label)
}

// dispatch resolves the label by substring containment in fixed priority
// order: name, handle, vector, event info, chat. Anything else falls through
// to vector search.
func (p *Pipeline) dispatch(ctx context.Context, query, label string) (domain.Response, string, error) {
	switch {
	case strings.Contains(label, domain.LabelBoothNameSearch):
		name := classify.Payload(label, domain.LabelBoothNameSearch)
		booths := p.retriever.BoothsByName(ctx, name)
		resp, err := p.composer.NameAnswer(ctx, query, name, booths)
		return resp, "booth_name", err

	case strings.Contains(label, domain.LabelBoothHandleSearch):
		handle := classify.Payload(label, domain.LabelBoothHandleSearch)
		booths := p.retriever.BoothsByHandle(ctx, handle)
		resp, err := p.composer.HandleAnswer(ctx, query, handle, booths)
		return resp, "booth_handle", err

	case strings.Contains(label, domain.LabelVectorSearch):
		resp, err := p.vector(ctx, query, classify.Payload(label, domain.LabelVectorSearch))
		return resp, "vector", err

	case strings.Contains(label, domain.LabelEventInfo):
		resp, err := p.composer.EventInfo(ctx, query)
		return resp, "event_info", err

	case strings.Contains(label, domain.LabelGeneralChat):
		resp, err := p.composer.GeneralChat(ctx, query)
		return resp, "general_chat", err

	default:
		p.logger.Warn("unrecognized query label, defaulting to vector search", "label", label)
		resp, err := p.vector(ctx, query, "")
		return resp, "vector_default", err
	}
}

// vector runs semantic retrieval. searchQuery is the classifier-supplied
// payload; when absent the original query is rewritten once.
func (p *Pipeline) vector(ctx context.Context, query, searchQuery string) (domain.Response, error) {
	if searchQuery == "" {
		rewritten, err := p.classifier.Rewrite(ctx, query)
		if err != nil {
			return domain.Response{}, err
		}
		searchQuery = rewritten
	}
	booths, items := p.retriever.VectorSearch(ctx, searchQuery)
	return p.composer.VectorAnswer(ctx, query, booths, items)
}
