// Package semantic owns all Qdrant operations for the booth and item
// collections: k-NN similarity search and exact-match scroll filters.
package semantic

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
)

// Store is the sole owner of the Qdrant connection.
type Store struct {
	conn   *grpc.ClientConn
	points pb.PointsClient
}

// New creates a Store connected to Qdrant at the given gRPC address.
// apiKey, when non-empty, is attached to every call as the api-key header.
func New(addr, apiKey string) (*Store, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if apiKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(apiKey)))
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("semantic: dial qdrant %s: %w", addr, err)
	}
	return &Store{
		conn:   conn,
		points: pb.NewPointsClient(conn),
	}, nil
}

// Close closes the underlying gRPC connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Search performs k-NN similarity search over one collection and decodes
// the scored points into typed hits.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.Hit, error) {
	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: collection,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload:    withPayload(),
	})
	if err != nil {
		return nil, fmt.Errorf("semantic: search %s: %w", collection, err)
	}

	hits := make([]domain.Hit, 0, len(resp.GetResult()))
	for _, p := range resp.GetResult() {
		h, err := hitFromPayload(collection, pointIDNum(p.GetId()), p.GetScore(), p.GetPayload())
		if err != nil {
			return nil, fmt.Errorf("semantic: decode %s hit: %w", collection, err)
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// FilterExact scrolls one collection with an exact-match filter on a single
// payload field. Scroll carries no similarity score; callers pin their own.
func (s *Store) FilterExact(ctx context.Context, collection, field, value string, limit int) ([]domain.Hit, error) {
	n := uint32(limit)
	resp, err := s.points.Scroll(ctx, &pb.ScrollPoints{
		CollectionName: collection,
		Limit:          &n,
		WithPayload:    withPayload(),
		Filter: &pb.Filter{
			Must: []*pb.Condition{fieldMatch(field, value)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("semantic: filter %s by %s: %w", collection, field, err)
	}

	hits := make([]domain.Hit, 0, len(resp.GetResult()))
	for _, p := range resp.GetResult() {
		h, err := hitFromPayload(collection, pointIDNum(p.GetId()), 0, p.GetPayload())
		if err != nil {
			return nil, fmt.Errorf("semantic: decode %s hit: %w", collection, err)
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func withPayload() *pb.WithPayloadSelector {
	return &pb.WithPayloadSelector{
		SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
	}
}

func fieldMatch(key, value string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{
				Key: key,
				Match: &pb.Match{
					MatchValue: &pb.Match_Keyword{Keyword: value},
				},
			},
		},
	}
}

func pointIDNum(id *pb.PointId) int {
	return int(id.GetNum())
}

func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context, method string, req, reply any,
		cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption,
	) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
