package semantic

import (
	"encoding/json"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
)

// hitFromPayload decodes a raw Qdrant payload into the typed hit for the
// collection it came from.
func hitFromPayload(collection string, id int, score float32, payload map[string]*pb.Value) (domain.Hit, error) {
	raw, err := json.Marshal(payloadToAny(payload))
	if err != nil {
		return domain.Hit{}, err
	}

	switch collection {
	case domain.CollectionBooths:
		var booth domain.BoothPayload
		if err := json.Unmarshal(raw, &booth); err != nil {
			return domain.Hit{}, err
		}
		return domain.Hit{Kind: domain.KindBooth, ID: id, Score: score, Booth: &booth}, nil
	case domain.CollectionItems:
		var item domain.ItemPayload
		if err := json.Unmarshal(raw, &item); err != nil {
			return domain.Hit{}, err
		}
		return domain.Hit{Kind: domain.KindItem, ID: id, Score: score, Item: &item}, nil
	default:
		return domain.Hit{}, fmt.Errorf("unknown collection %q", collection)
	}
}

// payloadToAny converts a Qdrant payload map into plain Go values.
func payloadToAny(payload map[string]*pb.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = valueToAny(v)
	}
	return out
}

func valueToAny(v *pb.Value) any {
	switch kind := v.GetKind().(type) {
	case *pb.Value_StringValue:
		return kind.StringValue
	case *pb.Value_IntegerValue:
		return kind.IntegerValue
	case *pb.Value_DoubleValue:
		return kind.DoubleValue
	case *pb.Value_BoolValue:
		return kind.BoolValue
	case *pb.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]any, len(values))
		for i, item := range values {
			out[i] = valueToAny(item)
		}
		return out
	case *pb.Value_StructValue:
		return payloadToAny(kind.StructValue.GetFields())
	default:
		return nil
	}
}
