package respond

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
)

// --- mocks ---

type mockGenerator struct {
	resp       string
	err        error
	lastPrompt string
	calls      int
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.resp, m.err
}

func boothHit(id int, name, area string) domain.Hit {
	return domain.Hit{
		Kind:  domain.KindBooth,
		ID:    id,
		Score: 0.9,
		Booth: &domain.BoothPayload{ID: id, Name: name, Area: area},
	}
}

func itemHit(id int, name, boothArea string) domain.Hit {
	return domain.Hit{
		Kind:  domain.KindItem,
		ID:    id,
		Score: 0.8,
		Item:  &domain.ItemPayload{ID: id, Name: name, BoothArea: boothArea},
	}
}

// --- tests ---

func TestNormalize_BoothsFirstAndMapZones(t *testing.T) {
	booths := []domain.Hit{boothHit(1, "文芸同盟", "あ"), boothHit(2, "第二書房", "A")}
	items := []domain.Hit{itemHit(10, "星の短歌集", "か")}

	merged := Normalize(booths, items)
	if len(merged) != 3 {
		t.Fatalf("expected 3 merged hits, got %d", len(merged))
	}
	if merged[0].Kind != domain.KindBooth || merged[1].Kind != domain.KindBooth || merged[2].Kind != domain.KindItem {
		t.Errorf("expected booths before items, got %v %v %v", merged[0].Kind, merged[1].Kind, merged[2].Kind)
	}
	if merged[0].Booth.MapNumber != 2 {
		t.Errorf("hiragana area should map to zone 2, got %d", merged[0].Booth.MapNumber)
	}
	if merged[1].Booth.MapNumber != 1 {
		t.Errorf("latin area should map to zone 1, got %d", merged[1].Booth.MapNumber)
	}
	if merged[2].Item.BoothDetails.MapNumber != 2 {
		t.Errorf("item booth area should map to zone 2, got %d", merged[2].Item.BoothDetails.MapNumber)
	}
}

func TestNormalize_KeepsExistingMapNumber(t *testing.T) {
	h := boothHit(1, "文芸同盟", "あ")
	h.Booth.MapNumber = 1

	merged := Normalize([]domain.Hit{h}, nil)
	if merged[0].Booth.MapNumber != 1 {
		t.Errorf("existing map number must not be overwritten, got %d", merged[0].Booth.MapNumber)
	}
}

func TestVectorAnswer_GeneratesFromResults(t *testing.T) {
	gen := &mockGenerator{resp: "見つけたよ！マジ最高じゃん！"}
	c := New(gen, slog.Default())

	booths := []domain.Hit{boothHit(1, "文芸同盟", "A")}
	items := []domain.Hit{itemHit(10, "星の短歌集", "B")}

	resp, err := c.VectorAnswer(context.Background(), "短歌ある？", booths, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "見つけたよ！マジ最高じゃん！" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if len(resp.BoothResults) != 1 || len(resp.ItemResults) != 1 {
		t.Errorf("expected per-kind arrays preserved, got %d and %d", len(resp.BoothResults), len(resp.ItemResults))
	}
	if !strings.Contains(gen.lastPrompt, "短歌ある？") {
		t.Error("prompt missing original query")
	}
	if !strings.Contains(gen.lastPrompt, "文芸同盟") || !strings.Contains(gen.lastPrompt, "星の短歌集") {
		t.Error("prompt missing serialized results")
	}
}

func TestVectorAnswer_EmptySkipsGeneration(t *testing.T) {
	gen := &mockGenerator{resp: "should not be used"}
	c := New(gen, slog.Default())

	resp, err := c.VectorAnswer(context.Background(), "量子力学", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != NotFoundGeneric("量子力学") {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.BoothResults == nil || resp.ItemResults == nil {
		t.Error("result arrays must be non-nil")
	}
	if gen.calls != 0 {
		t.Errorf("generator must not be called on empty results, got %d calls", gen.calls)
	}
}

func TestVectorAnswer_GenerationErrorPropagates(t *testing.T) {
	wantErr := errors.New("model overloaded")
	c := New(&mockGenerator{err: wantErr}, slog.Default())

	_, err := c.VectorAnswer(context.Background(), "短歌", []domain.Hit{boothHit(1, "x", "A")}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected propagated generation error, got %v", err)
	}
}

func TestNameAnswer_EmptyUsesNameMessage(t *testing.T) {
	gen := &mockGenerator{}
	c := New(gen, slog.Default())

	resp, err := c.NameAnswer(context.Background(), "文芸同盟はどこ？", "文芸同盟", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != NotFoundName("文芸同盟") {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if gen.calls != 0 {
		t.Error("generator must not be called on empty results")
	}
}

func TestHandleAnswer_EmptyUsesHandleMessage(t *testing.T) {
	c := New(&mockGenerator{}, slog.Default())

	resp, err := c.HandleAnswer(context.Background(), "@xのブースある？", "@x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != NotFoundHandle("@x") {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestNameAnswer_ItemResultsEmptyNonNil(t *testing.T) {
	c := New(&mockGenerator{resp: "あったよ！"}, slog.Default())

	resp, err := c.NameAnswer(context.Background(), "q", "文芸同盟", []domain.Hit{boothHit(1, "文芸同盟", "A")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ItemResults == nil || len(resp.ItemResults) != 0 {
		t.Errorf("expected empty non-nil item results, got %v", resp.ItemResults)
	}
}

func TestEventInfo_NoRetrievalResults(t *testing.T) {
	gen := &mockGenerator{resp: "東京ビッグサイトだよ！"}
	c := New(gen, slog.Default())

	resp, err := c.EventInfo(context.Background(), "会場どこ？")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "東京ビッグサイトだよ！" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if len(resp.BoothResults) != 0 || len(resp.ItemResults) != 0 {
		t.Error("event info must not carry retrieval results")
	}
	if !strings.Contains(gen.lastPrompt, "会場どこ？") {
		t.Error("prompt missing query")
	}
}

func TestGeneralChat(t *testing.T) {
	c := New(&mockGenerator{resp: "やっほー！"}, slog.Default())

	resp, err := c.GeneralChat(context.Background(), "こんにちは")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "やっほー！" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}
