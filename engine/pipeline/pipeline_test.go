package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
	"github.com/bunfree-ai/bunfree-engine/engine/respond"
)

// --- mocks ---

type mockClassifier struct {
	label        string
	classifyErr  error
	rewritten    string
	rewriteErr   error
	classifyCall int
	rewriteCall  int
}

func (m *mockClassifier) Classify(_ context.Context, _ string) (string, error) {
	m.classifyCall++
	return m.label, m.classifyErr
}

func (m *mockClassifier) Rewrite(_ context.Context, _ string) (string, error) {
	m.rewriteCall++
	return m.rewritten, m.rewriteErr
}

type mockRetriever struct {
	booths []domain.Hit
	items  []domain.Hit

	vectorQuery string
	nameArg     string
	handleArg   string
	vectorCalls int
	nameCalls   int
	handleCalls int
}

func (m *mockRetriever) VectorSearch(_ context.Context, query string) ([]domain.Hit, []domain.Hit) {
	m.vectorCalls++
	m.vectorQuery = query
	return m.booths, m.items
}

func (m *mockRetriever) BoothsByName(_ context.Context, name string) []domain.Hit {
	m.nameCalls++
	m.nameArg = name
	return m.booths
}

func (m *mockRetriever) BoothsByHandle(_ context.Context, handle string) []domain.Hit {
	m.handleCalls++
	m.handleArg = handle
	return m.booths
}

type mockComposer struct {
	resp domain.Response
	err  error

	vectorCalls  int
	nameCalls    int
	handleCalls  int
	eventCalls   int
	chatCalls    int
	lastStrategy string
}

func (m *mockComposer) VectorAnswer(_ context.Context, _ string, _, _ []domain.Hit) (domain.Response, error) {
	m.vectorCalls++
	m.lastStrategy = "vector"
	return m.resp, m.err
}

func (m *mockComposer) NameAnswer(_ context.Context, _, _ string, _ []domain.Hit) (domain.Response, error) {
	m.nameCalls++
	m.lastStrategy = "name"
	return m.resp, m.err
}

func (m *mockComposer) HandleAnswer(_ context.Context, _, _ string, _ []domain.Hit) (domain.Response, error) {
	m.handleCalls++
	m.lastStrategy = "handle"
	return m.resp, m.err
}

func (m *mockComposer) EventInfo(_ context.Context, _ string) (domain.Response, error) {
	m.eventCalls++
	m.lastStrategy = "event"
	return m.resp, m.err
}

func (m *mockComposer) GeneralChat(_ context.Context, _ string) (domain.Response, error) {
	m.chatCalls++
	m.lastStrategy = "chat"
	return m.resp, m.err
}

func okResponse(message string) domain.Response {
	return domain.EmptyResponse(message)
}

// --- tests ---

func TestRespond_EmptyQuerySkipsClassification(t *testing.T) {
	cls := &mockClassifier{}
	p := New(cls, &mockRetriever{}, &mockComposer{}, nil, slog.Default())

	resp := p.Respond(context.Background(), "   \t ")
	if resp.Message != respond.MsgEmptyQuery {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.BoothResults == nil || resp.ItemResults == nil {
		t.Error("result arrays must be non-nil")
	}
	if cls.classifyCall != 0 {
		t.Errorf("classifier must not run for empty query, got %d calls", cls.classifyCall)
	}
}

func TestRespond_NameBranchExtractsPayload(t *testing.T) {
	cls := &mockClassifier{label: "BOOTH_NAME_SEARCH<文芸同盟>"}
	ret := &mockRetriever{}
	comp := &mockComposer{resp: okResponse("あったよ！")}
	p := New(cls, ret, comp, nil, slog.Default())

	resp := p.Respond(context.Background(), "文芸同盟はどこ？")
	if resp.Message != "あったよ！" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if ret.nameCalls != 1 || ret.nameArg != "文芸同盟" {
		t.Errorf("expected name lookup for 文芸同盟, got %d calls with %q", ret.nameCalls, ret.nameArg)
	}
	if comp.nameCalls != 1 {
		t.Errorf("expected name composer, got strategy %s", comp.lastStrategy)
	}
}

func TestRespond_NameBeatsVectorOnMultiTokenLabel(t *testing.T) {
	cls := &mockClassifier{label: "これは BOOTH_NAME_SEARCH<X> か VECTOR_SEARCH のどちらかです"}
	ret := &mockRetriever{}
	comp := &mockComposer{resp: okResponse("ok")}
	p := New(cls, ret, comp, nil, slog.Default())

	p.Respond(context.Background(), "q")
	if ret.nameCalls != 1 || ret.vectorCalls != 0 {
		t.Errorf("name branch must win: name=%d vector=%d", ret.nameCalls, ret.vectorCalls)
	}
}

func TestRespond_HandleBranch(t *testing.T) {
	cls := &mockClassifier{label: "BOOTH_HANDLE_SEARCH<@bungaku_taro>"}
	ret := &mockRetriever{}
	comp := &mockComposer{resp: okResponse("ok")}
	p := New(cls, ret, comp, nil, slog.Default())

	p.Respond(context.Background(), "q")
	if ret.handleCalls != 1 || ret.handleArg != "@bungaku_taro" {
		t.Errorf("expected handle lookup, got %d calls with %q", ret.handleCalls, ret.handleArg)
	}
	if comp.handleCalls != 1 {
		t.Errorf("expected handle composer, got strategy %s", comp.lastStrategy)
	}
}

func TestRespond_BareVectorLabelRewritesOnce(t *testing.T) {
	cls := &mockClassifier{label: "VECTOR_SEARCH", rewritten: "SF 小説"}
	ret := &mockRetriever{}
	comp := &mockComposer{resp: okResponse("ok")}
	p := New(cls, ret, comp, nil, slog.Default())

	p.Respond(context.Background(), "SF系の面白い小説ある？")
	if cls.rewriteCall != 1 {
		t.Errorf("expected exactly one rewrite, got %d", cls.rewriteCall)
	}
	if ret.vectorQuery != "SF 小説" {
		t.Errorf("retriever should get rewritten query, got %q", ret.vectorQuery)
	}
}

func TestRespond_VectorPayloadSkipsRewrite(t *testing.T) {
	cls := &mockClassifier{label: "VECTOR_SEARCH<短歌 歌集>", rewritten: "unused"}
	ret := &mockRetriever{}
	comp := &mockComposer{resp: okResponse("ok")}
	p := New(cls, ret, comp, nil, slog.Default())

	p.Respond(context.Background(), "q")
	if cls.rewriteCall != 0 {
		t.Errorf("rewrite must be skipped when payload present, got %d calls", cls.rewriteCall)
	}
	if ret.vectorQuery != "短歌 歌集" {
		t.Errorf("retriever should get classifier payload, got %q", ret.vectorQuery)
	}
}

func TestRespond_EventInfoBranch(t *testing.T) {
	cls := &mockClassifier{label: "EVENT_INFO"}
	comp := &mockComposer{resp: okResponse("12:00開場だよ！")}
	p := New(cls, &mockRetriever{}, comp, nil, slog.Default())

	resp := p.Respond(context.Background(), "何時から？")
	if comp.eventCalls != 1 {
		t.Errorf("expected event branch, got strategy %s", comp.lastStrategy)
	}
	if resp.Message != "12:00開場だよ！" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestRespond_GeneralChatBranch(t *testing.T) {
	cls := &mockClassifier{label: "GENERAL_CHAT"}
	comp := &mockComposer{resp: okResponse("やっほー！")}
	p := New(cls, &mockRetriever{}, comp, nil, slog.Default())

	p.Respond(context.Background(), "こんにちは")
	if comp.chatCalls != 1 {
		t.Errorf("expected chat branch, got strategy %s", comp.lastStrategy)
	}
}

func TestRespond_UnknownLabelDefaultsToVector(t *testing.T) {
	cls := &mockClassifier{label: "SOMETHING_ELSE", rewritten: "検索文"}
	ret := &mockRetriever{}
	comp := &mockComposer{resp: okResponse("ok")}
	p := New(cls, ret, comp, nil, slog.Default())

	p.Respond(context.Background(), "q")
	if ret.vectorCalls != 1 {
		t.Errorf("expected default vector search, got %d calls", ret.vectorCalls)
	}
	if cls.rewriteCall != 1 {
		t.Errorf("default branch must rewrite the query, got %d calls", cls.rewriteCall)
	}
}

func TestRespond_ClassifyErrorReturnsFailureMessage(t *testing.T) {
	cls := &mockClassifier{classifyErr: errors.New("provider down")}
	p := New(cls, &mockRetriever{}, &mockComposer{}, nil, slog.Default())

	resp := p.Respond(context.Background(), "q")
	if resp.Message != respond.MsgFailure {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.BoothResults == nil || len(resp.BoothResults) != 0 {
		t.Error("failure response must carry empty non-nil booth results")
	}
	if resp.ItemResults == nil || len(resp.ItemResults) != 0 {
		t.Error("failure response must carry empty non-nil item results")
	}
}

func TestRespond_ComposeErrorReturnsFailureMessage(t *testing.T) {
	cls := &mockClassifier{label: "GENERAL_CHAT"}
	comp := &mockComposer{err: errors.New("model overloaded")}
	p := New(cls, &mockRetriever{}, comp, nil, slog.Default())

	resp := p.Respond(context.Background(), "こんにちは")
	if resp.Message != respond.MsgFailure {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestRespond_RewriteErrorReturnsFailureMessage(t *testing.T) {
	cls := &mockClassifier{label: "VECTOR_SEARCH", rewriteErr: errors.New("provider down")}
	ret := &mockRetriever{}
	p := New(cls, ret, &mockComposer{}, nil, slog.Default())

	resp := p.Respond(context.Background(), "q")
	if resp.Message != respond.MsgFailure {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if ret.vectorCalls != 0 {
		t.Errorf("retrieval must not run after rewrite failure, got %d calls", ret.vectorCalls)
	}
}
