package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/matcher"
	"github.com/sweeplabs/modsweep/internal/rest/handler"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/auth"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// fakeAgentStore is an in-memory AgentStore with the same dedup semantics as
// the database layer.
type fakeAgentStore struct {
	filters   []*types.Filter
	queued    []*types.QueueItem
	actions   []*types.AuditLogEntry
	processed map[string]struct{}
	recorded  map[string]struct{}
	closed    map[string]bool
}

func newFakeAgentStore(filters []*types.Filter) *fakeAgentStore {
	return &fakeAgentStore{
		filters:   filters,
		processed: make(map[string]struct{}),
		recorded:  make(map[string]struct{}),
		closed:    make(map[string]bool),
	}
}

func (s *fakeAgentStore) ActiveFilters(
	_ context.Context, _ uint64, _ enum.Platform,
) ([]*types.Filter, error) {
	return s.filters, nil
}

func (s *fakeAgentStore) HasProcessed(_ context.Context, connectionID, commentID string) (bool, error) {
	_, ok := s.processed[connectionID+"|"+commentID]
	return ok, nil
}

func (s *fakeAgentStore) EnqueueForReview(_ context.Context, item *types.QueueItem) (bool, error) {
	k := item.ConnectionID + "|" + item.PlatformCommentID
	if _, ok := s.processed[k]; ok {
		return false, nil
	}

	s.processed[k] = struct{}{}
	s.queued = append(s.queued, item)

	return true, nil
}

func (s *fakeAgentStore) RecordAction(
	_ context.Context, entry *types.AuditLogEntry, _ uint64,
) (bool, error) {
	k := entry.ConnectionID + "|" + entry.PlatformCommentID
	if _, ok := s.recorded[k]; ok {
		return false, nil
	}

	s.recorded[k] = struct{}{}
	s.actions = append(s.actions, entry)

	return true, nil
}

func (s *fakeAgentStore) MarkActionedByComment(
	_ context.Context, _, commentID string, success bool,
) error {
	s.closed[commentID] = success
	return nil
}

func agentConnection(autoAction bool) *types.Connection {
	return &types.Connection{
		ID:         "conn-1",
		UserID:     7,
		Platform:   enum.PlatformYouTube,
		Mode:       enum.ConnectionModeAgent,
		AutoAction: autoAction,
		IsActive:   true,
	}
}

func keywordFilter(action enum.FilterAction) *types.Filter {
	return &types.Filter{
		ID:       11,
		UserID:   7,
		Platform: enum.PlatformYouTube,
		Type:     enum.FilterTypeKeyword,
		Pattern:  "spam",
		Action:   action,
		IsActive: true,
	}
}

func agentPost(t *testing.T, conn *types.Connection, path string, body any) bunrouter.Request {
	t.Helper()

	payload, err := sonic.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(payload)))
	req = req.WithContext(auth.WithConnection(req.Context(), conn))

	return bunrouter.NewRequest(req)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

func TestIngest_ReviewModeQueuesMatches(t *testing.T) {
	t.Parallel()

	store := newFakeAgentStore([]*types.Filter{keywordFilter(enum.FilterActionDelete)})
	h := handler.NewAgentHandler(store, matcher.New(zap.NewNop()), zap.NewNop())

	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	req := agentPost(t, agentConnection(false), "/v1/agent/comments", restTypes.IngestRequest{
		ContentID: "video-1",
		Comments: []restTypes.AgentComment{
			{CommentID: "c1", AuthorName: "alice", Text: "buy my spam course", PublishedAt: published},
			{CommentID: "c2", AuthorName: "bob", Text: "great video"},
		},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Ingest(rec, req))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[restTypes.IngestResponse](t, rec)
	assert.Equal(t, 2, resp.Scanned)
	assert.Equal(t, 1, resp.Matched)
	assert.Equal(t, 1, resp.Queued)
	assert.Empty(t, resp.Instructions)

	require.Len(t, store.queued, 1)
	item := store.queued[0]
	assert.Equal(t, "conn-1", item.ConnectionID)
	assert.Equal(t, "c1", item.PlatformCommentID)
	assert.Equal(t, "video-1", item.ContentID)
	assert.Equal(t, "alice", item.AuthorName)
	assert.Equal(t, "buy my spam course", item.Text)
	assert.Equal(t, published, item.PublishedAt)
	assert.Equal(t, uint64(11), item.FilterID)
	assert.Equal(t, enum.QueueStatusPending, item.Status)
}

func TestIngest_AutonomousModeReturnsInstructions(t *testing.T) {
	t.Parallel()

	store := newFakeAgentStore([]*types.Filter{keywordFilter(enum.FilterActionDelete)})
	h := handler.NewAgentHandler(store, matcher.New(zap.NewNop()), zap.NewNop())

	req := agentPost(t, agentConnection(true), "/v1/agent/comments", restTypes.IngestRequest{
		ContentID: "video-1",
		Comments: []restTypes.AgentComment{
			{CommentID: "c1", Text: "spam here"},
		},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Ingest(rec, req))

	resp := decodeJSON[restTypes.IngestResponse](t, rec)
	assert.Equal(t, 1, resp.Matched)
	assert.Zero(t, resp.Queued)
	require.Len(t, resp.Instructions, 1)
	assert.Equal(t, restTypes.Instruction{
		CommentID: "c1",
		Action:    "delete",
		Pattern:   "spam",
	}, resp.Instructions[0])
	assert.Empty(t, store.queued)
}

func TestIngest_SkipsAlreadyProcessed(t *testing.T) {
	t.Parallel()

	store := newFakeAgentStore([]*types.Filter{keywordFilter(enum.FilterActionDelete)})
	store.processed["conn-1|c1"] = struct{}{}
	h := handler.NewAgentHandler(store, matcher.New(zap.NewNop()), zap.NewNop())

	req := agentPost(t, agentConnection(false), "/v1/agent/comments", restTypes.IngestRequest{
		ContentID: "video-1",
		Comments: []restTypes.AgentComment{
			{CommentID: "c1", Text: "spam again"},
		},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Ingest(rec, req))

	resp := decodeJSON[restTypes.IngestResponse](t, rec)
	assert.Equal(t, 1, resp.Matched)
	assert.Zero(t, resp.Queued)
	assert.Empty(t, store.queued)
}

func TestIngest_MissingContentID(t *testing.T) {
	t.Parallel()

	store := newFakeAgentStore(nil)
	h := handler.NewAgentHandler(store, matcher.New(zap.NewNop()), zap.NewNop())

	req := agentPost(t, agentConnection(false), "/v1/agent/comments", restTypes.IngestRequest{
		Comments: []restTypes.AgentComment{{CommentID: "c1", Text: "anything"}},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Ingest(rec, req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngest_MalformedBody(t *testing.T) {
	t.Parallel()

	h := handler.NewAgentHandler(newFakeAgentStore(nil), matcher.New(zap.NewNop()), zap.NewNop())

	raw := httptest.NewRequest(http.MethodPost, "/v1/agent/comments", strings.NewReader("{not json"))
	raw = raw.WithContext(auth.WithConnection(raw.Context(), agentConnection(false)))
	rec := httptest.NewRecorder()

	require.NoError(t, h.Ingest(rec, bunrouter.NewRequest(raw)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportResults_RecordsOutcome(t *testing.T) {
	t.Parallel()

	store := newFakeAgentStore(nil)
	h := handler.NewAgentHandler(store, matcher.New(zap.NewNop()), zap.NewNop())

	req := agentPost(t, agentConnection(true), "/v1/agent/results", restTypes.ResultReport{
		Results: []restTypes.AgentResult{
			{CommentID: "c1", ContentID: "video-1", FilterID: 11, Action: "delete", Success: true},
		},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, h.ReportResults(rec, req))

	resp := decodeJSON[restTypes.ResultResponse](t, rec)
	assert.Equal(t, 1, resp.Recorded)
	assert.Zero(t, resp.Duplicates)

	require.Len(t, store.actions, 1)
	entry := store.actions[0]
	assert.Equal(t, enum.LogActionDeleted, entry.Action)
	assert.Equal(t, enum.ActionSourceAgent, entry.Source)
	assert.True(t, entry.Success)
	assert.Equal(t, uint64(11), entry.FilterID)

	success, ok := store.closed["c1"]
	require.True(t, ok, "queue item should be closed from the result")
	assert.True(t, success)
}

func TestReportResults_UnrecognizedAction(t *testing.T) {
	t.Parallel()

	store := newFakeAgentStore(nil)
	h := handler.NewAgentHandler(store, matcher.New(zap.NewNop()), zap.NewNop())

	req := agentPost(t, agentConnection(true), "/v1/agent/results", restTypes.ResultReport{
		Results: []restTypes.AgentResult{
			{CommentID: "c1", ContentID: "video-1", Action: "obliterate", Success: true},
		},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, h.ReportResults(rec, req))

	require.Len(t, store.actions, 1)
	entry := store.actions[0]
	assert.Equal(t, enum.LogActionFailed, entry.Action)
	assert.False(t, entry.Success)
	assert.Contains(t, entry.FailureReason, "unrecognized action")
	assert.False(t, store.closed["c1"])
}

func TestReportResults_DuplicateReportAbsorbed(t *testing.T) {
	t.Parallel()

	store := newFakeAgentStore(nil)
	store.recorded["conn-1|c1"] = struct{}{}
	h := handler.NewAgentHandler(store, matcher.New(zap.NewNop()), zap.NewNop())

	req := agentPost(t, agentConnection(true), "/v1/agent/results", restTypes.ResultReport{
		Results: []restTypes.AgentResult{
			{CommentID: "c1", ContentID: "video-1", Action: "delete", Success: true},
		},
	})
	rec := httptest.NewRecorder()

	require.NoError(t, h.ReportResults(rec, req))

	resp := decodeJSON[restTypes.ResultResponse](t, rec)
	assert.Zero(t, resp.Recorded)
	assert.Equal(t, 1, resp.Duplicates)
	assert.Empty(t, store.actions)
}
