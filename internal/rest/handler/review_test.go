package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/sweeplabs/modsweep/internal/database/service"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/platform"
	"github.com/sweeplabs/modsweep/internal/quota"
	"github.com/sweeplabs/modsweep/internal/rest/handler"
	"github.com/sweeplabs/modsweep/internal/rest/middleware/auth"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// fakeReviewStore keeps queue items and filters in memory with the same
// pending-only transition rules as the review service.
type fakeReviewStore struct {
	items   map[uint64]*types.QueueItem
	filters map[uint64]*types.Filter
	actions []*types.AuditLogEntry
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{
		items:   make(map[uint64]*types.QueueItem),
		filters: make(map[uint64]*types.Filter),
	}
}

func (s *fakeReviewStore) PendingItems(
	_ context.Context, connectionID string, _ int,
) ([]*types.QueueItem, error) {
	var out []*types.QueueItem

	for _, item := range s.items {
		if item.ConnectionID == connectionID && item.Status == enum.QueueStatusPending {
			out = append(out, item)
		}
	}

	return out, nil
}

func (s *fakeReviewStore) QueueItem(_ context.Context, id uint64) (*types.QueueItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, models.ErrQueueItemNotFound
	}

	return item, nil
}

func (s *fakeReviewStore) FilterByID(_ context.Context, id uint64) (*types.Filter, error) {
	filter, ok := s.filters[id]
	if !ok {
		return nil, models.ErrFilterNotFound
	}

	return filter, nil
}

func (s *fakeReviewStore) ApproveItem(_ context.Context, id uint64) (*types.QueueItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, models.ErrQueueItemNotFound
	}

	if item.Status != enum.QueueStatusPending {
		return nil, service.ErrNotPending
	}

	item.Status = enum.QueueStatusApproved

	return item, nil
}

func (s *fakeReviewStore) DismissItem(_ context.Context, id uint64) error {
	item, ok := s.items[id]
	if !ok {
		return models.ErrQueueItemNotFound
	}

	if item.Status != enum.QueueStatusPending {
		return service.ErrNotPending
	}

	item.Status = enum.QueueStatusDismissed

	return nil
}

func (s *fakeReviewStore) MarkActioned(_ context.Context, id uint64, success bool) error {
	item, ok := s.items[id]
	if !ok {
		return models.ErrQueueItemNotFound
	}

	if success {
		item.Status = enum.QueueStatusDeleted
	} else {
		item.Status = enum.QueueStatusFailed
	}

	return nil
}

func (s *fakeReviewStore) RecordAction(
	_ context.Context, entry *types.AuditLogEntry, _ uint64,
) (bool, error) {
	s.actions = append(s.actions, entry)
	return true, nil
}

// fakeReviewQuota admits or denies every costed request.
type fakeReviewQuota struct {
	allow   bool
	checks  int
	tracked int
}

func (q *fakeReviewQuota) CanMakeRequest(
	_ context.Context, _ enum.Platform, _ uint64, _ quota.Op,
) (bool, error) {
	q.checks++
	return q.allow, nil
}

func (q *fakeReviewQuota) TrackQuotaUsage(_ context.Context, _ enum.Platform, _ quota.Op, count int) error {
	q.tracked += count
	return nil
}

// fakeModerator records delete and hide calls for the API execution path.
type fakeModerator struct {
	platform.Adapter

	deleted []string
	hidden  []string
	err     error
}

func (a *fakeModerator) DeleteComment(_ context.Context, commentID string) (*platform.ActionAck, error) {
	if a.err != nil {
		return nil, a.err
	}

	a.deleted = append(a.deleted, commentID)

	return &platform.ActionAck{Success: true}, nil
}

func (a *fakeModerator) HideComment(_ context.Context, commentID string) (*platform.ActionAck, error) {
	if a.err != nil {
		return nil, a.err
	}

	a.hidden = append(a.hidden, commentID)

	return &platform.ActionAck{Success: true}, nil
}

type reviewFixture struct {
	store   *fakeReviewStore
	quota   *fakeReviewQuota
	adapter *fakeModerator
	router  *bunrouter.Router
	conn    *types.Connection
}

func newReviewFixture(t *testing.T, conn *types.Connection) *reviewFixture {
	t.Helper()

	f := &reviewFixture{
		store:   newFakeReviewStore(),
		quota:   &fakeReviewQuota{allow: true},
		adapter: &fakeModerator{},
		conn:    conn,
	}

	h := handler.NewReviewHandler(f.store, f.quota, func(*types.Connection) (platform.Adapter, error) {
		return f.adapter, nil
	}, zap.NewNop())

	f.router = bunrouter.New()
	f.router.GET("/review/pending", h.Pending)
	f.router.POST("/review/:id/approve", h.Approve)
	f.router.POST("/review/:id/dismiss", h.Dismiss)

	return f
}

func (f *reviewFixture) post(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, nil)
	req = req.WithContext(auth.WithConnection(req.Context(), f.conn))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func (f *reviewFixture) seed(item *types.QueueItem, filter *types.Filter) {
	f.store.items[item.ID] = item
	if filter != nil {
		f.store.filters[filter.ID] = filter
	}
}

func apiConnection() *types.Connection {
	return &types.Connection{
		ID:       "conn-1",
		UserID:   7,
		Platform: enum.PlatformYouTube,
		Mode:     enum.ConnectionModeAPI,
		IsActive: true,
	}
}

func pendingItem(id uint64, filterID uint64) *types.QueueItem {
	return &types.QueueItem{
		ID:           id,
		ConnectionID: "conn-1",
		CommentSnapshot: types.CommentSnapshot{
			PlatformCommentID: "c1",
			ContentID:         "video-1",
			Text:              "spam here",
		},
		FilterID: filterID,
		Status:   enum.QueueStatusPending,
	}
}

func TestApprove_ExecutesDelete(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	f.seed(pendingItem(1, 11), keywordFilter(enum.FilterActionDelete))

	rec := f.post(t, "/review/1/approve")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[restTypes.ReviewResponse](t, rec)
	assert.Equal(t, "deleted", resp.Status)
	assert.Equal(t, []string{"c1"}, f.adapter.deleted)
	assert.Equal(t, enum.QueueStatusDeleted, f.store.items[1].Status)
	assert.Equal(t, 1, f.quota.tracked)

	require.Len(t, f.store.actions, 1)
	entry := f.store.actions[0]
	assert.Equal(t, enum.LogActionDeleted, entry.Action)
	assert.Equal(t, enum.ActionSourceManual, entry.Source)
	assert.True(t, entry.Success)
}

func TestApprove_QuotaDenialKeepsItemPending(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	f.quota.allow = false
	f.seed(pendingItem(1, 11), keywordFilter(enum.FilterActionDelete))

	rec := f.post(t, "/review/1/approve")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A denied approval must be retryable later, so the item never leaves
	// pending and nothing reaches the platform.
	assert.Equal(t, enum.QueueStatusPending, f.store.items[1].Status)
	assert.Empty(t, f.adapter.deleted)
	assert.Empty(t, f.store.actions)
	assert.Zero(t, f.quota.tracked)
}

func TestApprove_ReportSkipsQuotaGate(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	f.quota.allow = false
	f.seed(pendingItem(1, 11), keywordFilter(enum.FilterActionReport))

	rec := f.post(t, "/review/1/approve")
	require.Equal(t, http.StatusOK, rec.Code)

	// Report is record-only; exhausted platform quota must not block it.
	assert.Zero(t, f.quota.checks)
	assert.Equal(t, enum.QueueStatusDeleted, f.store.items[1].Status)

	require.Len(t, f.store.actions, 1)
	assert.Equal(t, enum.LogActionReported, f.store.actions[0].Action)
}

func TestApprove_AgentModeReturnsInstruction(t *testing.T) {
	t.Parallel()

	conn := apiConnection()
	conn.Mode = enum.ConnectionModeAgent

	f := newReviewFixture(t, conn)
	f.seed(pendingItem(1, 11), keywordFilter(enum.FilterActionDelete))

	rec := f.post(t, "/review/1/approve")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[restTypes.ReviewResponse](t, rec)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.Instruction)
	assert.Equal(t, restTypes.Instruction{
		CommentID: "c1",
		Action:    "delete",
		Pattern:   "spam",
	}, *resp.Instruction)

	// The item stays approved until the agent reports the outcome.
	assert.Equal(t, enum.QueueStatusApproved, f.store.items[1].Status)
	assert.Empty(t, f.adapter.deleted)
}

func TestApprove_MissingFilterRecordsFailure(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	f.seed(pendingItem(1, 99), nil)

	rec := f.post(t, "/review/1/approve")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[restTypes.ReviewResponse](t, rec)
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, enum.QueueStatusFailed, f.store.items[1].Status)

	require.Len(t, f.store.actions, 1)
	entry := f.store.actions[0]
	assert.Equal(t, enum.LogActionFailed, entry.Action)
	assert.False(t, entry.Success)
	assert.Contains(t, entry.FailureReason, "filter no longer exists")
}

func TestApprove_PlatformErrorMarksFailed(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	f.adapter.err = errors.New("comment not found")
	f.seed(pendingItem(1, 11), keywordFilter(enum.FilterActionDelete))

	rec := f.post(t, "/review/1/approve")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[restTypes.ReviewResponse](t, rec)
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, enum.QueueStatusFailed, f.store.items[1].Status)

	// The call was spent even though it failed.
	assert.Equal(t, 1, f.quota.tracked)
	require.Len(t, f.store.actions, 1)
	assert.Equal(t, "comment not found", f.store.actions[0].FailureReason)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	item := pendingItem(1, 11)
	item.Status = enum.QueueStatusDismissed
	f.seed(item, keywordFilter(enum.FilterActionDelete))

	rec := f.post(t, "/review/1/approve")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApprove_ForeignItemNotFound(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	item := pendingItem(1, 11)
	item.ConnectionID = "someone-else"
	f.seed(item, keywordFilter(enum.FilterActionDelete))

	rec := f.post(t, "/review/1/approve")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDismiss_MarksDismissed(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	f.seed(pendingItem(1, 11), keywordFilter(enum.FilterActionDelete))

	rec := f.post(t, "/review/1/dismiss")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[restTypes.ReviewResponse](t, rec)
	assert.Equal(t, "dismissed", resp.Status)
	assert.Equal(t, enum.QueueStatusDismissed, f.store.items[1].Status)
	assert.Empty(t, f.store.actions)
}

func TestPending_ListsOnlyPending(t *testing.T) {
	t.Parallel()

	f := newReviewFixture(t, apiConnection())
	f.seed(pendingItem(1, 11), keywordFilter(enum.FilterActionDelete))

	decided := pendingItem(2, 11)
	decided.Status = enum.QueueStatusDeleted
	f.seed(decided, nil)

	req := httptest.NewRequest(http.MethodGet, "/review/pending", nil)
	req = req.WithContext(auth.WithConnection(req.Context(), f.conn))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[restTypes.PendingResponse](t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, uint64(1), resp.Items[0].ID)
}
