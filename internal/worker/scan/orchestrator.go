package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/sweeplabs/modsweep/internal/matcher"
	"github.com/sweeplabs/modsweep/internal/platform"
	"github.com/sweeplabs/modsweep/internal/quota"
	"go.uber.org/zap"
)

// Store is the persistence surface a scan needs. The database service layer
// satisfies it in production; tests substitute an in-memory fake.
type Store interface {
	// ActiveFilters returns the user's active filters for one platform,
	// highest priority first.
	ActiveFilters(ctx context.Context, userID uint64, platform enum.Platform) ([]*types.Filter, error)
	// GetOrCreateCheckpoint loads the checkpoint for a content item, creating
	// an empty enabled one the first time the item is observed.
	GetOrCreateCheckpoint(ctx context.Context, connectionID, contentID string) (*types.ContentCheckpoint, error)
	// AdvanceCheckpoint moves the watermark forward and adds to the counters.
	AdvanceCheckpoint(ctx context.Context, checkpoint *types.ContentCheckpoint, lastSeen string, scanned, matched int) error
	// TouchLastScanned stamps last_scanned_at on the connection.
	TouchLastScanned(ctx context.Context, connectionID string, at time.Time) error
	// HasProcessed reports whether the comment already has a queue item or
	// audit entry.
	HasProcessed(ctx context.Context, connectionID, commentID string) (bool, error)
	// EnqueueForReview inserts a pending queue item; false means another scan
	// already queued the comment.
	EnqueueForReview(ctx context.Context, item *types.QueueItem) (bool, error)
	// RecordAction appends an audit entry with its hit count and usage
	// bookkeeping; false means the comment was already actioned.
	RecordAction(ctx context.Context, entry *types.AuditLogEntry, userID uint64) (bool, error)
	// RemainingActions returns the user's remaining action budget for the
	// current billing period.
	RemainingActions(ctx context.Context, userID uint64) (int64, error)
}

// Quota is the admission control surface for costed platform calls.
type Quota interface {
	HasQuotaFor(ctx context.Context, platform enum.Platform, op quota.Op, count int) (bool, error)
	CanMakeRequest(ctx context.Context, platform enum.Platform, userID uint64, op quota.Op) (bool, error)
	TrackQuotaUsage(ctx context.Context, platform enum.Platform, op quota.Op, count int) error
}

// AdapterFactory builds the platform adapter for one connection.
type AdapterFactory func(connection *types.Connection) (platform.Adapter, error)

// Params describes one scan invocation.
type Params struct {
	Connection            *types.Connection
	MaxContents           int
	MaxCommentsPerContent int
	// ContentID restricts the scan to a single content item when set.
	ContentID string
}

// Summary is the observable outcome of one scan.
type Summary struct {
	Contents    int
	Scanned     int
	Matched     int
	Queued      int
	Actioned    int
	Failed      int
	Aborted     bool
	AbortReason string
}

// Orchestrator runs the per-connection scan state machine. A single scan is
// strictly sequential; concurrency exists only across connections, which is
// why the shared quota counters live behind atomic Redis increments.
type Orchestrator struct {
	store      Store
	quota      Quota
	matcher    *matcher.Matcher
	newAdapter AdapterFactory
	logger     *zap.Logger
}

// NewOrchestrator creates a scan orchestrator.
func NewOrchestrator(
	store Store, q Quota, m *matcher.Matcher, newAdapter AdapterFactory, logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:      store,
		quota:      q,
		matcher:    m,
		newAdapter: newAdapter,
		logger:     logger.Named("scan"),
	}
}

// StartScan runs one scan for a connection. Re-invoking after a partial run is
// safe: progress resumes from the persisted checkpoints and the dedup guard
// swallows comments an earlier attempt already handled.
//
// Quota exhaustion ends the scan early but keeps partial progress and still
// stamps last_scanned_at, so an exhausted account does not hot-loop. A failed
// connection test stamps nothing.
func (o *Orchestrator) StartScan(ctx context.Context, params Params) (*Summary, error) {
	conn := params.Connection
	summary := new(Summary)
	log := o.logger.With(
		zap.String("connectionID", conn.ID),
		zap.Stringer("platform", conn.Platform),
	)

	if conn.AutoAction {
		remaining, err := o.store.RemainingActions(ctx, conn.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check action quota: %w", err)
		}

		if remaining <= 0 {
			log.Info("Skipping scan, user has no action quota left",
				zap.Uint64("userID", conn.UserID))

			summary.Aborted = true
			summary.AbortReason = ErrActionQuotaExhausted.Error()

			return summary, ErrActionQuotaExhausted
		}
	}

	filters, err := o.store.ActiveFilters(ctx, conn.UserID, conn.Platform)
	if err != nil {
		return nil, fmt.Errorf("failed to load filters: %w", err)
	}

	// Scanning without filters would spend API quota for nothing.
	if len(filters) == 0 {
		log.Debug("No active filters, skipping scan")
		return summary, o.finalize(ctx, conn, summary, log)
	}

	adapter, err := o.newAdapter(conn)
	if err != nil {
		return nil, err
	}

	if err := o.admit(ctx, conn, quota.OpList); err != nil {
		summary.Aborted = true
		summary.AbortReason = err.Error()

		if finErr := o.finalize(ctx, conn, summary, log); finErr != nil {
			log.Error("Failed to finalize scan", zap.Error(finErr))
		}

		return summary, err
	}

	account, err := adapter.TestConnection(ctx)
	o.track(ctx, conn, quota.OpList, 1, log)

	if err != nil {
		// No last_scanned_at stamp on a broken connection; a false "scanned"
		// timestamp would hide the breakage from the scheduler.
		summary.Aborted = true
		summary.AbortReason = err.Error()

		return summary, err
	}

	log.Debug("Connection test passed", zap.String("account", account.Name))

	contents, err := o.enumerate(ctx, adapter, params, log)
	if err != nil {
		summary.Aborted = true
		summary.AbortReason = err.Error()

		if finErr := o.finalize(ctx, conn, summary, log); finErr != nil {
			log.Error("Failed to finalize scan", zap.Error(finErr))
		}

		return summary, err
	}

	var scanErr error

	for _, content := range contents {
		aborted, err := o.scanContent(ctx, conn, adapter, content, filters, params, summary, log)
		if err != nil && !aborted {
			return summary, err
		}

		if aborted {
			summary.Aborted = true
			summary.AbortReason = err.Error()
			scanErr = err

			break
		}
	}

	if finErr := o.finalize(ctx, conn, summary, log); finErr != nil && scanErr == nil {
		scanErr = finErr
	}

	return summary, scanErr
}

// enumerate lists the content items to scan. A specific content ID bypasses
// enumeration entirely, which is the re-scan-single-item entry point.
func (o *Orchestrator) enumerate(
	ctx context.Context, adapter platform.Adapter, params Params, log *zap.Logger,
) ([]*platform.Content, error) {
	if params.ContentID != "" {
		return []*platform.Content{{ContentID: params.ContentID}}, nil
	}

	conn := params.Connection
	contents := make([]*platform.Content, 0, params.MaxContents)
	cursor := ""

	for len(contents) < params.MaxContents {
		if err := o.admit(ctx, conn, quota.OpList); err != nil {
			// Partial enumeration still gets scanned.
			if len(contents) > 0 {
				break
			}

			return nil, err
		}

		page, next, err := adapter.GetContents(ctx, params.MaxContents-len(contents), cursor)
		o.track(ctx, conn, quota.OpList, 1, log)

		if err != nil {
			return nil, fmt.Errorf("failed to enumerate content: %w", err)
		}

		contents = append(contents, page...)

		if next == "" || len(page) == 0 {
			break
		}

		cursor = next
	}

	return contents, nil
}

// scanContent processes one content item's comments. The returned bool marks
// a scan-wide abort; the caller must stop iterating content.
func (o *Orchestrator) scanContent(
	ctx context.Context, conn *types.Connection, adapter platform.Adapter,
	content *platform.Content, filters []*types.Filter, params Params,
	summary *Summary, log *zap.Logger,
) (bool, error) {
	checkpoint, err := o.store.GetOrCreateCheckpoint(ctx, conn.ID, content.ContentID)
	if err != nil {
		return false, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	if !checkpoint.ScanEnabled {
		return false, nil
	}

	if err := o.admit(ctx, conn, quota.OpList); err != nil {
		return true, err
	}

	page, err := adapter.GetComments(ctx, content.ContentID, params.MaxCommentsPerContent, "")
	o.track(ctx, conn, quota.OpList, 1, log)

	if err != nil {
		// One item's fetch failure does not sink the rest of the scan.
		log.Warn("Failed to fetch comments",
			zap.String("contentID", content.ContentID),
			zap.Error(err))

		return false, nil
	}

	if page.Disabled {
		log.Debug("Comments disabled, skipping item", zap.String("contentID", content.ContentID))
		return false, nil
	}

	if len(page.Comments) == 0 {
		return false, nil
	}

	summary.Contents++

	var (
		watermark        string
		scanned, matched int
		aborted          bool
		abortErr         error
	)

	for _, comment := range page.Comments {
		// Everything at and past the stored watermark was handled by an
		// earlier incremental scan.
		if conn.ScanMode == enum.ScanModeIncremental &&
			checkpoint.LastSeenCommentID != "" &&
			comment.ID == checkpoint.LastSeenCommentID {
			break
		}

		if conn.AutoAction {
			if abortErr = o.recheckQuotas(ctx, conn); abortErr != nil {
				aborted = true
				break
			}
		}

		scanned++

		// The newest processed comment defines the watermark even when it
		// matches nothing.
		if watermark == "" {
			watermark = comment.ID
		}

		filter := o.matcher.Match(matcher.Subject{
			Text:       comment.Text,
			AuthorName: comment.AuthorName,
		}, filters)
		if filter == nil {
			continue
		}

		matched++

		processed, err := o.store.HasProcessed(ctx, conn.ID, comment.ID)
		if err != nil {
			log.Warn("Dedup check failed, skipping comment",
				zap.String("commentID", comment.ID),
				zap.Error(err))

			continue
		}

		if processed {
			continue
		}

		if conn.AutoAction {
			if abortErr = o.executeAction(ctx, conn, adapter, content.ContentID, comment, filter, summary, log); abortErr != nil {
				aborted = true
				break
			}
		} else {
			o.enqueue(ctx, conn, content.ContentID, comment, filter, summary, log)
		}
	}

	summary.Scanned += scanned
	summary.Matched += matched

	if scanned > 0 {
		if err := o.store.AdvanceCheckpoint(ctx, checkpoint, watermark, scanned, matched); err != nil {
			log.Error("Failed to advance checkpoint",
				zap.String("contentID", content.ContentID),
				zap.Error(err))
		}
	}

	return aborted, abortErr
}

// recheckQuotas re-reads both quota gates before each comment of an
// autonomous-mode scan. Concurrent activity can drain either budget mid-scan.
func (o *Orchestrator) recheckQuotas(ctx context.Context, conn *types.Connection) error {
	remaining, err := o.store.RemainingActions(ctx, conn.UserID)
	if err != nil {
		return fmt.Errorf("failed to check action quota: %w", err)
	}

	if remaining <= 0 {
		return ErrActionQuotaExhausted
	}

	if !conn.Platform.Metered() {
		return nil
	}

	ok, err := o.quota.HasQuotaFor(ctx, conn.Platform, quota.OpModerate, 1)
	if err != nil {
		return fmt.Errorf("failed to check platform quota: %w", err)
	}

	if !ok {
		return ErrQuotaExhausted
	}

	return nil
}

// enqueue inserts a pending queue item for human review.
func (o *Orchestrator) enqueue(
	ctx context.Context, conn *types.Connection, contentID string,
	comment *platform.Comment, filter *types.Filter, summary *Summary, log *zap.Logger,
) {
	item := &types.QueueItem{
		ConnectionID: conn.ID,
		CommentSnapshot: types.CommentSnapshot{
			PlatformCommentID: comment.ID,
			ContentID:         contentID,
			AuthorID:          comment.AuthorID,
			AuthorName:        comment.AuthorName,
			Text:              comment.Text,
			PublishedAt:       comment.PublishedAt,
		},
		FilterID:   filter.ID,
		Confidence: 1.0,
		Status:     enum.QueueStatusPending,
		DetectedAt: time.Now(),
	}

	inserted, err := o.store.EnqueueForReview(ctx, item)
	if err != nil {
		log.Warn("Failed to queue comment for review",
			zap.String("commentID", comment.ID),
			zap.Error(err))

		summary.Failed++

		return
	}

	if inserted {
		summary.Queued++
	}
}

// executeAction performs a filter's action directly and records the outcome.
// Returns an error only for scan-aborting quota exhaustion; per-comment
// action failures are recorded and the scan continues.
func (o *Orchestrator) executeAction(
	ctx context.Context, conn *types.Connection, adapter platform.Adapter,
	contentID string, comment *platform.Comment, filter *types.Filter,
	summary *Summary, log *zap.Logger,
) error {
	logAction, costed := filter.Action.Outcome()

	var (
		success bool
		reason  string
	)

	switch {
	case logAction == enum.LogActionFailed:
		reason = fmt.Sprintf("unrecognized filter action %d", filter.Action)
	case !costed:
		// Report actions are record-only; nothing is sent to the platform.
		success = true
	default:
		if conn.Platform.Metered() {
			ok, err := o.quota.CanMakeRequest(ctx, conn.Platform, conn.UserID, quota.OpModerate)
			if err != nil {
				return fmt.Errorf("failed to check platform quota: %w", err)
			}

			if !ok {
				return ErrQuotaExhausted
			}
		}

		ack, err := o.moderate(ctx, adapter, filter.Action, comment.ID)
		o.track(ctx, conn, quota.OpModerate, 1, log)

		switch {
		case err != nil:
			reason = err.Error()
		case !ack.Success:
			reason = ack.Message
		default:
			success = true
		}
	}

	entry := &types.AuditLogEntry{
		ConnectionID:      conn.ID,
		PlatformCommentID: comment.ID,
		ContentID:         contentID,
		FilterID:          filter.ID,
		Action:            logAction,
		Source:            enum.ActionSourceBackground,
		Success:           success,
		FailureReason:     reason,
	}

	if _, err := o.store.RecordAction(ctx, entry, conn.UserID); err != nil {
		log.Error("Failed to record action outcome",
			zap.String("commentID", comment.ID),
			zap.Error(err))
	}

	if success {
		summary.Actioned++
	} else {
		summary.Failed++

		log.Warn("Moderation action failed",
			zap.String("commentID", comment.ID),
			zap.Stringer("action", filter.Action),
			zap.String("reason", reason))
	}

	return nil
}

// moderate dispatches the platform call for a costed action.
func (o *Orchestrator) moderate(
	ctx context.Context, adapter platform.Adapter, action enum.FilterAction, commentID string,
) (*platform.ActionAck, error) {
	if action == enum.FilterActionDelete {
		return adapter.DeleteComment(ctx, commentID)
	}

	return adapter.HideComment(ctx, commentID)
}

// admit gates one costed list call on a metered platform.
func (o *Orchestrator) admit(ctx context.Context, conn *types.Connection, op quota.Op) error {
	if !conn.Platform.Metered() {
		return nil
	}

	ok, err := o.quota.CanMakeRequest(ctx, conn.Platform, conn.UserID, op)
	if err != nil {
		return fmt.Errorf("failed to check platform quota: %w", err)
	}

	if !ok {
		return ErrQuotaExhausted
	}

	return nil
}

// track records quota consumption after a completed platform call.
func (o *Orchestrator) track(
	ctx context.Context, conn *types.Connection, op quota.Op, count int, log *zap.Logger,
) {
	if !conn.Platform.Metered() {
		return
	}

	if err := o.quota.TrackQuotaUsage(ctx, conn.Platform, op, count); err != nil {
		log.Warn("Failed to track quota usage", zap.Error(err))
	}
}

// finalize stamps last_scanned_at and emits the scan summary. It runs even on
// quota aborts so an exhausted account is not immediately re-picked.
func (o *Orchestrator) finalize(
	ctx context.Context, conn *types.Connection, summary *Summary, log *zap.Logger,
) error {
	if err := o.store.TouchLastScanned(ctx, conn.ID, time.Now()); err != nil {
		return fmt.Errorf("failed to stamp last scanned: %w", err)
	}

	log.Info("Scan finished",
		zap.Int("contents", summary.Contents),
		zap.Int("scanned", summary.Scanned),
		zap.Int("matched", summary.Matched),
		zap.Int("queued", summary.Queued),
		zap.Int("actioned", summary.Actioned),
		zap.Int("failed", summary.Failed),
		zap.Bool("aborted", summary.Aborted))

	return nil
}
