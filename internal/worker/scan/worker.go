package scan

import (
	"context"
	"errors"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/sweeplabs/modsweep/internal/database"
	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/matcher"
	"github.com/sweeplabs/modsweep/internal/platform"
	"github.com/sweeplabs/modsweep/internal/setup"
	"github.com/sweeplabs/modsweep/internal/setup/config"
	"github.com/sweeplabs/modsweep/internal/worker/core"
	"go.uber.org/zap"
)

// Worker claims due connections and runs scans over them. Individual scans
// are sequential internally; concurrency exists only across connections.
type Worker struct {
	db           database.Client
	orchestrator *Orchestrator
	reporter     *core.StatusReporter
	cfg          *config.WorkerConfig
	logger       *zap.Logger
}

// NewWorker creates a scan worker from the shared app components.
func NewWorker(app *setup.App, logger *zap.Logger) *Worker {
	factory := func(conn *types.Connection) (platform.Adapter, error) {
		return platform.New(platform.Deps{
			Connection:  conn,
			Connections: app.DB.Model().Connection(),
			Config:      &app.Config.Common.Platforms,
			Logger:      logger,
		})
	}

	orchestrator := NewOrchestrator(
		NewStore(app.DB), app.Quota, matcher.New(logger), factory, logger,
	)

	return &Worker{
		db:           app.DB,
		orchestrator: orchestrator,
		reporter:     core.NewStatusReporter(app.StatusClient, "scan", logger),
		cfg:          &app.Config.Worker,
		logger:       logger,
	}
}

// Start begins the worker's main loop:
// 1. Claims the batch of connections most overdue for a scan
// 2. Runs the scan state machine over each, a few at a time
// 3. Waits and repeats until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Scan worker started", zap.String("workerID", w.reporter.GetWorkerID()))
	w.reporter.Start(ctx)

	defer w.reporter.Stop()

	if w.cfg.StartupDelay > 0 {
		select {
		case <-time.After(time.Duration(w.cfg.StartupDelay) * time.Millisecond):
		case <-ctx.Done():
			return
		}
	}

	scanInterval := time.Duration(w.cfg.ScanInterval) * time.Minute

	for {
		if ctx.Err() != nil {
			return
		}

		w.reporter.SetHealthy(true)
		w.reporter.UpdateStatus("Claiming due connections", 10)

		connections, err := w.db.Model().Connection().GetDueForScan(ctx, scanInterval, w.cfg.BatchSize)
		if err != nil {
			w.logger.Error("Failed to claim due connections", zap.Error(err))
			w.reporter.SetHealthy(false)

			if !w.sleep(ctx, time.Minute) {
				return
			}

			continue
		}

		if len(connections) == 0 {
			w.reporter.UpdateStatus("Idle", 0)

			if !w.sleep(ctx, 10*time.Second) {
				return
			}

			continue
		}

		w.processBatch(ctx, connections)
		w.reporter.UpdateStatus("Completed batch", 100)
	}
}

// processBatch scans a batch of connections with bounded concurrency.
func (w *Worker) processBatch(ctx context.Context, connections []*types.Connection) {
	w.reporter.UpdateStatus("Scanning connections", 50)

	concurrency := w.cfg.ConcurrentScans
	if concurrency <= 0 {
		concurrency = 1
	}

	p := pool.New().WithMaxGoroutines(concurrency)

	for _, conn := range connections {
		conn := conn
		p.Go(func() {
			w.scanOne(ctx, conn)
		})
	}

	p.Wait()
}

// scanOne runs a single scan and logs its outcome. Quota exhaustion is an
// expected stop, not a worker failure.
func (w *Worker) scanOne(ctx context.Context, conn *types.Connection) {
	summary, err := w.orchestrator.StartScan(ctx, Params{
		Connection:            conn,
		MaxContents:           w.cfg.MaxContents,
		MaxCommentsPerContent: w.cfg.MaxCommentsPerContent,
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrQuotaExhausted), errors.Is(err, ErrActionQuotaExhausted):
		w.logger.Info("Scan stopped on quota",
			zap.String("connectionID", conn.ID),
			zap.Error(err))
	default:
		w.logger.Error("Scan failed",
			zap.String("connectionID", conn.ID),
			zap.Error(err))
		w.reporter.SetHealthy(false)

		return
	}

	if summary != nil && summary.Matched > 0 {
		w.logger.Info("Scan found matches",
			zap.String("connectionID", conn.ID),
			zap.Int("matched", summary.Matched),
			zap.Int("queued", summary.Queued),
			zap.Int("actioned", summary.Actioned))
	}
}

// sleep waits for the duration or the context, whichever ends first.
func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}
