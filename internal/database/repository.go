package database

import (
	"github.com/sweeplabs/modsweep/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	connection *models.ConnectionModel
	checkpoint *models.CheckpointModel
	filter     *models.FilterModel
	queue      *models.QueueModel
	audit      *models.AuditModel
	usage      *models.UsageModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		connection: models.NewConnection(db, logger),
		checkpoint: models.NewCheckpoint(db, logger),
		filter:     models.NewFilter(db, logger),
		queue:      models.NewQueue(db, logger),
		audit:      models.NewAudit(db, logger),
		usage:      models.NewUsage(db, logger),
	}
}

// Connection returns the connection model repository.
func (r *Repository) Connection() *models.ConnectionModel {
	return r.connection
}

// Checkpoint returns the content checkpoint model repository.
func (r *Repository) Checkpoint() *models.CheckpointModel {
	return r.checkpoint
}

// Filter returns the filter model repository.
func (r *Repository) Filter() *models.FilterModel {
	return r.filter
}

// Queue returns the review queue model repository.
func (r *Repository) Queue() *models.QueueModel {
	return r.queue
}

// Audit returns the audit log model repository.
func (r *Repository) Audit() *models.AuditModel {
	return r.audit
}

// Usage returns the usage counter model repository.
func (r *Repository) Usage() *models.UsageModel {
	return r.usage
}
