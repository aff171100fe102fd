package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sweeplabs/modsweep/internal/database/types"
	"github.com/sweeplabs/modsweep/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrFilterNotFound is returned when a filter lookup finds no row.
var ErrFilterNotFound = errors.New("filter not found")

// FilterModel handles database operations for moderation filters.
type FilterModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewFilter creates a new filter model.
func NewFilter(db *bun.DB, logger *zap.Logger) *FilterModel {
	return &FilterModel{
		db:     db,
		logger: logger.Named("db_filter"),
	}
}

// GetActiveFilters returns a user's active filters for one platform, ordered
// by descending priority with insertion order breaking ties. The matcher
// relies on this ordering for its first-wins semantics.
func (r *FilterModel) GetActiveFilters(
	ctx context.Context, userID uint64, platform enum.Platform,
) ([]*types.Filter, error) {
	var filters []*types.Filter

	err := r.db.NewSelect().
		Model(&filters).
		Where("user_id = ?", userID).
		Where("platform = ?", platform).
		Where("is_active = true").
		Order("priority DESC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active filters: %w", err)
	}

	return filters, nil
}

// GetByID retrieves a filter by its ID.
func (r *FilterModel) GetByID(ctx context.Context, id uint64) (*types.Filter, error) {
	filter := new(types.Filter)

	err := r.db.NewSelect().
		Model(filter).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilterNotFound
		}

		return nil, fmt.Errorf("failed to get filter: %w", err)
	}

	return filter, nil
}

// IncrementHitCount bumps the match counter for a filter.
func (r *FilterModel) IncrementHitCount(ctx context.Context, filterID uint64) error {
	_, err := r.db.NewUpdate().
		Model((*types.Filter)(nil)).
		Set("hit_count = hit_count + 1").
		Where("id = ?", filterID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment hit count: %w", err)
	}

	return nil
}
