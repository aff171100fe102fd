package database

import (
	"github.com/sweeplabs/modsweep/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	moderation *service.ModerationService
	review     *service.ReviewService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, actionLimit int64, logger *zap.Logger) *Service {
	return &Service{
		moderation: service.NewModeration(
			db,
			repository.Queue(),
			repository.Audit(),
			repository.Filter(),
			repository.Usage(),
			actionLimit,
			logger,
		),
		review: service.NewReview(repository.Queue(), logger),
	}
}

// Moderation returns the moderation service.
func (s *Service) Moderation() *service.ModerationService {
	return s.moderation
}

// Review returns the review service.
func (s *Service) Review() *service.ReviewService {
	return s.review
}
