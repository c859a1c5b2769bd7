package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadex/gradepoint-backend/internal/config"
	"github.com/acadex/gradepoint-backend/internal/model"
	"github.com/acadex/gradepoint-backend/internal/repository"
)

// UsageService reads the aggregated usage telemetry.
type UsageService struct {
	usageRepo *repository.UsageRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewUsageService creates a new UsageService.
func NewUsageService(usageRepo *repository.UsageRepository, rdb *redis.Client, log zerolog.Logger) *UsageService {
	return &UsageService{
		usageRepo: usageRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "usage_service").Logger(),
	}
}

// Report returns the aggregated usage rows for the trailing window.
func (s *UsageService) Report(ctx context.Context, days int) (*model.UsageReportResponse, error) {
	rows, total, err := s.usageRepo.Report(ctx, days)
	if err != nil {
		return nil, err
	}
	return &model.UsageReportResponse{
		Days:  days,
		Total: total,
		Rows:  rows,
	}, nil
}

// QueueDepth reports how many usage events are waiting to be aggregated.
func (s *UsageService) QueueDepth(ctx context.Context) (int64, error) {
	return s.rdb.LLen(ctx, config.WorkerKey.UsageEventsQueue).Result()
}
