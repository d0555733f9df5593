package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-playground/validator/v10"
	"github.com/smallbiznis/burnout/internal/clock"
	"github.com/smallbiznis/burnout/internal/config"
	"github.com/smallbiznis/burnout/internal/healthdata/domain"
	"github.com/smallbiznis/burnout/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultWindowDays = 7

type Params struct {
	fx.In

	Log     *zap.Logger
	Cfg     config.Config
	GenID   *snowflake.Node
	Repo    domain.Repository
	Clock   clock.Clock
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	clock    clock.Clock
	loc      *time.Location
	validate *validator.Validate
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		log:      p.Log.Named("healthdata.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		clock:    c,
		loc:      p.Cfg.Location(),
		validate: newValidator(),
		metrics:  p.Metrics,
	}
}

// Submit validates and stores today's record. Validation and the same-day check both run before
// anything is written.
func (s *Service) Submit(ctx context.Context, userID snowflake.ID, req domain.SubmitRecordRequest) (*domain.Record, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	in, err := parseRecord(s.validate, req)
	if err != nil {
		s.metrics.RecordSubmission(ctx, "invalid")
		return nil, err
	}

	now := s.clock.Now().UTC()
	day := clock.Day(now, s.loc)

	exists, err := s.repo.ExistsForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.RecordSubmission(ctx, "duplicate")
		return nil, domain.ErrDuplicateSubmission
	}

	record := &domain.Record{
		ID:            s.genID.Generate(),
		UserID:        userID,
		Day:           day,
		RecordedAt:    now,
		HeartRate:     &in.HeartRate,
		SleepDuration: &in.SleepDuration,
		SleepQuality:  domain.SleepQuality(in.SleepQuality),
		ActivityLevel: domain.ActivityLevel(in.ActivityLevel),
		StressLevel:   &in.StressLevel,
		CreatedAt:     now,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) {
			s.metrics.RecordSubmission(ctx, "duplicate")
		}
		return nil, err
	}
	s.metrics.RecordSubmission(ctx, "accepted")

	s.log.Debug("health record stored",
		zap.String("user_id", userID.String()),
		zap.String("record_id", record.ID.String()),
		zap.String("day", day),
	)
	return record, nil
}

func (s *Service) CanSubmit(ctx context.Context, userID snowflake.ID) (bool, error) {
	if userID == 0 {
		return false, domain.ErrInvalidUser
	}
	exists, err := s.repo.ExistsForDay(ctx, userID, clock.Day(s.clock.Now(), s.loc))
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *Service) ListRecent(ctx context.Context, userID snowflake.ID) ([]domain.Record, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.ListRecent(ctx, userID, domain.MaxWindowRecords)
}

// ListWindow returns up to MaxWindowRecords records from the trailing windowDays calendar days,
// today included, most recent first.
func (s *Service) ListWindow(ctx context.Context, userID snowflake.ID, windowDays int) ([]domain.Record, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	since := clock.StartOfDay(s.clock.Now(), s.loc).AddDate(0, 0, -(windowDays - 1)).UTC()
	return s.repo.ListSince(ctx, userID, since, domain.MaxWindowRecords)
}
