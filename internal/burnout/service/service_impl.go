package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/burnout/internal/burnout/aggregate"
	"github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/internal/clock"
	"github.com/smallbiznis/burnout/internal/config"
	healthdomain "github.com/smallbiznis/burnout/internal/healthdata/domain"
	"github.com/smallbiznis/burnout/internal/observability/metrics"
	"github.com/smallbiznis/burnout/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	defaultHighRiskLimit = 50
	maxHighRiskLimit     = 500
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Cfg        config.Config
	GenID      *snowflake.Node
	Repo       domain.Repository
	HealthData healthdomain.Service
	Predictor  domain.Predictor
	Clock      clock.Clock
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	repo       domain.Repository
	healthData healthdomain.Service
	predictor  domain.Predictor
	clock      clock.Clock
	metrics    *metrics.Metrics
	timeout    time.Duration
	windowDays int
}

func New(p Params) domain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		log:        p.Log.Named("burnout.service"),
		genID:      p.GenID,
		repo:       p.Repo,
		healthData: p.HealthData,
		predictor:  p.Predictor,
		clock:      c,
		metrics:    p.Metrics,
		timeout:    p.Cfg.Predictor.Timeout,
		windowDays: p.Cfg.Predictor.WindowDays,
	}
}

// Derive asks the predictor to score snapshot and normalises the answer. On failure no
// assessment is produced.
func (s *Service) Derive(ctx context.Context, snapshot domain.Snapshot) (*domain.Assessment, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	source := string(s.predictor.Source())
	start := time.Now()
	prediction, err := s.predictor.Predict(ctx, snapshot)
	if err != nil {
		s.metrics.RecordPrediction(ctx, source, "error", time.Since(start))
		if !errors.Is(err, domain.ErrExternalService) {
			err = errors.Join(domain.ErrExternalService, err)
		}
		return nil, err
	}
	s.metrics.RecordPrediction(ctx, source, "success", time.Since(start))

	risk := 0.0
	if prediction.BurnoutPercentage != nil {
		risk = *prediction.BurnoutPercentage
	}
	recommendations := make([]string, 0, len(prediction.Recommendations))
	recommendations = append(recommendations, prediction.Recommendations...)

	return &domain.Assessment{
		BurnoutRisk:     risk,
		Recommendations: datatypes.JSONSlice[string](recommendations),
		Snapshot:        datatypes.NewJSONType(snapshot),
		Source:          s.predictor.Source(),
	}, nil
}

func (s *Service) Assess(ctx context.Context, userID snowflake.ID) (*domain.Assessment, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	records, err := s.healthData.ListWindow(ctx, userID, s.windowDays)
	if err != nil {
		return nil, err
	}
	snapshot := aggregate.Aggregate(records)

	assessment, err := s.Derive(ctx, snapshot)
	if err != nil {
		s.log.Warn("burnout prediction failed",
			zap.String("user_id", userID.String()),
			zap.Int("window_records", len(records)),
			zap.Error(err),
		)
		return nil, err
	}

	now := s.clock.Now().UTC()
	assessment.ID = s.genID.Generate()
	assessment.UserID = userID
	assessment.AssessedAt = now
	assessment.CreatedAt = now
	if err := s.repo.Insert(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *Service) Latest(ctx context.Context, userID snowflake.ID) (*domain.Assessment, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.Latest(ctx, userID)
}

func (s *Service) History(ctx context.Context, userID snowflake.ID, page pagination.Pagination) (domain.HistoryPage, error) {
	if userID == 0 {
		return domain.HistoryPage{}, domain.ErrInvalidUser
	}

	var cursor *domain.Cursor
	if strings.TrimSpace(page.PageToken) != "" {
		decoded, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return domain.HistoryPage{}, domain.ErrInvalidPageToken
		}
		assessedAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
		if err != nil {
			return domain.HistoryPage{}, domain.ErrInvalidPageToken
		}
		id, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
		if err != nil || id == 0 {
			return domain.HistoryPage{}, domain.ErrInvalidPageToken
		}
		cursor = &domain.Cursor{ID: id, AssessedAt: assessedAt.UTC()}
	}

	limit := page.Limit()
	items, err := s.repo.List(ctx, domain.ListFilter{
		UserID: userID,
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		return domain.HistoryPage{}, err
	}

	items, info, err := pagination.Trim(items, limit, func(a domain.Assessment) pagination.Cursor {
		return pagination.Cursor{
			ID:        a.ID.String(),
			CreatedAt: a.AssessedAt.UTC().Format(time.RFC3339Nano),
		}
	})
	if err != nil {
		return domain.HistoryPage{}, err
	}
	if items == nil {
		items = []domain.Assessment{}
	}
	return domain.HistoryPage{Assessments: items, PageInfo: info}, nil
}

func (s *Service) HighRisk(ctx context.Context, threshold float64, limit int) ([]domain.Assessment, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidThreshold
	}
	switch {
	case limit <= 0:
		limit = defaultHighRiskLimit
	case limit > maxHighRiskLimit:
		limit = maxHighRiskLimit
	}
	items, err := s.repo.LatestPerUserAtLeast(ctx, threshold, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Assessment{}
	}
	return items, nil
}
