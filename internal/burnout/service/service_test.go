package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang/mock/gomock"
	"github.com/smallbiznis/burnout/internal/burnout/aggregate"
	"github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/internal/burnout/mock"
	"github.com/smallbiznis/burnout/internal/burnout/repository"
	"github.com/smallbiznis/burnout/internal/clock"
	"github.com/smallbiznis/burnout/internal/config"
	healthdomain "github.com/smallbiznis/burnout/internal/healthdata/domain"
	healthrepo "github.com/smallbiznis/burnout/internal/healthdata/repository"
	healthservice "github.com/smallbiznis/burnout/internal/healthdata/service"
	"github.com/smallbiznis/burnout/pkg/db"
	"github.com/smallbiznis/burnout/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testUser = snowflake.ID(2002)

type fixture struct {
	svc       domain.Service
	health    healthdomain.Service
	predictor *mock.MockPredictor
	clock     *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&healthdomain.Record{}, &domain.Assessment{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	predictor := mock.NewMockPredictor(ctrl)
	predictor.EXPECT().Source().Return(domain.SourceHTTP).AnyTimes()

	cfg := config.Config{Timezone: "UTC", Predictor: config.PredictorConfig{Timeout: time.Second, WindowDays: 7}}
	fake := clock.NewFakeClock(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	log := zaptest.NewLogger(t)

	health := healthservice.New(healthservice.Params{
		Log:   log,
		Cfg:   cfg,
		GenID: node,
		Repo:  healthrepo.Provide(dbConn),
		Clock: fake,
	})

	svc := New(Params{
		Log:        log,
		Cfg:        cfg,
		GenID:      node,
		Repo:       repository.Provide(dbConn),
		HealthData: health,
		Predictor:  predictor,
		Clock:      fake,
	})
	return &fixture{svc: svc, health: health, predictor: predictor, clock: fake}
}

func str(v string) *string { return &v }

func pct(v float64) *float64 { return &v }

func (f *fixture) submit(t *testing.T, hr, sleep, quality, stress string) {
	t.Helper()
	_, err := f.health.Submit(context.Background(), testUser, healthdomain.SubmitRecordRequest{
		HeartRate:     str(hr),
		SleepDuration: str(sleep),
		SleepQuality:  str(quality),
		ActivityLevel: str("light"),
		StressLevel:   str(stress),
	})
	require.NoError(t, err)
}

func TestDeriveNormalisesMissingFields(t *testing.T) {
	f := newFixture(t)
	f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{}, nil)

	a, err := f.svc.Derive(context.Background(), aggregate.DefaultSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.BurnoutRisk)
	assert.NotNil(t, a.Recommendations)
	assert.Empty(t, a.Recommendations)
	assert.Equal(t, aggregate.DefaultSnapshot(), a.Snapshot.Data())
}

func TestDeriveKeepsRecommendationOrder(t *testing.T) {
	f := newFixture(t)
	f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{
		BurnoutPercentage: pct(0.62),
		Recommendations:   []string{"c", "a", "b"},
	}, nil)

	a, err := f.svc.Derive(context.Background(), aggregate.DefaultSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 0.62, a.BurnoutRisk)
	assert.Equal(t, []string{"c", "a", "b"}, []string(a.Recommendations))
}

func TestDeriveSurfacesExternalFailure(t *testing.T) {
	f := newFixture(t)
	f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{}, errors.New("dial tcp: refused"))

	a, err := f.svc.Derive(context.Background(), aggregate.DefaultSnapshot())
	assert.Nil(t, a)
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestAssessUsesDefaultSnapshotForNewUser(t *testing.T) {
	f := newFixture(t)
	f.predictor.EXPECT().Predict(gomock.Any(), aggregate.DefaultSnapshot()).Return(domain.Prediction{BurnoutPercentage: pct(0.1)}, nil)

	a, err := f.svc.Assess(context.Background(), testUser)
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, testUser, a.UserID)
	assert.Equal(t, domain.SourceHTTP, a.Source)

	latest, err := f.svc.Latest(context.Background(), testUser)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, a.ID, latest.ID)
	assert.Equal(t, aggregate.DefaultSnapshot(), latest.Snapshot.Data())
}

func TestAssessAggregatesWindow(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "60", "6", "poor", "8")
	f.clock.Advance(24 * time.Hour)
	f.submit(t, "80", "8", "excellent", "4")

	want := domain.Snapshot{
		AvgSleep:        7,
		AvgStress:       6,
		AvgSteps:        8000,
		AvgWorkHours:    8,
		AvgHRV:          60,
		AvgRHR:          70,
		AvgSleepQuality: 62.5,
	}
	f.predictor.EXPECT().Predict(gomock.Any(), want).Return(domain.Prediction{BurnoutPercentage: pct(0.4)}, nil)

	_, err := f.svc.Assess(context.Background(), testUser)
	require.NoError(t, err)
}

func TestAssessDoesNotPersistOnFailure(t *testing.T) {
	f := newFixture(t)
	f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{}, domain.ErrExternalService)

	_, err := f.svc.Assess(context.Background(), testUser)
	require.ErrorIs(t, err, domain.ErrExternalService)

	latest, err := f.svc.Latest(context.Background(), testUser)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestHistoryPagesNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{BurnoutPercentage: pct(0.3)}, nil).Times(5)

	var ids []snowflake.ID
	for i := 0; i < 5; i++ {
		a, err := f.svc.Assess(context.Background(), testUser)
		require.NoError(t, err)
		ids = append(ids, a.ID)
		f.clock.Advance(time.Hour)
	}

	first, err := f.svc.History(context.Background(), testUser, pagination.Pagination{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Assessments, 2)
	assert.True(t, first.PageInfo.HasMore)
	assert.Equal(t, ids[4], first.Assessments[0].ID)
	assert.Equal(t, ids[3], first.Assessments[1].ID)

	second, err := f.svc.History(context.Background(), testUser, pagination.Pagination{PageSize: 2, PageToken: first.PageInfo.NextPageToken})
	require.NoError(t, err)
	require.Len(t, second.Assessments, 2)
	assert.Equal(t, ids[2], second.Assessments[0].ID)

	third, err := f.svc.History(context.Background(), testUser, pagination.Pagination{PageSize: 2, PageToken: second.PageInfo.NextPageToken})
	require.NoError(t, err)
	require.Len(t, third.Assessments, 1)
	assert.False(t, third.PageInfo.HasMore)
	assert.Equal(t, ids[0], third.Assessments[0].ID)

	_, err = f.svc.History(context.Background(), testUser, pagination.Pagination{PageToken: "%%%"})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

func TestHighRiskUsesLatestPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := testUser + 1

	gomock.InOrder(
		f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{BurnoutPercentage: pct(0.9)}, nil),
		f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{BurnoutPercentage: pct(0.2)}, nil),
		f.predictor.EXPECT().Predict(gomock.Any(), gomock.Any()).Return(domain.Prediction{BurnoutPercentage: pct(0.8)}, nil),
	)

	_, err := f.svc.Assess(ctx, testUser)
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	_, err = f.svc.Assess(ctx, testUser)
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	_, err = f.svc.Assess(ctx, other)
	require.NoError(t, err)

	items, err := f.svc.HighRisk(ctx, 0.7, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, other, items[0].UserID)

	_, err = f.svc.HighRisk(ctx, -1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
}

func TestRequiresUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Assess(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
	_, err = f.svc.Latest(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}
