package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/burnout/internal/auth/domain"
	burnoutdomain "github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/internal/config"
	healthdomain "github.com/smallbiznis/burnout/internal/healthdata/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("dashboard",
	fx.Provide(NewMapper),
	fx.Provide(New),
)

const defaultName = "User"

type Point struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

type MetricView struct {
	Average *float64 `json:"average"`
	Score   string   `json:"score"`
	Insight string   `json:"insight"`
	Series  []Point  `json:"series"`
}

type RiskView struct {
	Risk            *float64   `json:"burnoutRisk"`
	Level           string     `json:"level"`
	Percentage      *int       `json:"percentage"`
	Recommendations []string   `json:"recommendations"`
	AssessedAt      *time.Time `json:"date,omitempty"`
}

type View struct {
	Name     string                `json:"name"`
	Records  []healthdomain.Record `json:"healthData"`
	Sleep    MetricView            `json:"sleep"`
	Stress   MetricView            `json:"stress"`
	Activity MetricView            `json:"activity"`
	Burnout  RiskView              `json:"burnout"`
}

type Params struct {
	fx.In

	Log        *zap.Logger
	HealthData healthdomain.Service
	Burnout    burnoutdomain.Service
	Users      authdomain.Service `optional:"true"`
	Mapper     *Mapper
}

type Service struct {
	log        *zap.Logger
	healthData healthdomain.Service
	burnout    burnoutdomain.Service
	users      authdomain.Service
	mapper     *Mapper
}

func New(p Params) *Service {
	mapper := p.Mapper
	if mapper == nil {
		mapper = NewMapper(config.NewStaticInsightConfigHolder(config.DefaultInsightConfig()))
	}
	return &Service{
		log:        p.Log.Named("dashboard.service"),
		healthData: p.HealthData,
		burnout:    p.Burnout,
		users:      p.Users,
		mapper:     mapper,
	}
}

// Dashboard builds the view from the most recent records and the latest assessment.
func (s *Service) Dashboard(ctx context.Context, userID snowflake.ID) (View, error) {
	records, err := s.healthData.ListRecent(ctx, userID)
	if err != nil {
		return View{}, err
	}
	latest, err := s.burnout.Latest(ctx, userID)
	if err != nil {
		return View{}, err
	}

	view := Build(s.mapper, records, latest)
	view.Name = s.userName(ctx, userID)
	return view, nil
}

func (s *Service) userName(ctx context.Context, userID snowflake.ID) string {
	if s.users == nil {
		return defaultName
	}
	user, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		s.log.Debug("profile lookup failed", zap.Error(err))
		return defaultName
	}
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	return defaultName
}

// Build maps newest-first records and an optional assessment into a View. Chart series run
// oldest to newest.
func Build(m *Mapper, records []healthdomain.Record, latest *burnoutdomain.Assessment) View {
	n := len(records)
	sleep := make([]float64, n)
	stress := make([]float64, n)
	activity := make([]float64, n)
	sleepSeries := make([]Point, n)
	stressSeries := make([]Point, n)
	activitySeries := make([]Point, n)

	for i, r := range records {
		if r.SleepDuration != nil {
			sleep[i] = *r.SleepDuration
		}
		if r.StressLevel != nil {
			stress[i] = float64(*r.StressLevel)
		}
		activity[i] = healthdomain.ActivityScore(r.ActivityLevel)

		pos := n - 1 - i
		day := weekday(r)
		sleepSeries[pos] = Point{Day: day, Value: sleep[i]}
		stressSeries[pos] = Point{Day: day, Value: stress[i]}
		activitySeries[pos] = Point{Day: day, Value: activity[i]}
	}

	avgSleep, avgStress, avgActivity := Mean(sleep), Mean(stress), Mean(activity)
	if records == nil {
		records = []healthdomain.Record{}
	}

	view := View{
		Name:    defaultName,
		Records: records,
		Sleep: MetricView{
			Average: avgSleep,
			Score:   ScoreText(avgSleep),
			Insight: m.SleepInsight(avgSleep),
			Series:  sleepSeries,
		},
		Stress: MetricView{
			Average: avgStress,
			Score:   ScoreText(avgStress),
			Insight: m.StressInsight(avgStress),
			Series:  stressSeries,
		},
		Activity: MetricView{
			Average: avgActivity,
			Score:   ScoreText(avgActivity),
			Insight: m.ActivityInsight(avgActivity),
			Series:  activitySeries,
		},
		Burnout: RiskView{
			Level:           RiskUnknown,
			Recommendations: []string{},
		},
	}

	if latest != nil {
		risk := latest.BurnoutRisk
		assessedAt := latest.AssessedAt
		view.Burnout = RiskView{
			Risk:            &risk,
			Level:           m.RiskLevel(&risk),
			Percentage:      RiskPercentage(&risk),
			Recommendations: append([]string{}, latest.Recommendations...),
			AssessedAt:      &assessedAt,
		}
	}
	return view
}

// weekday labels a record by its calendar day, which is already in the application time zone.
func weekday(r healthdomain.Record) string {
	if t, err := time.Parse(time.DateOnly, r.Day); err == nil {
		return t.Format("Mon")
	}
	return r.RecordedAt.Format("Mon")
}
