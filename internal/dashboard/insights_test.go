package dashboard

import (
	"testing"

	"github.com/smallbiznis/burnout/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func f(v float64) *float64 { return &v }

func TestInsights(t *testing.T) {
	m := NewMapper(config.NewStaticInsightConfigHolder(config.DefaultInsightConfig()))

	Convey("Stress insights follow the stress bands", t, func() {
		So(m.StressInsight(nil), ShouldEqual, "No stress data available")
		So(m.StressInsight(f(3)), ShouldEqual, "Low Stress Levels")
		So(m.StressInsight(f(3.01)), ShouldEqual, "Moderate Stress Levels")
		So(m.StressInsight(f(6)), ShouldEqual, "Moderate Stress Levels")
		So(m.StressInsight(f(6.5)), ShouldEqual, "High Stress Levels, Consider Stress Management")
	})

	Convey("Sleep insights follow the sleep bands", t, func() {
		So(m.SleepInsight(nil), ShouldEqual, "No sleep data available")
		So(m.SleepInsight(f(6.9)), ShouldEqual, "Consider More Sleep")
		So(m.SleepInsight(f(7)), ShouldEqual, "Optimal Sleep Duration")
		So(m.SleepInsight(f(9)), ShouldEqual, "Optimal Sleep Duration")
		So(m.SleepInsight(f(9.1)), ShouldEqual, "Excessive Sleep, Consider Adjusting")
	})

	Convey("Activity insights follow the activity bands", t, func() {
		So(m.ActivityInsight(nil), ShouldEqual, "No activity data available")
		So(m.ActivityInsight(f(1.5)), ShouldEqual, "Consider Increasing Activity")
		So(m.ActivityInsight(f(2.5)), ShouldEqual, "Moderate Activity Level")
		So(m.ActivityInsight(f(2.6)), ShouldEqual, "Good Activity Level")
	})

	Convey("Risk levels use exclusive upper bounds", t, func() {
		So(m.RiskLevel(nil), ShouldEqual, RiskUnknown)
		So(m.RiskLevel(f(0.2)), ShouldEqual, RiskLow)
		So(m.RiskLevel(f(0.3)), ShouldEqual, RiskModerate)
		So(m.RiskLevel(f(0.5)), ShouldEqual, RiskModerate)
		So(m.RiskLevel(f(0.7)), ShouldEqual, RiskHigh)
		So(m.RiskLevel(f(0.9)), ShouldEqual, RiskHigh)
	})

	Convey("Risk percentage rounds risk*100", t, func() {
		So(RiskPercentage(nil), ShouldBeNil)
		So(*RiskPercentage(f(0.456)), ShouldEqual, 46)
		So(*RiskPercentage(f(11)), ShouldEqual, 1100)
	})

	Convey("Scores render with one decimal", t, func() {
		So(ScoreText(nil), ShouldEqual, "N/A")
		So(ScoreText(f(7.26)), ShouldEqual, "7.3/10")
		So(ScoreText(f(4)), ShouldEqual, "4.0/10")
	})

	Convey("A nil mapper falls back to default thresholds", t, func() {
		var nilMapper *Mapper
		So(nilMapper.StressInsight(f(2)), ShouldEqual, "Low Stress Levels")
	})
}

func TestInsightsFollowConfiguredThresholds(t *testing.T) {
	cfg := config.DefaultInsightConfig()
	cfg.Stress.LowMax = 2
	cfg.Risk.LowBelow = 0.1
	m := NewMapper(config.NewStaticInsightConfigHolder(cfg))

	Convey("Custom thresholds change the bands", t, func() {
		So(m.StressInsight(f(3)), ShouldEqual, "Moderate Stress Levels")
		So(m.RiskLevel(f(0.2)), ShouldEqual, RiskModerate)
	})
}
