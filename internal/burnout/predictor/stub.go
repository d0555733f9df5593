package predictor

import (
	"context"

	"github.com/smallbiznis/burnout/internal/burnout/domain"
)

const stubPercentage = 11

var stubRecommendations = []string{"Take a break", "Go for a walk", "Talk to a friend", "Sleep well"}

// StubPredictor returns a fixed prediction. It is only used when configured explicitly.
type StubPredictor struct{}

func (StubPredictor) Source() domain.Source { return domain.SourceStub }

func (StubPredictor) Predict(context.Context, domain.Snapshot) (domain.Prediction, error) {
	pct := float64(stubPercentage)
	recs := make([]string, len(stubRecommendations))
	copy(recs, stubRecommendations)
	return domain.Prediction{BurnoutPercentage: &pct, Recommendations: recs}, nil
}
