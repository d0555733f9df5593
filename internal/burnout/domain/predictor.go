package domain

import "context"

//go:generate mockgen -destination=../mock/mock_predictor.go -package=mock . Predictor

// Predictor scores a snapshot. Implementations return an error wrapping ErrExternalService when
// the prediction could not be obtained.
type Predictor interface {
	Predict(ctx context.Context, snapshot Snapshot) (Prediction, error)
	Source() Source
}
