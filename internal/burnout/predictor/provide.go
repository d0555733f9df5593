package predictor

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/internal/config"
	"go.uber.org/zap"
)

// Provide selects the predictor named by PREDICTOR_MODE.
func Provide(cfg config.Config, log *zap.Logger) (domain.Predictor, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Predictor.Mode))
	switch mode {
	case config.PredictorModeStub:
		log.Warn("using stub burnout predictor")
		return StubPredictor{}, nil
	case config.PredictorModeHTTP, "":
		if strings.TrimSpace(cfg.Predictor.URL) == "" {
			return nil, fmt.Errorf("predictor url is required in %s mode", config.PredictorModeHTTP)
		}
		return NewHTTPPredictor(log, cfg.Predictor.URL, cfg.Predictor.Token, cfg.Predictor.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown predictor mode %q", cfg.Predictor.Mode)
	}
}
