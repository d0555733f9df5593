package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/internal/observability/tracing"
	"github.com/smallbiznis/burnout/pkg/telemetry/correlation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

type predictResponse struct {
	BurnoutPercentage *float64 `json:"burnout_percentage"`
	Recommendations   []string `json:"recommendations"`
}

// HTTPPredictor calls the remote burnout prediction endpoint.
type HTTPPredictor struct {
	log    *zap.Logger
	client *resty.Client
	url    string
}

func NewHTTPPredictor(log *zap.Logger, url, token string, timeout time.Duration) *HTTPPredictor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if token = strings.TrimSpace(token); token != "" {
		c.SetAuthToken(token)
	}

	return &HTTPPredictor{
		log:    log.Named("burnout.predictor"),
		client: c,
		url:    url,
	}
}

func (p *HTTPPredictor) Source() domain.Source { return domain.SourceHTTP }

// Predict posts the snapshot. Transport failures, non-2xx answers and undecodable bodies all
// wrap domain.ErrExternalService.
func (p *HTTPPredictor) Predict(ctx context.Context, snapshot domain.Snapshot) (domain.Prediction, error) {
	ctx, span := otel.Tracer("burnout/predictor").Start(ctx, "predictor.predict", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	ctx, cid := correlation.EnsureCorrelationID(ctx)
	headers := map[string]string{correlation.Header: cid}
	tracing.InjectContext(ctx, propagation.MapCarrier(headers))

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(&snapshot).
		Post(p.url)
	if err != nil {
		span.RecordError(tracing.SafeError(err))
		span.SetStatus(codes.Error, "transport error")
		p.log.Warn("predictor request failed", zap.String("correlation_id", cid), zap.Error(err))
		return domain.Prediction{}, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if !resp.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected status")
		p.log.Warn("predictor returned non-success status",
			zap.String("correlation_id", cid),
			zap.Int("status_code", resp.StatusCode()),
		)
		return domain.Prediction{}, fmt.Errorf("%w: status %d", domain.ErrExternalService, resp.StatusCode())
	}

	var body predictResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		span.SetStatus(codes.Error, "decode error")
		return domain.Prediction{}, fmt.Errorf("%w: decode response: %v", domain.ErrExternalService, err)
	}

	return domain.Prediction{
		BurnoutPercentage: body.BurnoutPercentage,
		Recommendations:   body.Recommendations,
	}, nil
}
