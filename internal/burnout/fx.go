package burnout

import (
	"github.com/smallbiznis/burnout/internal/burnout/predictor"
	"github.com/smallbiznis/burnout/internal/burnout/repository"
	"github.com/smallbiznis/burnout/internal/burnout/service"
	"go.uber.org/fx"
)

var Module = fx.Module("burnout.service",
	fx.Provide(repository.Provide),
	fx.Provide(predictor.Provide),
	fx.Provide(service.New),
)
