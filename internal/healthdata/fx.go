package healthdata

import (
	"github.com/smallbiznis/burnout/internal/healthdata/repository"
	"github.com/smallbiznis/burnout/internal/healthdata/service"
	"go.uber.org/fx"
)

var Module = fx.Module("healthdata.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
