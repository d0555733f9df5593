package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/burnout/internal/auth"
	"github.com/smallbiznis/burnout/internal/authorization"
	"github.com/smallbiznis/burnout/internal/burnout"
	"github.com/smallbiznis/burnout/internal/checkin"
	"github.com/smallbiznis/burnout/internal/clock"
	"github.com/smallbiznis/burnout/internal/config"
	"github.com/smallbiznis/burnout/internal/dashboard"
	"github.com/smallbiznis/burnout/internal/healthdata"
	"github.com/smallbiznis/burnout/internal/migration"
	"github.com/smallbiznis/burnout/internal/observability"
	"github.com/smallbiznis/burnout/internal/ratelimit"
	"github.com/smallbiznis/burnout/internal/server"
	"github.com/smallbiznis/burnout/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Domains
		auth.Module,
		authorization.Module,
		healthdata.Module,
		burnout.Module,
		checkin.Module,
		dashboard.Module,
		ratelimit.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
