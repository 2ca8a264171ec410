package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/debitplan/internal/cache"
	"github.com/smallbiznis/debitplan/internal/config"
	"github.com/smallbiznis/debitplan/internal/contract"
	"github.com/smallbiznis/debitplan/internal/cutoff"
	"github.com/smallbiznis/debitplan/internal/debitconfig"
	"github.com/smallbiznis/debitplan/internal/holiday"
	"github.com/smallbiznis/debitplan/internal/migration"
	"github.com/smallbiznis/debitplan/internal/observability"
	"github.com/smallbiznis/debitplan/internal/planner"
	"github.com/smallbiznis/debitplan/internal/server"
	"github.com/smallbiznis/debitplan/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Reference data
		holiday.Module,
		cache.Module,
		debitconfig.Module,
		cutoff.Module,
		contract.Module,

		planner.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
