package cache

import (
	"github.com/smallbiznis/debitplan/internal/config"
	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module decorates at the scope it is included in; include it at the app root
// so every consumer of holidaydomain.Repository gets the cached one.
var Module = fx.Options(
	fx.Decorate(func(repo holidaydomain.Repository, cfg *config.PlannerConfigHolder, log *zap.Logger) holidaydomain.Repository {
		return NewHolidayZoneCache(repo, cfg, log)
	}),
)
