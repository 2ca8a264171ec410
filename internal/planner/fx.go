package planner

import (
	"github.com/smallbiznis/debitplan/internal/planner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("planner.service",
	fx.Provide(service.NewPlanner),
)
