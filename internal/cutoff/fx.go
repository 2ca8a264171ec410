package cutoff

import (
	"github.com/smallbiznis/debitplan/internal/cutoff/repository"
	"github.com/smallbiznis/debitplan/internal/cutoff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cutoff.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewAssigner),
)
