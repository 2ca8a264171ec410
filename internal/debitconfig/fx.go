package debitconfig

import (
	"github.com/smallbiznis/debitplan/internal/debitconfig/repository"
	"github.com/smallbiznis/debitplan/internal/debitconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("debitconfig.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewResolver),
)
