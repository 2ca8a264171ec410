package contract

import (
	"github.com/smallbiznis/debitplan/internal/contract/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("contract.directory",
	fx.Provide(repository.NewRepository),
	fx.Provide(repository.NewDirectory),
)
