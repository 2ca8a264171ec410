package holiday

import (
	"github.com/smallbiznis/debitplan/internal/holiday/repository"
	"github.com/smallbiznis/debitplan/internal/holiday/service"
	"go.uber.org/fx"
)

var Module = fx.Module("holiday.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewCalendar),
)
