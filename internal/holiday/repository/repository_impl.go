package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"github.com/smallbiznis/debitplan/pkg/db"
	"github.com/smallbiznis/debitplan/pkg/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Param struct {
	fx.In

	DB    *gorm.DB
	GenID *snowflake.Node
}

type repo struct {
	db       *gorm.DB
	genID    *snowflake.Node
	zones    repository.Repository[holidaydomain.HolidayZone]
	holidays repository.Repository[holidaydomain.Holiday]
}

func NewRepository(p Param) holidaydomain.Repository {
	return &repo{
		db:       p.DB,
		genID:    p.GenID,
		zones:    repository.ProvideStore[holidaydomain.HolidayZone](p.DB),
		holidays: repository.ProvideStore[holidaydomain.Holiday](p.DB),
	}
}

func (r *repo) GetHolidayZone(ctx context.Context, organisationID, zoneID string) (*holidaydomain.HolidayZone, error) {
	zone, err := r.zones.FindOne(ctx, &holidaydomain.HolidayZone{
		ID:             zoneID,
		OrganisationID: organisationID,
	})
	if err != nil {
		return nil, fmt.Errorf("load holiday zone %s: %w", zoneID, err)
	}
	if zone == nil {
		return nil, nil
	}

	holidays, err := r.holidays.Find(ctx, &holidaydomain.Holiday{
		ZoneID:         zoneID,
		OrganisationID: organisationID,
	}, repository.WithOrder("date ASC"))
	if err != nil {
		return nil, fmt.Errorf("load holidays of zone %s: %w", zoneID, err)
	}

	zone.Holidays = make([]holidaydomain.Holiday, 0, len(holidays))
	for _, h := range holidays {
		h.Date = caldate.Normalize(h.Date)
		zone.Holidays = append(zone.Holidays, *h)
	}
	return zone, nil
}

func (r *repo) Create(ctx context.Context, zone *holidaydomain.HolidayZone) error {
	if zone.ID == "" {
		return holidaydomain.ErrInvalidZoneID
	}
	if zone.OrganisationID == "" {
		return holidaydomain.ErrInvalidOrganisation
	}

	now := time.Now().UTC()
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = now
	}
	zone.UpdatedAt = now

	holidays := make([]*holidaydomain.Holiday, 0, len(zone.Holidays))
	for i := range zone.Holidays {
		h := &zone.Holidays[i]
		if h.Name == "" {
			return holidaydomain.ErrInvalidHolidayName
		}
		if h.ID == "" {
			h.ID = r.genID.Generate().String()
		}
		h.ZoneID = zone.ID
		h.OrganisationID = zone.OrganisationID
		h.Date = caldate.Normalize(h.Date)
		holidays = append(holidays, h)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.zones.WithTrx(tx).Create(ctx, zone); err != nil {
			return db.TranslateWriteErr(err)
		}
		return db.TranslateWriteErr(r.holidays.WithTrx(tx).BatchCreate(ctx, holidays))
	})
}
