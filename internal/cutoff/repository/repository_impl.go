package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
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
	db      *gorm.DB
	genID   *snowflake.Node
	configs repository.Repository[cutoffdomain.CutoffConfig]
	windows repository.Repository[cutoffdomain.CutoffWindow]
}

func NewRepository(p Param) cutoffdomain.Repository {
	return &repo{
		db:      p.DB,
		genID:   p.GenID,
		configs: repository.ProvideStore[cutoffdomain.CutoffConfig](p.DB),
		windows: repository.ProvideStore[cutoffdomain.CutoffWindow](p.DB),
	}
}

func (r *repo) GetCutoffConfig(ctx context.Context, organisationID, cutoffConfigID string) (*cutoffdomain.CutoffConfig, error) {
	cfg, err := r.configs.FindOne(ctx, &cutoffdomain.CutoffConfig{ID: cutoffConfigID, OrganisationID: organisationID})
	if err != nil {
		return nil, fmt.Errorf("load cutoff config %s: %w", cutoffConfigID, err)
	}
	if cfg == nil {
		return nil, nil
	}

	windows, err := r.windows.Find(ctx, &cutoffdomain.CutoffWindow{
		CutoffConfigID: cutoffConfigID,
		OrganisationID: organisationID,
	}, repository.WithOrder("cutoff_day ASC"))
	if err != nil {
		return nil, fmt.Errorf("load cutoff windows of %s: %w", cutoffConfigID, err)
	}

	cfg.Windows = make([]cutoffdomain.CutoffWindow, 0, len(windows))
	for _, w := range windows {
		cfg.Windows = append(cfg.Windows, *w)
	}
	return cfg, nil
}

func (r *repo) Create(ctx context.Context, cfg *cutoffdomain.CutoffConfig) error {
	if cfg.ID == "" {
		return cutoffdomain.ErrInvalidCutoffConfigID
	}
	if cfg.OrganisationID == "" {
		return cutoffdomain.ErrInvalidOrganisation
	}

	windows := make([]*cutoffdomain.CutoffWindow, 0, len(cfg.Windows))
	for i := range cfg.Windows {
		w := &cfg.Windows[i]
		if w.CutoffDay < 1 || w.CutoffDay > 31 {
			return cutoffdomain.ErrInvalidCutoffDay
		}
		if w.BatchNumber < 1 {
			return cutoffdomain.ErrInvalidBatchNumber
		}
		if w.ID == "" {
			w.ID = r.genID.Generate().String()
		}
		w.CutoffConfigID = cfg.ID
		w.OrganisationID = cfg.OrganisationID
		windows = append(windows, w)
	}

	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.configs.WithTrx(tx).Create(ctx, cfg); err != nil {
			return db.TranslateWriteErr(err)
		}
		return db.TranslateWriteErr(r.windows.WithTrx(tx).BatchCreate(ctx, windows))
	})
}
