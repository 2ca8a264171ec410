package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
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
	genID   *snowflake.Node
	configs repository.Repository[debitdomain.DebitConfig]
}

func NewRepository(p Param) debitdomain.Repository {
	return &repo{
		genID:   p.GenID,
		configs: repository.ProvideStore[debitdomain.DebitConfig](p.DB),
	}
}

func (r *repo) ListByOwner(ctx context.Context, organisationID string, owner debitdomain.Owner) ([]debitdomain.DebitConfig, error) {
	if owner.IsZero() {
		return nil, debitdomain.ErrInvalidOwner
	}

	rows, err := r.configs.Find(ctx, &debitdomain.DebitConfig{OrganisationID: organisationID},
		repository.WithWhere("level = ? AND owner_id = ?", owner.Level(), owner.ID()),
		repository.WithOrder("effective_from DESC, id DESC"),
	)
	if err != nil {
		return nil, fmt.Errorf("list debit configs of %s: %w", owner, err)
	}

	out := make([]debitdomain.DebitConfig, 0, len(rows))
	for _, row := range rows {
		row.EffectiveFrom = caldate.Normalize(row.EffectiveFrom)
		if row.EffectiveTo != nil {
			to := caldate.Normalize(*row.EffectiveTo)
			row.EffectiveTo = &to
		}
		out = append(out, *row)
	}
	return out, nil
}

func (r *repo) Create(ctx context.Context, cfg *debitdomain.DebitConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.ID == "" {
		cfg.ID = r.genID.Generate().String()
	}
	if cfg.DefaultBatch == 0 {
		cfg.DefaultBatch = 1
	}

	cfg.EffectiveFrom = caldate.Normalize(cfg.EffectiveFrom)
	if cfg.EffectiveTo != nil {
		to := caldate.Normalize(*cfg.EffectiveTo)
		cfg.EffectiveTo = &to
	}

	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	return db.TranslateWriteErr(r.configs.Create(ctx, cfg))
}
