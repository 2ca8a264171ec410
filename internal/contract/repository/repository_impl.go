package repository

import (
	"context"
	"fmt"
	"time"

	contractdomain "github.com/smallbiznis/debitplan/internal/contract/domain"
	"github.com/smallbiznis/debitplan/pkg/db"
	"github.com/smallbiznis/debitplan/pkg/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Param struct {
	fx.In

	DB *gorm.DB
}

type repo struct {
	contracts repository.Repository[contractdomain.ContractRef]
}

func NewRepository(p Param) contractdomain.Repository {
	return &repo{contracts: repository.ProvideStore[contractdomain.ContractRef](p.DB)}
}

func NewDirectory(r contractdomain.Repository) contractdomain.Directory { return r }

// GetContract fails with ErrContractNotFound when the contract is unknown to the organisation.
func (r *repo) GetContract(ctx context.Context, organisationID, contratID string) (*contractdomain.ContractRef, error) {
	if contratID == "" {
		return nil, contractdomain.ErrInvalidContractID
	}

	ref, err := r.contracts.FindOne(ctx, &contractdomain.ContractRef{ID: contratID, OrganisationID: organisationID})
	if err != nil {
		return nil, fmt.Errorf("load contract %s: %w", contratID, err)
	}
	if ref == nil {
		return nil, contractdomain.ErrContractNotFound
	}
	return ref, nil
}

func (r *repo) Create(ctx context.Context, ref *contractdomain.ContractRef) error {
	if ref.ID == "" {
		return contractdomain.ErrInvalidContractID
	}
	if ref.OrganisationID == "" {
		return contractdomain.ErrInvalidOrganisation
	}

	now := time.Now().UTC()
	if ref.CreatedAt.IsZero() {
		ref.CreatedAt = now
	}
	ref.UpdatedAt = now

	return db.TranslateWriteErr(r.contracts.Create(ctx, ref))
}
