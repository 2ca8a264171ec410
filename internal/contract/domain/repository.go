package domain

import "context"

// Directory is the read side of the contract store.
type Directory interface {
	GetContract(ctx context.Context, organisationID, contratID string) (*ContractRef, error)
}

type Repository interface {
	Directory
	Create(ctx context.Context, ref *ContractRef) error
}
