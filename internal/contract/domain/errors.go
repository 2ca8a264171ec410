package domain

import "errors"

var (
	ErrContractNotFound    = errors.New("contract_not_found")
	ErrInvalidContractID   = errors.New("invalid_contract_id")
	ErrInvalidOrganisation = errors.New("invalid_organisation")
)
