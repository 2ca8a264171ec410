package domain

import "strings"

// Level is a tier of the configuration hierarchy.
type Level string

const (
	LevelOrganisation Level = "ORGANISATION"
	LevelCompany      Level = "COMPANY"
	LevelClient       Level = "CLIENT"
	LevelContract     Level = "CONTRACT"
)

// Precedence lists levels most specific first.
var Precedence = []Level{LevelContract, LevelClient, LevelCompany, LevelOrganisation}

func (l Level) Valid() bool {
	switch l {
	case LevelOrganisation, LevelCompany, LevelClient, LevelContract:
		return true
	default:
		return false
	}
}

// Owner identifies who a configuration belongs to. The zero value is invalid;
// use the constructors so that an owner id can only exist below the
// organisation level.
type Owner struct {
	level Level
	id    string
}

func OrganisationOwner() Owner      { return Owner{level: LevelOrganisation} }
func CompanyOwner(id string) Owner  { return Owner{level: LevelCompany, id: strings.TrimSpace(id)} }
func ClientOwner(id string) Owner   { return Owner{level: LevelClient, id: strings.TrimSpace(id)} }
func ContractOwner(id string) Owner { return Owner{level: LevelContract, id: strings.TrimSpace(id)} }

// OwnerFor builds the owner for level, ignoring id at the organisation level.
func OwnerFor(level Level, id string) (Owner, error) {
	switch level {
	case LevelOrganisation:
		return OrganisationOwner(), nil
	case LevelCompany:
		return ownerWithID(CompanyOwner(id))
	case LevelClient:
		return ownerWithID(ClientOwner(id))
	case LevelContract:
		return ownerWithID(ContractOwner(id))
	default:
		return Owner{}, ErrInvalidLevel
	}
}

func ownerWithID(o Owner) (Owner, error) {
	if o.id == "" {
		return Owner{}, ErrInvalidOwner
	}
	return o, nil
}

func (o Owner) Level() Level { return o.level }
func (o Owner) ID() string   { return o.id }
func (o Owner) IsZero() bool { return o.level == "" }

func (o Owner) String() string {
	if o.level == LevelOrganisation {
		return string(o.level)
	}
	return string(o.level) + ":" + o.id
}
