package domain

import "time"

// ContractRef is the slice of a contract the planner needs to walk the
// configuration hierarchy.
type ContractRef struct {
	ID             string    `gorm:"primaryKey;type:text" json:"id"`
	OrganisationID string    `gorm:"column:organisation_id;primaryKey;type:text" json:"organisation_id"`
	ClientID       string    `gorm:"column:client_id;type:text;not null;default:''" json:"client_id"`
	SocieteID      string    `gorm:"column:societe_id;type:text;not null;default:''" json:"societe_id"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ContractRef) TableName() string { return "contracts" }
