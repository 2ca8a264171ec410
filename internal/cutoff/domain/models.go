package domain

import "time"

// CutoffConfig groups debits of a billing period into processing batches.
type CutoffConfig struct {
	ID             string         `gorm:"primaryKey;type:text"`
	OrganisationID string         `gorm:"column:organisation_id;primaryKey;type:text"`
	Name           string         `gorm:"type:text"`
	Windows        []CutoffWindow `gorm:"-"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CutoffConfig) TableName() string { return "cutoff_configs" }

// CutoffWindow opens batch BatchNumber from CutoffDay of the month onwards.
type CutoffWindow struct {
	ID             string `gorm:"primaryKey;type:text"`
	CutoffConfigID string `gorm:"column:cutoff_config_id;type:text;not null;index"`
	OrganisationID string `gorm:"column:organisation_id;type:text;not null;index"`
	CutoffDay      int    `gorm:"column:cutoff_day;not null"`
	BatchNumber    int    `gorm:"column:batch_number;not null"`
}

func (CutoffWindow) TableName() string { return "cutoff_windows" }

// Assignment is the batch chosen for a date and the window that produced it.
type Assignment struct {
	BatchNumber int  `json:"batch_number"`
	CutoffDay   int  `json:"cutoff_day"`
	Wrapped     bool `json:"wrapped"`
}
