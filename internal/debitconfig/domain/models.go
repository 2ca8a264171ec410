package domain

import (
	"time"

	"github.com/smallbiznis/debitplan/pkg/caldate"
)

// Mode decides how the naive debit date is derived for a period.
type Mode string

const (
	ModeFixedDay          Mode = "FIXED_DAY"
	ModeEndOfMonth        Mode = "END_OF_MONTH"
	ModeRelativeToInvoice Mode = "RELATIVE_TO_INVOICE"
)

// ShiftStrategy moves a non-business naive date onto a business day.
type ShiftStrategy string

const (
	ShiftNextBusinessDay     ShiftStrategy = "NEXT_BUSINESS_DAY"
	ShiftPreviousBusinessDay ShiftStrategy = "PREVIOUS_BUSINESS_DAY"
	ShiftNearestBusinessDay  ShiftStrategy = "NEAREST_BUSINESS_DAY"
)

// DebitConfig is a debit-cycle configuration record. At most one record per
// (organisation, level, owner) should be effective at any instant; the resolver
// tolerates violations.
type DebitConfig struct {
	ID             string `gorm:"primaryKey;type:text"`
	OrganisationID string `gorm:"column:organisation_id;type:text;not null;index:ix_debit_configs_owner,priority:1"`
	Level          Level  `gorm:"type:text;not null;index:ix_debit_configs_owner,priority:2"`
	OwnerID        string `gorm:"column:owner_id;type:text;not null;default:'';index:ix_debit_configs_owner,priority:3"`

	Mode              Mode          `gorm:"type:text;not null"`
	FixedDay          int           `gorm:"column:fixed_day;not null;default:0"`
	InvoiceOffsetDays int           `gorm:"column:invoice_offset_days;not null;default:0"`
	ShiftStrategy     ShiftStrategy `gorm:"column:shift_strategy;type:text;not null"`
	HolidayZoneID     string        `gorm:"column:holiday_zone_id;type:text;not null"`
	CutoffConfigID    string        `gorm:"column:cutoff_config_id;type:text;not null;default:''"`
	DefaultBatch      int           `gorm:"column:default_batch;not null;default:1"`

	EffectiveFrom time.Time  `gorm:"column:effective_from;type:date;not null"`
	EffectiveTo   *time.Time `gorm:"column:effective_to;type:date"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DebitConfig) TableName() string { return "debit_configs" }

// Owner returns the typed owner of the record.
func (c DebitConfig) Owner() (Owner, error) {
	return OwnerFor(c.Level, c.OwnerID)
}

// Covers reports whether asOf lies in the effective window [from, to).
func (c DebitConfig) Covers(asOf time.Time) bool {
	var to time.Time
	if c.EffectiveTo != nil {
		to = *c.EffectiveTo
	}
	return caldate.Within(asOf, c.EffectiveFrom, to)
}

func (c *DebitConfig) Validate() error {
	if c.OrganisationID == "" {
		return ErrInvalidOrganisation
	}
	if _, err := c.Owner(); err != nil {
		return err
	}
	if c.Level == LevelOrganisation && c.OwnerID != "" {
		return ErrInvalidOwner
	}
	switch c.Mode {
	case ModeFixedDay:
		if c.FixedDay < 1 || c.FixedDay > 31 {
			return ErrInvalidFixedDay
		}
	case ModeEndOfMonth, ModeRelativeToInvoice:
	default:
		return ErrInvalidMode
	}
	switch c.ShiftStrategy {
	case ShiftNextBusinessDay, ShiftPreviousBusinessDay, ShiftNearestBusinessDay:
	default:
		return ErrInvalidShiftStrategy
	}
	if c.HolidayZoneID == "" {
		return ErrInvalidHolidayZone
	}
	if c.EffectiveFrom.IsZero() {
		return ErrInvalidEffectiveWindow
	}
	if c.EffectiveTo != nil && !caldate.Normalize(*c.EffectiveTo).After(caldate.Normalize(c.EffectiveFrom)) {
		return ErrInvalidEffectiveWindow
	}
	return nil
}

// ResolvedDebitConfig is the immutable snapshot of the configuration used for
// one planning call. It is never cached across calls.
type ResolvedDebitConfig struct {
	AppliedLevel      Level         `json:"applied_level"`
	AppliedConfigID   string        `json:"applied_config_id"`
	Mode              Mode          `json:"mode"`
	Batch             int           `json:"batch"`
	FixedDay          int           `json:"fixed_day,omitempty"`
	InvoiceOffsetDays int           `json:"invoice_offset_days,omitempty"`
	ShiftStrategy     ShiftStrategy `json:"shift_strategy"`
	HolidayZoneID     string        `json:"holiday_zone_id"`
	CutoffConfigID    string        `json:"cutoff_config_id,omitempty"`
}

// Snapshot copies the fields of c that drive planning.
func (c DebitConfig) Snapshot() ResolvedDebitConfig {
	return ResolvedDebitConfig{
		AppliedLevel:      c.Level,
		AppliedConfigID:   c.ID,
		Mode:              c.Mode,
		Batch:             c.DefaultBatch,
		FixedDay:          c.FixedDay,
		InvoiceOffsetDays: c.InvoiceOffsetDays,
		ShiftStrategy:     c.ShiftStrategy,
		HolidayZoneID:     c.HolidayZoneID,
		CutoffConfigID:    c.CutoffConfigID,
	}
}
