package domain

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultWeekend is used when a zone does not define its own weekend days.
var DefaultWeekend = []time.Weekday{time.Saturday, time.Sunday}

// HolidayZone is a jurisdiction-specific calendar of non-business days.
// Zone ids are unique per organisation.
type HolidayZone struct {
	ID             string `gorm:"primaryKey;type:text"`
	OrganisationID string `gorm:"primaryKey;column:organisation_id;type:text"`
	Name           string `gorm:"type:text;not null;default:''"`

	WeekendDays datatypes.JSONSlice[time.Weekday] `gorm:"column:weekend_days"`
	Holidays    []Holiday                         `gorm:"-"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (HolidayZone) TableName() string { return "holiday_zones" }

// Weekend returns the zone's weekend days, falling back to Saturday and Sunday.
func (z HolidayZone) Weekend() []time.Weekday {
	if len(z.WeekendDays) == 0 {
		return DefaultWeekend
	}
	return z.WeekendDays
}

// Holiday is a single non-business date. Recurring holidays match on month/day for every year.
type Holiday struct {
	ID             string    `gorm:"primaryKey;type:text"`
	ZoneID         string    `gorm:"column:zone_id;type:text;not null;index:ix_holidays_zone,priority:2"`
	OrganisationID string    `gorm:"column:organisation_id;type:text;not null;index:ix_holidays_zone,priority:1"`
	Date           time.Time `gorm:"type:date;not null"`
	Name           string    `gorm:"type:text;not null"`
	Recurring      bool      `gorm:"not null;default:false"`
}

func (Holiday) TableName() string { return "holidays" }

// Direction tells nearestBusinessDay which way to walk.
type Direction string

const (
	DirectionForward  Direction = "FORWARD"
	DirectionBackward Direction = "BACKWARD"
)

// Step returns +1 or -1 days.
func (d Direction) Step() int {
	if d == DirectionBackward {
		return -1
	}
	return 1
}

// MaxShiftDays bounds the search for a business day.
const MaxShiftDays = 60

// Eligibility is the verdict for one date in one zone. Both neighbouring
// eligible dates are always computed; they equal Date when it is eligible.
type Eligibility struct {
	Date                 time.Time
	IsEligible           bool
	IsWeekend            bool
	IsHoliday            bool
	HolidayName          string
	NextEligibleDate     time.Time
	PreviousEligibleDate time.Time
}
