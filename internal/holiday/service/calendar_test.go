package service

import (
	"context"
	"errors"
	"testing"
	"time"

	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type zoneRepoStub struct {
	zones map[string]*holidaydomain.HolidayZone
	err   error
	calls int
}

func (s *zoneRepoStub) GetHolidayZone(_ context.Context, organisationID, zoneID string) (*holidaydomain.HolidayZone, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.zones[organisationID+"/"+zoneID], nil
}

func (s *zoneRepoStub) Create(context.Context, *holidaydomain.HolidayZone) error { return nil }

func newCalendarFixture(zones ...*holidaydomain.HolidayZone) (*zoneRepoStub, holidaydomain.Calendar) {
	stub := &zoneRepoStub{zones: map[string]*holidaydomain.HolidayZone{}}
	for _, z := range zones {
		stub.zones[z.OrganisationID+"/"+z.ID] = z
	}
	return stub, NewCalendar(CalendarParam{Repository: stub, Log: zap.NewNop()})
}

func frZone() *holidaydomain.HolidayZone {
	return &holidaydomain.HolidayZone{
		ID:             "FR",
		OrganisationID: "ORG1",
		Holidays: []holidaydomain.Holiday{
			{Date: caldate.New(2020, time.January, 1), Name: "Jour de l'An", Recurring: true},
			{Date: caldate.New(2020, time.May, 1), Name: "Fête du Travail", Recurring: true},
			{Date: caldate.New(2026, time.April, 6), Name: "Lundi de Pâques"},
			{Date: caldate.New(2026, time.May, 1), Name: "Fête du Travail 2026"},
		},
	}
}

func TestIsBusinessDay(t *testing.T) {
	ctx := context.Background()
	_, cal := newCalendarFixture(frZone())

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "friday", date: caldate.New(2026, time.January, 2), want: true},
		{name: "saturday", date: caldate.New(2026, time.January, 3), want: false},
		{name: "sunday", date: caldate.New(2026, time.January, 4), want: false},
		{name: "recurring holiday in another year", date: caldate.New(2027, time.January, 1), want: false},
		{name: "fixed holiday", date: caldate.New(2026, time.April, 6), want: false},
		{name: "fixed holiday does not recur", date: caldate.New(2027, time.April, 6), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cal.IsBusinessDay(ctx, "ORG1", "FR", tc.date)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsBusinessDayUnknownZone(t *testing.T) {
	_, cal := newCalendarFixture(frZone())

	_, err := cal.IsBusinessDay(context.Background(), "ORG1", "DE", caldate.New(2026, time.January, 2))
	assert.ErrorIs(t, err, holidaydomain.ErrZoneNotFound)

	_, err = cal.IsBusinessDay(context.Background(), "ORG2", "FR", caldate.New(2026, time.January, 2))
	assert.ErrorIs(t, err, holidaydomain.ErrZoneNotFound)

	_, err = cal.IsBusinessDay(context.Background(), "ORG1", "", caldate.New(2026, time.January, 2))
	assert.ErrorIs(t, err, holidaydomain.ErrZoneNotFound)
}

func TestRepositoryErrorPropagates(t *testing.T) {
	stub, cal := newCalendarFixture()
	stub.err = errors.New("db down")

	_, err := cal.IsBusinessDay(context.Background(), "ORG1", "FR", caldate.New(2026, time.January, 2))
	assert.EqualError(t, err, "db down")
}

func TestInspectPrefersExactHolidayName(t *testing.T) {
	verdict := frZone().Inspect(caldate.New(2026, time.May, 1))
	assert.True(t, verdict.IsHoliday)
	assert.Equal(t, "Fête du Travail 2026", verdict.HolidayName)
	assert.False(t, verdict.IsBusinessDay)
}

func TestInspectWeekendHoliday(t *testing.T) {
	// 2027-05-01 is a Saturday.
	verdict := frZone().Inspect(caldate.New(2027, time.May, 1))
	assert.True(t, verdict.IsWeekend)
	assert.True(t, verdict.IsHoliday)
	assert.Equal(t, "Fête du Travail", verdict.HolidayName)
}

func TestCustomWeekend(t *testing.T) {
	zone := &holidaydomain.HolidayZone{
		ID:             "AE",
		OrganisationID: "ORG1",
		WeekendDays:    datatypes.NewJSONSlice([]time.Weekday{time.Friday, time.Saturday}),
	}
	assert.False(t, zone.Inspect(caldate.New(2026, time.January, 2)).IsBusinessDay)
	assert.True(t, zone.Inspect(caldate.New(2026, time.January, 4)).IsBusinessDay)
}

func TestNearestBusinessDay(t *testing.T) {
	ctx := context.Background()
	_, cal := newCalendarFixture(frZone())

	cases := []struct {
		name      string
		date      time.Time
		direction holidaydomain.Direction
		want      time.Time
	}{
		{name: "business day is returned as is", date: caldate.New(2026, time.January, 2), direction: holidaydomain.DirectionForward, want: caldate.New(2026, time.January, 2)},
		{name: "holiday forward", date: caldate.New(2026, time.January, 1), direction: holidaydomain.DirectionForward, want: caldate.New(2026, time.January, 2)},
		{name: "holiday backward", date: caldate.New(2026, time.January, 1), direction: holidaydomain.DirectionBackward, want: caldate.New(2025, time.December, 31)},
		{name: "saturday forward", date: caldate.New(2026, time.January, 3), direction: holidaydomain.DirectionForward, want: caldate.New(2026, time.January, 5)},
		{name: "sunday backward", date: caldate.New(2026, time.January, 4), direction: holidaydomain.DirectionBackward, want: caldate.New(2026, time.January, 2)},
		{name: "easter monday backward skips weekend", date: caldate.New(2026, time.April, 6), direction: holidaydomain.DirectionBackward, want: caldate.New(2026, time.April, 3)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cal.NearestBusinessDay(ctx, "ORG1", "FR", tc.date, tc.direction)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNearestBusinessDayIsBounded(t *testing.T) {
	closed := &holidaydomain.HolidayZone{
		ID:             "CLOSED",
		OrganisationID: "ORG1",
		WeekendDays: datatypes.NewJSONSlice([]time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
		}),
	}
	_, cal := newCalendarFixture(closed)

	_, err := cal.NearestBusinessDay(context.Background(), "ORG1", "CLOSED", caldate.New(2026, time.January, 1), holidaydomain.DirectionForward)
	assert.ErrorIs(t, err, holidaydomain.ErrNoBusinessDayFound)
}

func TestNearestBusinessDayRejectsUnknownDirection(t *testing.T) {
	_, cal := newCalendarFixture(frZone())

	_, err := cal.NearestBusinessDay(context.Background(), "ORG1", "FR", caldate.New(2026, time.January, 1), holidaydomain.Direction("SIDEWAYS"))
	assert.ErrorIs(t, err, holidaydomain.ErrInvalidDirection)
}

func TestCheckEligibility(t *testing.T) {
	ctx := context.Background()
	_, cal := newCalendarFixture(frZone())

	t.Run("eligible date", func(t *testing.T) {
		date := caldate.New(2026, time.January, 2)
		got, err := cal.CheckEligibility(ctx, "ORG1", "FR", date)
		require.NoError(t, err)

		assert.True(t, got.IsEligible)
		assert.False(t, got.IsWeekend)
		assert.False(t, got.IsHoliday)
		assert.Empty(t, got.HolidayName)
		assert.False(t, got.PreviousEligibleDate.After(date))
		assert.False(t, got.NextEligibleDate.Before(date))
	})

	t.Run("holiday computes both directions", func(t *testing.T) {
		got, err := cal.CheckEligibility(ctx, "ORG1", "FR", caldate.New(2026, time.January, 1))
		require.NoError(t, err)

		assert.False(t, got.IsEligible)
		assert.True(t, got.IsHoliday)
		assert.Equal(t, "Jour de l'An", got.HolidayName)
		assert.Equal(t, caldate.New(2026, time.January, 2), got.NextEligibleDate)
		assert.Equal(t, caldate.New(2025, time.December, 31), got.PreviousEligibleDate)
	})

	t.Run("weekend", func(t *testing.T) {
		got, err := cal.CheckEligibility(ctx, "ORG1", "FR", caldate.New(2026, time.January, 3))
		require.NoError(t, err)

		assert.False(t, got.IsEligible)
		assert.True(t, got.IsWeekend)
		assert.Equal(t, caldate.New(2026, time.January, 5), got.NextEligibleDate)
		assert.Equal(t, caldate.New(2026, time.January, 2), got.PreviousEligibleDate)
	})
}

func TestZoneSnapshot(t *testing.T) {
	stub, cal := newCalendarFixture(frZone())

	zone, err := cal.Zone(context.Background(), "ORG1", "FR")
	require.NoError(t, err)
	assert.Equal(t, "FR", zone.ID)
	assert.Len(t, zone.Holidays, 4)
	assert.Equal(t, 1, stub.calls)

	_, err = cal.Zone(context.Background(), "ORG1", "XX")
	assert.ErrorIs(t, err, holidaydomain.ErrZoneNotFound)

	_, err = cal.Zone(context.Background(), "ORG1", "")
	assert.ErrorIs(t, err, holidaydomain.ErrZoneNotFound)
}
