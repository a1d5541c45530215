package calendar

import (
	"testing"
	"time"

	"fluiq-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEvents() []models.Event {
	return []models.Event{
		{ID: 1, Country: models.CountryAll, Date: "2026-01-01", Name: "Jour de l'An", Type: models.EventHoliday},
		{ID: 2, Country: "SN", Date: "2026-04-04", Name: "Independance", Type: models.EventNational},
		{ID: 3, Country: "CI", Date: "2026-08-07", Name: "Independance", Type: models.EventNational},
		{ID: 4, Country: "TG", Date: "2026-04-27", Name: "Independance", Type: models.EventNational},
		{ID: 5, Country: "SN", Date: "2026-04-04", Name: "Concert", Type: models.EventCultural},
		{ID: 6, Country: models.CountryAll, Date: "2026-12-25", Name: "Noel", Type: models.EventReligious},
	}
}

func ids(events []models.Event) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestFilterByCountry(t *testing.T) {
	tests := []struct {
		country string
		want    []int
	}{
		{country: "ALL", want: []int{1, 2, 3, 4, 5, 6}},
		{country: "", want: []int{1, 2, 3, 4, 5, 6}},
		{country: "SN", want: []int{1, 2, 5, 6}},
		{country: "CI", want: []int{1, 3, 6}},
		{country: "BF", want: []int{1, 6}},
	}

	for _, tt := range tests {
		t.Run("country "+tt.country, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByCountry(createTestEvents(), tt.country)))
		})
	}
}

func TestOnDate(t *testing.T) {
	assert.Equal(t, []int{2, 5}, ids(OnDate(createTestEvents(), "2026-04-04")))
	assert.Empty(t, OnDate(createTestEvents(), "2026-04-05"))
}

func TestUpcoming(t *testing.T) {
	events := createTestEvents()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(Upcoming(events, 0)))
	assert.Equal(t, []int{1, 2}, ids(Upcoming(events, 2)))
	assert.Len(t, Upcoming(events, 50), len(events))
	assert.Empty(t, Upcoming(nil, 3))
}

func TestMonth(t *testing.T) {
	grid, err := Month(2026, time.April, createTestEvents())
	require.NoError(t, err)

	// 1 April 2026 is a Wednesday
	assert.Equal(t, 3, grid.Leading)
	assert.Equal(t, "Avril 2026", grid.Title)
	require.Len(t, grid.Days, 30)
	assert.Equal(t, Day{Day: 4, Date: "2026-04-04", Events: 2}, grid.Days[3])
	assert.Equal(t, 1, grid.Days[26].Events)
	assert.Equal(t, 0, grid.Days[0].Events)
	assert.Equal(t, MonthRef{Year: 2026, Month: 3}, grid.Prev)
	assert.Equal(t, MonthRef{Year: 2026, Month: 5}, grid.Next)
}

func TestMonth_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		days     int
		leading  int
		prev     MonthRef
		next     MonthRef
		wantFail bool
	}{
		{name: "january wraps back", year: 2026, month: time.January, days: 31, leading: 4,
			prev: MonthRef{2025, 12}, next: MonthRef{2026, 2}},
		{name: "december wraps forward", year: 2026, month: time.December, days: 31, leading: 2,
			prev: MonthRef{2026, 11}, next: MonthRef{2027, 1}},
		{name: "leap february", year: 2028, month: time.February, days: 29, leading: 2,
			prev: MonthRef{2028, 1}, next: MonthRef{2028, 3}},
		{name: "sunday start", year: 2026, month: time.February, days: 28, leading: 0,
			prev: MonthRef{2026, 1}, next: MonthRef{2026, 3}},
		{name: "month zero", year: 2026, month: 0, wantFail: true},
		{name: "month thirteen", year: 2026, month: 13, wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := Month(tt.year, tt.month, nil)
			if tt.wantFail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, grid.Days, tt.days)
			assert.Equal(t, tt.leading, grid.Leading)
			assert.Equal(t, tt.prev, grid.Prev)
			assert.Equal(t, tt.next, grid.Next)
		})
	}
}

func TestKnownCountry(t *testing.T) {
	assert.True(t, KnownCountry("ALL"))
	assert.True(t, KnownCountry("TG"))
	assert.False(t, KnownCountry("FR"))
	assert.Len(t, DayLabels, 7)
	assert.Equal(t, "Decembre", MonthLabels[11])
}
