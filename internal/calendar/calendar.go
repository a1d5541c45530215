// Package calendar filters the event corpus and lays out month grids.
package calendar

import (
	"fmt"
	"time"

	"fluiq-workers/internal/models"
)

// DefaultUpcoming is how many events are listed when no date is selected.
const DefaultUpcoming = 5

// DayLabels are the grid column headers, Sunday first.
var DayLabels = [7]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// MonthLabels are indexed by time.Month - 1.
var MonthLabels = [12]string{
	"Janvier", "Fevrier", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Aout", "Septembre", "Octobre", "Novembre", "Decembre",
}

// Country is one entry of the country filter.
type Country struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Countries is the filter list in display order.
var Countries = []Country{
	{Code: models.CountryAll, Label: "Tous"},
	{Code: "CI", Label: "Cote d'Ivoire"},
	{Code: "SN", Label: "Senegal"},
	{Code: "BF", Label: "Burkina Faso"},
	{Code: "TG", Label: "Togo"},
}

// KnownCountry reports whether code is one of Countries.
func KnownCountry(code string) bool {
	for _, c := range Countries {
		if c.Code == code {
			return true
		}
	}
	return false
}

// FilterByCountry keeps events of country plus the ones celebrated everywhere.
// ALL or an empty country keeps everything.
func FilterByCountry(events []models.Event, country string) []models.Event {
	if country == "" || country == models.CountryAll {
		return append([]models.Event(nil), events...)
	}
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.Country == country || e.Country == models.CountryAll {
			out = append(out, e)
		}
	}
	return out
}

// OnDate returns the events whose date equals date (YYYY-MM-DD).
func OnDate(events []models.Event, date string) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// Upcoming returns the first n events in corpus order. n <= 0 means DefaultUpcoming.
func Upcoming(events []models.Event, n int) []models.Event {
	if n <= 0 {
		n = DefaultUpcoming
	}
	if n > len(events) {
		n = len(events)
	}
	return append([]models.Event(nil), events[:n]...)
}

// Day is one cell of a month grid.
type Day struct {
	Day    int    `json:"day"`
	Date   string `json:"date"`
	Events int    `json:"events"`
}

// MonthRef identifies a calendar month.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthGrid is everything a presentation layer needs to draw one month.
type MonthGrid struct {
	Year    int      `json:"year"`
	Month   int      `json:"month"`
	Title   string   `json:"title"`
	Leading int      `json:"leading"`
	Days    []Day    `json:"days"`
	Prev    MonthRef `json:"prev"`
	Next    MonthRef `json:"next"`
}

// Month builds the grid for year/month. Leading is the number of blank cells
// before the 1st, which is its weekday with Sunday as 0.
func Month(year int, month time.Month, events []models.Event) (MonthGrid, error) {
	if month < time.January || month > time.December {
		return MonthGrid{}, fmt.Errorf("month %d out of range", month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()

	perDate := make(map[string]int, len(events))
	for _, e := range events {
		perDate[e.Date]++
	}

	days := make([]Day, daysIn)
	for d := 1; d <= daysIn; d++ {
		date := first.AddDate(0, 0, d-1).Format(models.DateLayout)
		days[d-1] = Day{Day: d, Date: date, Events: perDate[date]}
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	return MonthGrid{
		Year:    year,
		Month:   int(month),
		Title:   fmt.Sprintf("%s %d", MonthLabels[month-1], year),
		Leading: int(first.Weekday()),
		Days:    days,
		Prev:    MonthRef{Year: prev.Year(), Month: int(prev.Month())},
		Next:    MonthRef{Year: next.Year(), Month: int(next.Month())},
	}, nil
}
