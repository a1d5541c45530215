package listevents

import (
	"fluiq-workers/internal/calendar"
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

// Input selects the country filter and, optionally, a day and a month to draw.
// Without date the first upcoming events are listed. Without year and month
// the current month is drawn.
type Input struct {
	SessionToken string `json:"sessionToken"`
	Country      string `json:"country,omitempty"`
	Date         string `json:"date,omitempty"`
	Year         int    `json:"year,omitempty"`
	Month        int    `json:"month,omitempty"`
}

type Output struct {
	Events    []models.Event     `json:"events"`
	Grid      calendar.MonthGrid `json:"grid"`
	Countries []calendar.Country `json:"countries"`
	DayLabels []string           `json:"dayLabels"`
}

type ServiceDependencies struct {
	Gate   auth.Authenticator
	Events []models.Event
	Logger logger.Logger
}
