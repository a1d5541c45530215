package listevents

import (
	"context"
	"time"

	"fluiq-workers/internal/calendar"
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config *Config
	logger logger.Logger
	gate   auth.Authenticator
	events []models.Event
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
		gate:   deps.Gate,
		events: deps.Events,
		now:    time.Now,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if _, _, err := s.gate.Require(ctx, input.SessionToken); err != nil {
		return nil, err
	}

	filtered := calendar.FilterByCountry(s.events, input.Country)

	var events []models.Event
	if input.Date != "" {
		events = calendar.OnDate(filtered, input.Date)
	} else {
		events = calendar.Upcoming(filtered, calendar.DefaultUpcoming)
	}

	year, month := input.Year, input.Month
	if year == 0 || month == 0 {
		today := s.now()
		year, month = today.Year(), int(today.Month())
	}
	grid, err := calendar.Month(year, time.Month(month), filtered)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	return &Output{
		Events:    events,
		Grid:      grid,
		Countries: calendar.Countries,
		DayLabels: calendar.DayLabels[:],
	}, nil
}
