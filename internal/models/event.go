package models

type EventType string

const (
	EventHoliday       EventType = "holiday"
	EventReligious     EventType = "religious"
	EventNational      EventType = "national"
	EventCultural      EventType = "cultural"
	EventInternational EventType = "international"
)

// CountryAll is both the "every country" filter and the tag of events
// celebrated everywhere.
const CountryAll = "ALL"

// Event is a dated occasion creators can plan content around.
type Event struct {
	ID           int       `json:"id"`
	Country      string    `json:"country"`
	Date         string    `json:"date"`
	Name         string    `json:"name"`
	Type         EventType `json:"type"`
	ContentIdeas []string  `json:"content_ideas,omitempty"`
}
