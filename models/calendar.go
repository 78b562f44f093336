package models

import "time"

// Calendar categories.
const (
	CategoryBusy          = "busy"
	CategoryPreferredSlot = "preferred-slot"
	CategoryEvent         = "event"
	CategoryOther         = "other"
)

// CalendarEvent is the shape consumed by calendar views. Summary events are
// synthetic all-day entries produced by the month aggregation.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Category string    `json:"category"`
	AllDay   bool      `json:"allDay"`
	Count    int       `json:"count,omitempty"`
	Summary  bool      `json:"summary,omitempty"`
}

// CalendarView is the response of the calendar endpoint.
type CalendarView struct {
	Timezone string          `json:"timezone"`
	Events   []CalendarEvent `json:"events"`
	Month    []CalendarEvent `json:"month"`
}
