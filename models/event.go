package models

import "time"

// Event lifecycle states.
const (
	EventStatusOpen      = "open"
	EventStatusFinalized = "finalized"
	EventStatusCancelled = "cancelled"
)

// Event is a meeting being coordinated between a coordinator and participants.
type Event struct {
	ID              string       `bson:"id" json:"id"`
	Title           string       `bson:"title" json:"title"`
	Description     string       `bson:"description,omitempty" json:"description,omitempty"`
	CoordinatorID   string       `bson:"coordinatorId" json:"coordinatorId"`
	DurationMinutes int          `bson:"durationMinutes" json:"durationMinutes"`
	Timezone        string       `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Windows         []TimeWindow `bson:"windows" json:"windows"`
	ParticipantIDs  []string     `bson:"participantIds" json:"participantIds"`
	Status          string       `bson:"status" json:"status"`
	FinalStart      *time.Time   `bson:"finalStart,omitempty" json:"finalStart,omitempty"`
	FinalEnd        *time.Time   `bson:"finalEnd,omitempty" json:"finalEnd,omitempty"`
	Version         int          `bson:"version" json:"version"`
	CreatedAt       time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Duration is the requested meeting length.
func (e *Event) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// IsMember reports whether userID coordinates or participates in the event.
func (e *Event) IsMember(userID string) bool {
	if userID == "" {
		return false
	}
	if e.CoordinatorID == userID {
		return true
	}
	for _, id := range e.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Members returns the coordinator followed by all participants, without duplicates.
func (e *Event) Members() []string {
	out := []string{e.CoordinatorID}
	for _, id := range e.ParticipantIDs {
		if id != e.CoordinatorID {
			out = append(out, id)
		}
	}
	return out
}

// WindowContaining returns the proposed window that fully contains [start,end).
func (e *Event) WindowContaining(start, end time.Time) (TimeWindow, bool) {
	for _, w := range e.Windows {
		if !start.Before(w.Start) && !end.After(w.End) {
			return w, true
		}
	}
	return TimeWindow{}, false
}

// Span returns the earliest window start and latest window end.
func (e *Event) Span() (time.Time, time.Time, bool) {
	if len(e.Windows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	from, to := e.Windows[0].Start, e.Windows[0].End
	for _, w := range e.Windows[1:] {
		if w.Start.Before(from) {
			from = w.Start
		}
		if w.End.After(to) {
			to = w.End
		}
	}
	return from, to, true
}

// TimeWindow is a coordinator-proposed candidate range.
type TimeWindow struct {
	ID    string    `bson:"id" json:"id"`
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// CreateEventRequest is the payload for POST /api/events.
type CreateEventRequest struct {
	Title           string       `json:"title" binding:"required"`
	Description     string       `json:"description"`
	DurationMinutes int          `json:"durationMinutes" binding:"required"`
	Timezone        string       `json:"timezone"`
	Windows         []TimeWindow `json:"windows"`
}

// FinalizeRequest commits one candidate time. End defaults to start plus the event duration.
type FinalizeRequest struct {
	Start   time.Time  `json:"start" binding:"required"`
	End     *time.Time `json:"end,omitempty"`
	Version int        `json:"version"`
}
