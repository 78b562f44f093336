package models

// FinalizedPayload is the asynq payload emitted when an event is finalized.
type FinalizedPayload struct {
	EventID string `json:"eventId"`
	Version int    `json:"version"`
}
