package models

import "time"

// Suggestion is a ranked candidate meeting time.
type Suggestion struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Score          int       `json:"score"`
	PreferredCount int       `json:"preferredCount"`
	BusyCount      int       `json:"busyCount"`
	Reason         string    `json:"reason,omitempty"`
}

// SuggestionResponse is returned by POST /api/events/:id/suggestions.
type SuggestionResponse struct {
	EventID     string       `json:"eventId"`
	Suggestions []Suggestion `json:"suggestions"`
	Source      string       `json:"source"` // "ranking" or "gemini"
	GeneratedAt time.Time    `json:"generatedAt"`
}

// SuggestionRequest is the optional payload for suggestions.
type SuggestionRequest struct {
	Limit int    `json:"limit"`
	Note  string `json:"note"`
}
