package models

import "time"

// Slot kinds.
const (
	SlotKindPreferred = "preferred"
	SlotKindBusy      = "busy"
)

// Slot sources.
const (
	SlotSourceManual = "manual"
	SlotSourceGoogle = "google"
)

// TimeSlot is one user's declared availability for an event: either a preferred
// meeting time or a busy period. Intervals are half-open [Start, End).
type TimeSlot struct {
	ID        string    `bson:"id" json:"id"`
	EventID   string    `bson:"eventId" json:"eventId"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
	Kind      string    `bson:"kind" json:"kind"`
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotInput is a client-submitted interval.
type SlotInput struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// SubmitSlotsRequest is the payload for slot submission endpoints.
type SubmitSlotsRequest struct {
	Slots []SlotInput `json:"slots"`
}

// EventSlots groups every slot of an event by kind.
type EventSlots struct {
	Preferred []TimeSlot `json:"preferred"`
	Busy      []TimeSlot `json:"busy"`
}
