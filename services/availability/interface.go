package availability

import (
	"context"
	"time"

	eventRepo "syncslot/database/repository/event"
	slotRepo "syncslot/database/repository/slot"
	"syncslot/models"
)

// AvailabilityService records participant slots and serves the aggregated views.
type AvailabilityService interface {
	// Slot submission
	SubmitPreferredSlots(ctx context.Context, eventID, userID string, slots []models.SlotInput) ([]models.TimeSlot, error)
	AddBusySlots(ctx context.Context, eventID, userID string, slots []models.SlotInput, source string) ([]models.TimeSlot, error)
	ReplaceBusySlots(ctx context.Context, eventID, userID string, slots []models.SlotInput, source string) ([]models.TimeSlot, error)
	ClearBusySlots(ctx context.Context, eventID, userID, source string) (int64, error)
	ListSlots(ctx context.Context, eventID, userID string) (*models.EventSlots, error)

	// Aggregated views
	Density(ctx context.Context, eventID, userID, kind string) ([]models.DensityBlock, error)
	Overlap(ctx context.Context, eventID, userID string) (*models.OverlapPartition, error)
	Calendar(ctx context.Context, eventID, userID string, loc *time.Location) (*models.CalendarView, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Events eventRepo.EventRepository
	Slots  slotRepo.SlotRepository
}

func NewAvailabilityService(events eventRepo.EventRepository, slots slotRepo.SlotRepository) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{Events: events, Slots: slots}
}
