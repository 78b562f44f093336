package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventRepo "syncslot/database/repository/event"
	slotRepo "syncslot/database/repository/slot"
	"syncslot/models"
	"syncslot/utils"

	"go.uber.org/zap"
)

// SubmitPreferredSlots replaces the caller's preferred slots for the event.
// Every slot must have end after start and fit inside one proposed window.
func (s *DefaultAvailabilityService) SubmitPreferredSlots(ctx context.Context, eventID, userID string, inputs []models.SlotInput) ([]models.TimeSlot, error) {
	event, err := s.writableEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	slots, err := buildSlots(event, userID, models.SlotKindPreferred, models.SlotSourceManual, inputs, true)
	if err != nil {
		return nil, err
	}

	filter := slotRepo.SlotFilter{EventID: eventID, OwnerID: userID, Kind: models.SlotKindPreferred}
	saved, err := s.Slots.ReplaceForOwner(ctx, filter, slots)
	if err != nil {
		utils.GetLogger().Error("Failed to replace preferred slots", zap.String("eventID", eventID), zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to save preferred slots: %w", err)
	}
	utils.GetLogger().Info("Preferred slots submitted", zap.String("eventID", eventID), zap.String("userID", userID), zap.Int("count", len(saved)))
	return saved, nil
}

// AddBusySlots appends busy periods. Busy time may fall outside the windows;
// it only matters where it meets them.
func (s *DefaultAvailabilityService) AddBusySlots(ctx context.Context, eventID, userID string, inputs []models.SlotInput, source string) ([]models.TimeSlot, error) {
	event, err := s.writableEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	slots, err := buildSlots(event, userID, models.SlotKindBusy, normalizeSource(source), inputs, false)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []models.TimeSlot{}, nil
	}

	ids, err := s.Slots.CreateMany(ctx, slots)
	if err != nil {
		utils.GetLogger().Error("Failed to add busy slots", zap.String("eventID", eventID), zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to save busy slots: %w", err)
	}
	for i := range slots {
		if i < len(ids) {
			slots[i].ID = ids[i]
		}
	}
	return slots, nil
}

// ReplaceBusySlots swaps every busy slot of one source for the given set.
// Calendar imports use it so re-importing never duplicates busy time.
func (s *DefaultAvailabilityService) ReplaceBusySlots(ctx context.Context, eventID, userID string, inputs []models.SlotInput, source string) ([]models.TimeSlot, error) {
	event, err := s.writableEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	source = normalizeSource(source)
	slots, err := buildSlots(event, userID, models.SlotKindBusy, source, inputs, false)
	if err != nil {
		return nil, err
	}

	filter := slotRepo.SlotFilter{EventID: eventID, OwnerID: userID, Kind: models.SlotKindBusy, Source: source}
	saved, err := s.Slots.ReplaceForOwner(ctx, filter, slots)
	if err != nil {
		return nil, fmt.Errorf("failed to replace busy slots: %w", err)
	}
	return saved, nil
}

// ClearBusySlots removes the caller's busy slots. An empty source clears all of them.
func (s *DefaultAvailabilityService) ClearBusySlots(ctx context.Context, eventID, userID, source string) (int64, error) {
	if _, err := s.writableEvent(ctx, eventID, userID); err != nil {
		return 0, err
	}
	filter := slotRepo.SlotFilter{EventID: eventID, OwnerID: userID, Kind: models.SlotKindBusy, Source: source}
	n, err := s.Slots.DeleteMatching(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to clear busy slots: %w", err)
	}
	return n, nil
}

func (s *DefaultAvailabilityService) ListSlots(ctx context.Context, eventID, userID string) (*models.EventSlots, error) {
	if _, err := s.memberEvent(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return s.eventSlots(ctx, eventID)
}

// Density aggregates one kind of slot. An empty kind means preferred.
func (s *DefaultAvailabilityService) Density(ctx context.Context, eventID, userID, kind string) ([]models.DensityBlock, error) {
	if kind == "" {
		kind = models.SlotKindPreferred
	}
	if kind != models.SlotKindPreferred && kind != models.SlotKindBusy {
		return nil, utils.NewInvalidError("unknown slot kind %q", kind)
	}
	if _, err := s.memberEvent(ctx, eventID, userID); err != nil {
		return nil, err
	}
	slots, err := s.Slots.Find(ctx, slotRepo.SlotFilter{EventID: eventID, Kind: kind})
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	return AggregateDensity(slots), nil
}

func (s *DefaultAvailabilityService) Overlap(ctx context.Context, eventID, userID string) (*models.OverlapPartition, error) {
	if _, err := s.memberEvent(ctx, eventID, userID); err != nil {
		return nil, err
	}
	all, err := s.eventSlots(ctx, eventID)
	if err != nil {
		return nil, err
	}
	part := SplitOverlaps(all.Busy, all.Preferred)
	return &part, nil
}

// Calendar lists every slot as a calendar entry plus the per-day month summary
// bucketed in loc.
func (s *DefaultAvailabilityService) Calendar(ctx context.Context, eventID, userID string, loc *time.Location) (*models.CalendarView, error) {
	if loc == nil {
		loc = time.UTC
	}
	event, err := s.memberEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.eventSlots(ctx, eventID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.CalendarEvent, 0, len(all.Busy)+len(all.Preferred)+1)
	for _, slot := range SanitizeSlots(all.Busy) {
		entries = append(entries, slotEntry(slot, models.CategoryBusy, "Busy", loc))
	}
	for _, slot := range SanitizeSlots(all.Preferred) {
		entries = append(entries, slotEntry(slot, models.CategoryPreferredSlot, "Preferred", loc))
	}
	if event.Status == models.EventStatusFinalized && event.FinalStart != nil && event.FinalEnd != nil {
		entries = append(entries, models.CalendarEvent{
			ID:       event.ID,
			Title:    event.Title,
			Start:    event.FinalStart.In(loc),
			End:      event.FinalEnd.In(loc),
			Category: models.CategoryEvent,
		})
	}

	return &models.CalendarView{
		Timezone: loc.String(),
		Events:   entries,
		Month:    AggregateMonth(entries, loc),
	}, nil
}

func slotEntry(slot models.TimeSlot, category, title string, loc *time.Location) models.CalendarEvent {
	return models.CalendarEvent{
		ID:       slot.ID,
		Title:    title,
		Start:    slot.Start.In(loc),
		End:      slot.End.In(loc),
		Category: category,
	}
}

func (s *DefaultAvailabilityService) eventSlots(ctx context.Context, eventID string) (*models.EventSlots, error) {
	slots, err := s.Slots.Find(ctx, slotRepo.SlotFilter{EventID: eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	out := &models.EventSlots{Preferred: []models.TimeSlot{}, Busy: []models.TimeSlot{}}
	for _, slot := range slots {
		switch slot.Kind {
		case models.SlotKindPreferred:
			out.Preferred = append(out.Preferred, slot)
		case models.SlotKindBusy:
			out.Busy = append(out.Busy, slot)
		}
	}
	return out, nil
}

// memberEvent loads the event and checks that userID belongs to it.
func (s *DefaultAvailabilityService) memberEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	event, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, utils.NewNotFoundError("event %s not found", eventID)
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if !event.IsMember(userID) {
		return nil, utils.NewForbiddenError("user is not a participant of this event")
	}
	return event, nil
}

func (s *DefaultAvailabilityService) writableEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	event, err := s.memberEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusOpen {
		return nil, utils.NewConflictError("event is %s and no longer accepts availability", event.Status)
	}
	return event, nil
}

func buildSlots(event *models.Event, ownerID, kind, source string, inputs []models.SlotInput, requireWindow bool) ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, len(inputs))
	for i, in := range inputs {
		if in.Start.IsZero() || in.End.IsZero() {
			return nil, utils.NewInvalidError("slot %d is missing a start or end", i)
		}
		if !in.End.After(in.Start) {
			return nil, utils.NewInvalidError("slot %d must end after it starts", i)
		}
		if requireWindow {
			if _, ok := event.WindowContaining(in.Start, in.End); !ok {
				return nil, utils.NewInvalidError("slot %d is outside every proposed window", i)
			}
		}
		slots = append(slots, models.TimeSlot{
			EventID: event.ID,
			OwnerID: ownerID,
			Kind:    kind,
			Source:  source,
			Start:   in.Start.UTC(),
			End:     in.End.UTC(),
		})
	}
	return slots, nil
}

func normalizeSource(source string) string {
	if source == models.SlotSourceGoogle {
		return source
	}
	return models.SlotSourceManual
}
