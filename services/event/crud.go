package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	eventRepo "syncslot/database/repository/event"
	"syncslot/models"
	"syncslot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxDurationMinutes = 24 * 60

func (s *DefaultEventService) CreateEvent(ctx context.Context, coordinatorID string, req models.CreateEventRequest) (*models.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.NewInvalidError("title is required")
	}
	if req.DurationMinutes <= 0 || req.DurationMinutes > maxDurationMinutes {
		return nil, utils.NewInvalidError("duration must be between 1 and %d minutes", maxDurationMinutes)
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, utils.NewInvalidError("unknown timezone %q", req.Timezone)
		}
	}

	ev := &models.Event{
		Title:           title,
		Description:     req.Description,
		CoordinatorID:   coordinatorID,
		DurationMinutes: req.DurationMinutes,
		Timezone:        req.Timezone,
		Windows:         []models.TimeWindow{},
		ParticipantIDs:  []string{},
		Status:          models.EventStatusOpen,
	}
	for _, w := range req.Windows {
		window, err := checkWindow(ev, w)
		if err != nil {
			return nil, err
		}
		ev.Windows = append(ev.Windows, window)
	}

	if err := s.Repo.Create(ctx, ev); err != nil {
		utils.GetLogger().Error("Failed to create event", zap.String("coordinatorID", coordinatorID), zap.Error(err))
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	utils.GetLogger().Info("Event created", zap.String("eventID", ev.ID), zap.Int("windows", len(ev.Windows)))
	return ev, nil
}

func (s *DefaultEventService) GetEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	ev, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsMember(userID) {
		return nil, utils.NewForbiddenError("user is not a participant of this event")
	}
	return ev, nil
}

func (s *DefaultEventService) ListEventsForUser(ctx context.Context, userID string) ([]models.Event, error) {
	events, err := s.Repo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// JoinEvent adds userID as a participant. Joining twice is harmless.
func (s *DefaultEventService) JoinEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	ev, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.IsMember(userID) {
		return ev, nil
	}
	if ev.Status != models.EventStatusOpen {
		return nil, utils.NewConflictError("event is %s and can no longer be joined", ev.Status)
	}
	joined, err := s.Repo.AddParticipant(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, utils.NewConflictError("event can no longer be joined")
		}
		return nil, fmt.Errorf("failed to join event: %w", err)
	}
	return joined, nil
}

func (s *DefaultEventService) AddWindow(ctx context.Context, eventID, userID string, window models.TimeWindow) (*models.Event, error) {
	ev, err := s.coordinatedOpenEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	w, err := checkWindow(ev, window)
	if err != nil {
		return nil, err
	}
	ev.Windows = append(ev.Windows, w)
	if err := s.save(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *DefaultEventService) RemoveWindow(ctx context.Context, eventID, userID, windowID string) (*models.Event, error) {
	ev, err := s.coordinatedOpenEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	kept := make([]models.TimeWindow, 0, len(ev.Windows))
	for _, w := range ev.Windows {
		if w.ID != windowID {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(ev.Windows) {
		return nil, utils.NewNotFoundError("window %s not found", windowID)
	}
	ev.Windows = kept
	if err := s.save(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *DefaultEventService) CancelEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	ev, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.CoordinatorID != userID {
		return nil, utils.NewForbiddenError("only the coordinator can cancel the event")
	}
	if ev.Status == models.EventStatusCancelled {
		return nil, utils.NewConflictError("event is already cancelled")
	}
	ev.Status = models.EventStatusCancelled
	if err := s.save(ctx, ev); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Event cancelled", zap.String("eventID", eventID))
	return ev, nil
}

func (s *DefaultEventService) load(ctx context.Context, eventID string) (*models.Event, error) {
	ev, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, utils.NewNotFoundError("event %s not found", eventID)
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return ev, nil
}

func (s *DefaultEventService) coordinatedOpenEvent(ctx context.Context, eventID, userID string) (*models.Event, error) {
	ev, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.CoordinatorID != userID {
		return nil, utils.NewForbiddenError("only the coordinator can change the event")
	}
	if ev.Status != models.EventStatusOpen {
		return nil, utils.NewConflictError("event is %s", ev.Status)
	}
	return ev, nil
}

// save writes ev back, turning a lost update into a conflict.
func (s *DefaultEventService) save(ctx context.Context, ev *models.Event) error {
	if err := s.Repo.Update(ctx, ev); err != nil {
		switch {
		case errors.Is(err, eventRepo.ErrVersionConflict):
			return utils.NewConflictError("event was modified by someone else, reload and retry")
		case errors.Is(err, eventRepo.ErrEventNotFound):
			return utils.NewNotFoundError("event %s not found", ev.ID)
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// checkWindow validates a proposed window and assigns it an ID.
func checkWindow(ev *models.Event, w models.TimeWindow) (models.TimeWindow, error) {
	if w.Start.IsZero() || w.End.IsZero() || !w.End.After(w.Start) {
		return models.TimeWindow{}, utils.NewInvalidError("window must end after it starts")
	}
	if w.End.Sub(w.Start) < ev.Duration() {
		return models.TimeWindow{}, utils.NewInvalidError("window is shorter than the %d minute meeting", ev.DurationMinutes)
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.Start, w.End = w.Start.UTC(), w.End.UTC()
	return w, nil
}
