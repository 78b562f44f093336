package event

import (
	"context"

	"syncslot/models"
	"syncslot/services/tasks"
	"syncslot/utils"

	"go.uber.org/zap"
)

// FinalizeEvent commits the meeting time. The slot must last exactly the
// event duration and sit inside one proposed window. A non-zero
// req.Version must match the stored version.
func (s *DefaultEventService) FinalizeEvent(ctx context.Context, eventID, userID string, req models.FinalizeRequest) (*models.Event, error) {
	ev, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.CoordinatorID != userID {
		return nil, utils.NewForbiddenError("only the coordinator can finalize the event")
	}
	if ev.Status != models.EventStatusOpen {
		return nil, utils.NewConflictError("event is already %s", ev.Status)
	}
	if req.Version != 0 && req.Version != ev.Version {
		return nil, utils.NewConflictError("event version %d is stale, current is %d", req.Version, ev.Version)
	}
	if req.Start.IsZero() {
		return nil, utils.NewInvalidError("start is required")
	}

	start := req.Start.UTC()
	end := start.Add(ev.Duration())
	if req.End != nil && !req.End.Equal(end) {
		return nil, utils.NewInvalidError("meeting must last exactly %d minutes", ev.DurationMinutes)
	}
	if _, ok := ev.WindowContaining(start, end); !ok {
		return nil, utils.NewInvalidError("chosen time is outside every proposed window")
	}

	ev.Status = models.EventStatusFinalized
	ev.FinalStart = &start
	ev.FinalEnd = &end
	if err := s.save(ctx, ev); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Event finalized", zap.String("eventID", ev.ID), zap.Time("start", start), zap.Int("version", ev.Version))

	s.enqueueFinalized(ctx, ev)
	return ev, nil
}

// enqueueFinalized schedules the calendar push. Failing to enqueue never
// undoes a finalization.
func (s *DefaultEventService) enqueueFinalized(ctx context.Context, ev *models.Event) {
	if s.Queue == nil {
		return
	}
	task, opts, err := tasks.NewEventFinalizedTask(models.FinalizedPayload{EventID: ev.ID, Version: ev.Version})
	if err != nil {
		utils.GetLogger().Error("Failed to build finalize task", zap.String("eventID", ev.ID), zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		utils.GetLogger().Error("Failed to enqueue calendar push", zap.String("eventID", ev.ID), zap.Error(err))
	}
}
