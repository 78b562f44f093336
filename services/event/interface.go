package event

import (
	"context"

	eventRepo "syncslot/database/repository/event"
	"syncslot/models"

	"github.com/hibiken/asynq"
)

type EventService interface {
	CreateEvent(ctx context.Context, coordinatorID string, req models.CreateEventRequest) (*models.Event, error)
	GetEvent(ctx context.Context, eventID, userID string) (*models.Event, error)
	ListEventsForUser(ctx context.Context, userID string) ([]models.Event, error)
	JoinEvent(ctx context.Context, eventID, userID string) (*models.Event, error)

	// Coordinator only
	AddWindow(ctx context.Context, eventID, userID string, window models.TimeWindow) (*models.Event, error)
	RemoveWindow(ctx context.Context, eventID, userID, windowID string) (*models.Event, error)
	CancelEvent(ctx context.Context, eventID, userID string) (*models.Event, error)
	FinalizeEvent(ctx context.Context, eventID, userID string, req models.FinalizeRequest) (*models.Event, error)
}

// Enqueuer is the subset of *asynq.Client the service needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultEventService is the production implementation.
type DefaultEventService struct {
	Repo  eventRepo.EventRepository
	Queue Enqueuer
}

func NewEventService(repo eventRepo.EventRepository, queue Enqueuer) *DefaultEventService {
	return &DefaultEventService{Repo: repo, Queue: queue}
}
