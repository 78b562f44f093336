package tasks

import (
	"encoding/json"
	"strconv"
	"time"

	"syncslot/models"

	"github.com/hibiken/asynq"
)

const TypeEventFinalized = "event:finalized"

// NewEventFinalizedTask builds the task that pushes a finalized event to the
// participants' Google calendars. The task ID is tied to the event version so
// a retried finalize never enqueues twice.
func NewEventFinalizedTask(payload models.FinalizedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEventFinalized, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(2 * time.Minute),
		asynq.TaskID(payload.EventID + ":" + strconv.Itoa(payload.Version)),
	}
	return task, opts, nil
}

// ParseEventFinalized decodes a task payload.
func ParseEventFinalized(task *asynq.Task) (models.FinalizedPayload, error) {
	var p models.FinalizedPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
