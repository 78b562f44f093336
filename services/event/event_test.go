package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"syncslot/database/repository/memory"
	"syncslot/models"
	"syncslot/services/tasks"
	"syncslot/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

var base = time.Date(2024, time.May, 6, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*DefaultEventService, *fakeQueue, *models.Event) {
	t.Helper()
	q := &fakeQueue{}
	svc := NewEventService(memory.NewEventRepo(), q)
	ev, err := svc.CreateEvent(context.Background(), "coord", models.CreateEventRequest{
		Title:           " Quarterly review ",
		DurationMinutes: 60,
		Windows:         []models.TimeWindow{{Start: base, End: base.Add(4 * time.Hour)}},
	})
	require.NoError(t, err)
	return svc, q, ev
}

func TestCreateEvent(t *testing.T) {
	_, _, ev := newService(t)
	assert.Equal(t, "Quarterly review", ev.Title)
	assert.Equal(t, models.EventStatusOpen, ev.Status)
	assert.Equal(t, 1, ev.Version)
	require.Len(t, ev.Windows, 1)
	assert.NotEmpty(t, ev.Windows[0].ID)
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := NewEventService(memory.NewEventRepo(), nil)
	tests := []struct {
		name string
		req  models.CreateEventRequest
	}{
		{"missing title", models.CreateEventRequest{DurationMinutes: 30}},
		{"zero duration", models.CreateEventRequest{Title: "x"}},
		{"too long", models.CreateEventRequest{Title: "x", DurationMinutes: 3000}},
		{"bad timezone", models.CreateEventRequest{Title: "x", DurationMinutes: 30, Timezone: "Mars/Olympus"}},
		{"inverted window", models.CreateEventRequest{Title: "x", DurationMinutes: 30, Windows: []models.TimeWindow{{Start: base, End: base.Add(-time.Hour)}}}},
		{"window too short", models.CreateEventRequest{Title: "x", DurationMinutes: 90, Windows: []models.TimeWindow{{Start: base, End: base.Add(time.Hour)}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), "coord", tt.req)
			assert.Equal(t, utils.CodeInvalid, utils.ErrorCode(err))
		})
	}
}

func TestJoinAndMembership(t *testing.T) {
	svc, _, ev := newService(t)
	ctx := context.Background()

	_, err := svc.GetEvent(ctx, ev.ID, "alice")
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))

	joined, err := svc.JoinEvent(ctx, ev.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, joined.ParticipantIDs)

	again, err := svc.JoinEvent(ctx, ev.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, again.ParticipantIDs, 1)

	list, err := svc.ListEventsForUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.JoinEvent(ctx, "nope", "alice")
	assert.Equal(t, utils.CodeNotFound, utils.ErrorCode(err))
}

func TestWindows(t *testing.T) {
	svc, _, ev := newService(t)
	ctx := context.Background()

	_, err := svc.AddWindow(ctx, ev.ID, "alice", models.TimeWindow{Start: base.Add(24 * time.Hour), End: base.Add(26 * time.Hour)})
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))

	updated, err := svc.AddWindow(ctx, ev.ID, "coord", models.TimeWindow{Start: base.Add(24 * time.Hour), End: base.Add(26 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, updated.Windows, 2)
	assert.Equal(t, 2, updated.Version)

	removed, err := svc.RemoveWindow(ctx, ev.ID, "coord", updated.Windows[0].ID)
	require.NoError(t, err)
	assert.Len(t, removed.Windows, 1)

	_, err = svc.RemoveWindow(ctx, ev.ID, "coord", "missing")
	assert.Equal(t, utils.CodeNotFound, utils.ErrorCode(err))
}

func TestFinalizeEvent(t *testing.T) {
	svc, q, ev := newService(t)
	ctx := context.Background()

	final, err := svc.FinalizeEvent(ctx, ev.ID, "coord", models.FinalizeRequest{Start: base.Add(time.Hour), Version: ev.Version})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusFinalized, final.Status)
	assert.Equal(t, base.Add(2*time.Hour), *final.FinalEnd)

	require.Len(t, q.tasks, 1)
	payload, err := tasks.ParseEventFinalized(q.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, ev.ID, payload.EventID)
	assert.Equal(t, final.Version, payload.Version)

	_, err = svc.FinalizeEvent(ctx, ev.ID, "coord", models.FinalizeRequest{Start: base})
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
}

func TestFinalizeEvent_Rejections(t *testing.T) {
	svc, q, ev := newService(t)
	ctx := context.Background()
	wrongEnd := base.Add(30 * time.Minute)

	tests := []struct {
		name   string
		userID string
		req    models.FinalizeRequest
		code   string
	}{
		{"not coordinator", "alice", models.FinalizeRequest{Start: base}, utils.CodeForbidden},
		{"outside windows", "coord", models.FinalizeRequest{Start: base.Add(-time.Hour)}, utils.CodeInvalid},
		{"crosses window end", "coord", models.FinalizeRequest{Start: base.Add(3*time.Hour + 30*time.Minute)}, utils.CodeInvalid},
		{"wrong duration", "coord", models.FinalizeRequest{Start: base, End: &wrongEnd}, utils.CodeInvalid},
		{"missing start", "coord", models.FinalizeRequest{}, utils.CodeInvalid},
		{"stale version", "coord", models.FinalizeRequest{Start: base, Version: ev.Version + 5}, utils.CodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FinalizeEvent(ctx, ev.ID, tt.userID, tt.req)
			assert.Equal(t, tt.code, utils.ErrorCode(err))
		})
	}
	assert.Empty(t, q.tasks)
}

func TestFinalizeEvent_EnqueueFailureKeepsFinalization(t *testing.T) {
	svc, q, ev := newService(t)
	q.err = errors.New("redis down")

	final, err := svc.FinalizeEvent(context.Background(), ev.ID, "coord", models.FinalizeRequest{Start: base})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusFinalized, final.Status)
}

func TestCancelEvent(t *testing.T) {
	svc, _, ev := newService(t)
	ctx := context.Background()

	_, err := svc.CancelEvent(ctx, ev.ID, "alice")
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))

	cancelled, err := svc.CancelEvent(ctx, ev.ID, "coord")
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCancelled, cancelled.Status)

	_, err = svc.CancelEvent(ctx, ev.ID, "coord")
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))

	_, err = svc.JoinEvent(ctx, ev.ID, "bob")
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
}
