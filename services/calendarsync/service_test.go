package calendarsync

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"syncslot/database/repository/memory"
	slotRepo "syncslot/database/repository/slot"
	"syncslot/models"
	"syncslot/services/availability"
	"syncslot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeGoogle struct {
	busy      []models.SlotInput
	busyErr   error
	inserted  map[string][]PushedEvent
	insertErr map[string]error
	lastFrom  time.Time
	lastTo    time.Time
}

func (f *fakeGoogle) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (f *fakeGoogle) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if code == "bad" {
		return nil, errors.New("invalid_grant")
	}
	return &oauth2.Token{AccessToken: "access-" + code, RefreshToken: "refresh"}, nil
}

func (f *fakeGoogle) FreeBusy(_ context.Context, _ *oauth2.Token, _ string, from, to time.Time) ([]models.SlotInput, error) {
	f.lastFrom, f.lastTo = from, to
	return f.busy, f.busyErr
}

func (f *fakeGoogle) InsertEvent(_ context.Context, token *oauth2.Token, _ string, ev PushedEvent) error {
	if err := f.insertErr[token.AccessToken]; err != nil {
		return err
	}
	f.inserted[token.AccessToken] = append(f.inserted[token.AccessToken], ev)
	return nil
}

var start = time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *DefaultSyncService
	google *fakeGoogle
	users  *memory.UserRepo
	events *memory.EventRepo
	slots  *memory.SlotRepo
	event  *models.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepo()
	events := memory.NewEventRepo()
	slots := memory.NewSlotRepo()
	for _, id := range []string{"coord", "alice", "bob"} {
		require.NoError(t, users.Create(ctx, &models.User{ID: id, Email: id + "@example.com"}))
	}
	ev := &models.Event{
		Title:           "Offsite",
		CoordinatorID:   "coord",
		ParticipantIDs:  []string{"alice", "bob"},
		DurationMinutes: 60,
		Status:          models.EventStatusOpen,
		Windows: []models.TimeWindow{
			{ID: "w1", Start: start, End: start.Add(3 * time.Hour)},
			{ID: "w2", Start: start.Add(24 * time.Hour), End: start.Add(27 * time.Hour)},
		},
	}
	require.NoError(t, events.Create(ctx, ev))

	g := &fakeGoogle{inserted: map[string][]PushedEvent{}, insertErr: map[string]error{}}
	avail := availability.NewAvailabilityService(events, slots)
	return &fixture{
		svc:    NewSyncService(users, events, avail, g),
		google: g,
		users:  users,
		events: events,
		slots:  slots,
		event:  ev,
	}
}

func (f *fixture) connect(t *testing.T, userID, code string) {
	t.Helper()
	ctx := context.Background()
	raw, err := f.svc.AuthURL(ctx, userID)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.NoError(t, f.svc.Connect(ctx, userID, code, u.Query().Get("state")))
}

func TestConnect(t *testing.T) {
	f := newFixture(t)
	f.connect(t, "alice", "abc")

	u, err := f.users.GetByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, u.GoogleConnected())
	assert.Equal(t, "access-abc", u.GoogleToken.AccessToken)
	assert.Equal(t, "primary", u.GoogleCalendarID)
}

func TestConnect_RejectsForeignState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state, err := utils.GenerateToken("bob", "google-oauth", time.Minute)
	require.NoError(t, err)

	err = f.svc.Connect(ctx, "alice", "abc", state)
	assert.Equal(t, utils.CodeInvalid, utils.ErrorCode(err))

	aliceState, err := utils.GenerateToken("alice", "google-oauth", time.Minute)
	require.NoError(t, err)
	err = f.svc.Connect(ctx, "alice", "bad", aliceState)
	assert.Equal(t, utils.CodeUpstream, utils.ErrorCode(err))
}

func TestImportBusy_ReplacesGoogleSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ImportBusy(ctx, f.event.ID, "alice")
	assert.Equal(t, utils.CodeInvalid, utils.ErrorCode(err), "not connected yet")

	f.connect(t, "alice", "abc")
	f.google.busy = []models.SlotInput{{Start: start, End: start.Add(time.Hour)}}
	saved, err := f.svc.ImportBusy(ctx, f.event.ID, "alice")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, models.SlotSourceGoogle, saved[0].Source)
	assert.Equal(t, start, f.google.lastFrom)
	assert.Equal(t, start.Add(27*time.Hour), f.google.lastTo)

	f.google.busy = []models.SlotInput{
		{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
		{Start: start.Add(25 * time.Hour), End: start.Add(26 * time.Hour)},
	}
	_, err = f.svc.ImportBusy(ctx, f.event.ID, "alice")
	require.NoError(t, err)

	all, err := f.slots.Find(ctx, slotRepo.SlotFilter{EventID: f.event.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	f.google.busyErr = errors.New("rate limited")
	_, err = f.svc.ImportBusy(ctx, f.event.ID, "alice")
	assert.Equal(t, utils.CodeUpstream, utils.ErrorCode(err))
}

func TestPushFinalized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.connect(t, "coord", "c")
	f.connect(t, "alice", "a")

	require.NoError(t, f.svc.PushFinalized(ctx, f.event.ID), "open events are skipped")
	assert.Empty(t, f.google.inserted)

	ev, err := f.events.GetByID(ctx, f.event.ID)
	require.NoError(t, err)
	finalStart, finalEnd := start.Add(time.Hour), start.Add(2*time.Hour)
	ev.Status = models.EventStatusFinalized
	ev.FinalStart, ev.FinalEnd = &finalStart, &finalEnd
	require.NoError(t, f.events.Update(ctx, ev))

	f.google.insertErr["access-a"] = ErrAlreadyPushed
	require.NoError(t, f.svc.PushFinalized(ctx, f.event.ID))
	require.Len(t, f.google.inserted["access-c"], 1)
	pushed := f.google.inserted["access-c"][0]
	assert.Equal(t, "Offsite", pushed.Summary)
	assert.Equal(t, finalStart, pushed.Start)
	assert.NotContains(t, pushed.ID, "-")

	f.google.insertErr["access-a"] = errors.New("calendar gone")
	err = f.svc.PushFinalized(ctx, f.event.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user alice")
}

func TestNotConfigured(t *testing.T) {
	svc := NewSyncService(memory.NewUserRepo(), memory.NewEventRepo(), nil, nil)
	_, err := svc.AuthURL(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NoError(t, svc.PushFinalized(context.Background(), "any"))
}
