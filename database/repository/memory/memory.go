// Package memory holds in-process repository implementations used by tests
// and local runs without MongoDB.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	eventRepo "syncslot/database/repository/event"
	slotRepo "syncslot/database/repository/slot"
	userRepo "syncslot/database/repository/user"
	"syncslot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// EventRepo is a map-backed EventRepository.
type EventRepo struct {
	mu     sync.Mutex
	events map[string]models.Event
}

func NewEventRepo() *EventRepo {
	return &EventRepo{events: map[string]models.Event{}}
}

var _ eventRepo.EventRepository = (*EventRepo)(nil)

func (r *EventRepo) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	event.CreatedAt, event.UpdatedAt = now, now
	if event.Version == 0 {
		event.Version = 1
	}
	r.events[event.ID] = cloneEvent(*event)
	return nil
}

func (r *EventRepo) GetByID(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	out := cloneEvent(ev)
	return &out, nil
}

func (r *EventRepo) ListByMember(_ context.Context, userID string) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Event{}
	for _, ev := range r.events {
		if ev.IsMember(userID) {
			out = append(out, cloneEvent(ev))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *EventRepo) Update(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.events[event.ID]
	if !ok {
		return eventRepo.ErrEventNotFound
	}
	if stored.Version != event.Version {
		return eventRepo.ErrVersionConflict
	}
	event.Version++
	event.UpdatedAt = time.Now().UTC()
	r.events[event.ID] = cloneEvent(*event)
	return nil
}

func (r *EventRepo) AddParticipant(_ context.Context, eventID, userID string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[eventID]
	if !ok || ev.Status != models.EventStatusOpen {
		return nil, eventRepo.ErrEventNotFound
	}
	if !ev.IsMember(userID) {
		ev.ParticipantIDs = append(ev.ParticipantIDs, userID)
	}
	ev.UpdatedAt = time.Now().UTC()
	r.events[eventID] = ev
	out := cloneEvent(ev)
	return &out, nil
}

func (r *EventRepo) EnsureIndexes(context.Context) error { return nil }

func cloneEvent(ev models.Event) models.Event {
	ev.Windows = append([]models.TimeWindow(nil), ev.Windows...)
	ev.ParticipantIDs = append([]string(nil), ev.ParticipantIDs...)
	return ev
}

// SlotRepo is a slice-backed SlotRepository.
type SlotRepo struct {
	mu    sync.Mutex
	slots []models.TimeSlot
}

func NewSlotRepo() *SlotRepo {
	return &SlotRepo{}
}

var _ slotRepo.SlotRepository = (*SlotRepo)(nil)

func (r *SlotRepo) CreateMany(_ context.Context, slots []models.TimeSlot) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(slots), nil
}

func (r *SlotRepo) insert(slots []models.TimeSlot) []string {
	ids := make([]string, len(slots))
	for i, s := range slots {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}
		r.slots = append(r.slots, s)
		ids[i] = s.ID
	}
	return ids
}

func (r *SlotRepo) Find(_ context.Context, filter slotRepo.SlotFilter) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.TimeSlot{}
	for _, s := range r.slots {
		if matches(filter, s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.Before(out[j].End)
	})
	return out, nil
}

func (r *SlotRepo) ReplaceForOwner(_ context.Context, filter slotRepo.SlotFilter, slots []models.TimeSlot) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(filter)
	ids := r.insert(slots)
	out := make([]models.TimeSlot, len(slots))
	for i := range slots {
		out[i] = r.slots[len(r.slots)-len(slots)+i]
		out[i].ID = ids[i]
	}
	return out, nil
}

func (r *SlotRepo) DeleteMatching(_ context.Context, filter slotRepo.SlotFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remove(filter), nil
}

func (r *SlotRepo) remove(filter slotRepo.SlotFilter) int64 {
	kept := r.slots[:0]
	var n int64
	for _, s := range r.slots {
		if matches(filter, s) {
			n++
			continue
		}
		kept = append(kept, s)
	}
	r.slots = kept
	return n
}

func (r *SlotRepo) EnsureIndexes(context.Context) error { return nil }

func matches(f slotRepo.SlotFilter, s models.TimeSlot) bool {
	return (f.EventID == "" || f.EventID == s.EventID) &&
		(f.OwnerID == "" || f.OwnerID == s.OwnerID) &&
		(f.Kind == "" || f.Kind == s.Kind) &&
		(f.Source == "" || f.Source == s.Source)
}

// UserRepo is a map-backed UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[string]models.User{}}
}

var _ userRepo.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (r *UserRepo) GetByIDWithProjection(_ context.Context, id string, _ bson.M) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			u.PasswordHash = ""
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) Update(_ context.Context, user *models.User) error {
	return r.mutate(user.ID, func(u *models.User) {
		u.Name = user.Name
		u.Timezone = user.Timezone
	})
}

func (r *UserRepo) SetTokenHash(_ context.Context, id, tokenHash string) error {
	return r.mutate(id, func(u *models.User) { u.TokenHash = tokenHash })
}

func (r *UserRepo) SetGoogleToken(_ context.Context, id string, token *models.GoogleToken, calendarID string) error {
	if calendarID == "" {
		calendarID = "primary"
	}
	return r.mutate(id, func(u *models.User) {
		u.GoogleToken = token
		u.GoogleCalendarID = calendarID
	})
}

func (r *UserRepo) EnsureIndexes(context.Context) error { return nil }

func (r *UserRepo) mutate(id string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}
