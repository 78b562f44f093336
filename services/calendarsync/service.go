package calendarsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventRepo "syncslot/database/repository/event"
	userRepo "syncslot/database/repository/user"
	"syncslot/models"
	"syncslot/services/availability"
	"syncslot/utils"

	"go.uber.org/zap"
)

const stateTTL = 10 * time.Minute

// ErrNotConfigured is returned when no Google OAuth client is set up.
var ErrNotConfigured = utils.NewInvalidError("google calendar integration is not configured")

type SyncService interface {
	AuthURL(ctx context.Context, userID string) (string, error)
	Connect(ctx context.Context, userID, code, state string) error
	ImportBusy(ctx context.Context, eventID, userID string) ([]models.TimeSlot, error)
	PushFinalized(ctx context.Context, eventID string) error
}

type DefaultSyncService struct {
	Users        userRepo.UserRepository
	Events       eventRepo.EventRepository
	Availability availability.AvailabilityService
	Google       GoogleCalendar
}

func NewSyncService(users userRepo.UserRepository, events eventRepo.EventRepository, avail availability.AvailabilityService, google GoogleCalendar) *DefaultSyncService {
	return &DefaultSyncService{Users: users, Events: events, Availability: avail, Google: google}
}

// AuthURL returns the Google consent URL. The state is a short-lived token
// bound to the user so the callback cannot be replayed for someone else.
func (s *DefaultSyncService) AuthURL(_ context.Context, userID string) (string, error) {
	if s.Google == nil {
		return "", ErrNotConfigured
	}
	state, err := utils.GenerateToken(userID, "google-oauth", stateTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}
	return s.Google.AuthCodeURL(state), nil
}

// Connect exchanges the authorization code and stores the token on the user.
func (s *DefaultSyncService) Connect(ctx context.Context, userID, code, state string) error {
	if s.Google == nil {
		return ErrNotConfigured
	}
	if code == "" {
		return utils.NewInvalidError("authorization code is required")
	}
	subject, err := utils.ExtractIDFromToken(state)
	if err != nil || subject != userID {
		return utils.NewInvalidError("invalid or expired oauth state")
	}

	token, err := s.Google.Exchange(ctx, code)
	if err != nil {
		return utils.NewUpstreamError("google token exchange failed", err)
	}
	if err := s.Users.SetGoogleToken(ctx, userID, fromOAuthToken(token), "primary"); err != nil {
		return fmt.Errorf("failed to store google token: %w", err)
	}
	utils.GetLogger().Info("Google calendar connected", zap.String("userID", userID))
	return nil
}

// ImportBusy replaces the user's Google-sourced busy slots with the free/busy
// data of their calendar across the event's windows.
func (s *DefaultSyncService) ImportBusy(ctx context.Context, eventID, userID string) ([]models.TimeSlot, error) {
	if s.Google == nil {
		return nil, ErrNotConfigured
	}
	ev, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, utils.NewNotFoundError("event %s not found", eventID)
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if !ev.IsMember(userID) {
		return nil, utils.NewForbiddenError("user is not a participant of this event")
	}
	from, to, ok := ev.Span()
	if !ok {
		return nil, utils.NewInvalidError("event has no proposed windows")
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.GoogleConnected() {
		return nil, utils.NewInvalidError("google calendar is not connected")
	}

	busy, err := s.Google.FreeBusy(ctx, toOAuthToken(user.GoogleToken), calendarID(user), from, to)
	if err != nil {
		return nil, utils.NewUpstreamError("google free/busy query failed", err)
	}
	saved, err := s.Availability.ReplaceBusySlots(ctx, eventID, userID, busy, models.SlotSourceGoogle)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Imported google busy time", zap.String("eventID", eventID), zap.String("userID", userID), zap.Int("count", len(saved)))
	return saved, nil
}

// PushFinalized writes the finalized event into every connected member's
// calendar. Members that already have it are skipped; other failures are
// joined so the caller can retry.
func (s *DefaultSyncService) PushFinalized(ctx context.Context, eventID string) error {
	if s.Google == nil {
		return nil
	}
	ev, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load event %s: %w", eventID, err)
	}
	if ev.Status != models.EventStatusFinalized || ev.FinalStart == nil || ev.FinalEnd == nil {
		utils.GetLogger().Info("Skipping calendar push for non-finalized event", zap.String("eventID", eventID), zap.String("status", ev.Status))
		return nil
	}

	users, err := s.Users.GetByIDs(ctx, ev.Members())
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	pushed := PushedEvent{
		ID:          googleEventID(ev.ID),
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       *ev.FinalStart,
		End:         *ev.FinalEnd,
		TimeZone:    ev.Timezone,
	}
	var errs []error
	for i := range users {
		u := &users[i]
		if !u.GoogleConnected() {
			continue
		}
		err := s.Google.InsertEvent(ctx, toOAuthToken(u.GoogleToken), calendarID(u), pushed)
		switch {
		case err == nil, errors.Is(err, ErrAlreadyPushed):
		default:
			utils.GetLogger().Warn("Calendar push failed", zap.String("eventID", eventID), zap.String("userID", u.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("user %s: %w", u.ID, err))
		}
	}
	return errors.Join(errs...)
}

func calendarID(u *models.User) string {
	if u.GoogleCalendarID == "" {
		return "primary"
	}
	return u.GoogleCalendarID
}
