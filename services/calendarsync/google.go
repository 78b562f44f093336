package calendarsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"syncslot/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleCalendar is the slice of the Google Calendar API the sync service uses.
type GoogleCalendar interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FreeBusy(ctx context.Context, token *oauth2.Token, calendarID string, from, to time.Time) ([]models.SlotInput, error)
	InsertEvent(ctx context.Context, token *oauth2.Token, calendarID string, ev PushedEvent) error
}

// PushedEvent is what gets written into a participant's calendar.
type PushedEvent struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

// ErrAlreadyPushed reports that the calendar already holds the event.
var ErrAlreadyPushed = errors.New("event already exists in calendar")

type GoogleClient struct {
	config *oauth2.Config
}

func NewGoogleClient(clientID, clientSecret, redirectURL string) *GoogleClient {
	return &GoogleClient{config: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{calendar.CalendarReadonlyScope, calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}}
}

// AuthCodeURL asks for offline access so a refresh token comes back.
func (g *GoogleClient) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (g *GoogleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

func (g *GoogleClient) service(ctx context.Context, token *oauth2.Token) (*calendar.Service, error) {
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(g.config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return srv, nil
}

func (g *GoogleClient) FreeBusy(ctx context.Context, token *oauth2.Token, calendarID string, from, to time.Time) ([]models.SlotInput, error) {
	srv, err := g.service(ctx, token)
	if err != nil {
		return nil, err
	}
	resp, err := srv.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: from.UTC().Format(time.RFC3339),
		TimeMax: to.UTC().Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query free/busy: %w", err)
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return []models.SlotInput{}, nil
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("free/busy error for %s: %s", calendarID, cal.Errors[0].Reason)
	}
	out := make([]models.SlotInput, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil || !end.After(start) {
			continue
		}
		out = append(out, models.SlotInput{Start: start.UTC(), End: end.UTC()})
	}
	return out, nil
}

func (g *GoogleClient) InsertEvent(ctx context.Context, token *oauth2.Token, calendarID string, ev PushedEvent) error {
	srv, err := g.service(ctx, token)
	if err != nil {
		return err
	}
	_, err = srv.Events.Insert(calendarID, &calendar.Event{
		Id:          ev.ID,
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &calendar.EventDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: ev.TimeZone},
		End:         &calendar.EventDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: ev.TimeZone},
	}).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
			return ErrAlreadyPushed
		}
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// googleEventID derives a stable calendar event ID. Google only accepts
// base32hex characters, which a dash-less UUID satisfies.
func googleEventID(eventID string) string {
	return strings.ToLower(strings.ReplaceAll(eventID, "-", ""))
}

func toOAuthToken(t *models.GoogleToken) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func fromOAuthToken(t *oauth2.Token) *models.GoogleToken {
	return &models.GoogleToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}
