// File: handlers/bundle.go
package handlers

import (
	"syncslot/services/availability"
	"syncslot/services/calendarsync"
	"syncslot/services/event"
	"syncslot/services/suggestion"
	"syncslot/services/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	// User endpoints
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	GetCurrentUserHandler      gin.HandlerFunc
	UpdateCurrentUserHandler   gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc

	// Event endpoints
	CreateEventHandler   gin.HandlerFunc
	ListEventsHandler    gin.HandlerFunc
	GetEventHandler      gin.HandlerFunc
	JoinEventHandler     gin.HandlerFunc
	AddWindowHandler     gin.HandlerFunc
	RemoveWindowHandler  gin.HandlerFunc
	FinalizeEventHandler gin.HandlerFunc
	CancelEventHandler   gin.HandlerFunc

	// Availability endpoints
	ListSlotsHandler            gin.HandlerFunc
	SubmitPreferredSlotsHandler gin.HandlerFunc
	AddBusySlotsHandler         gin.HandlerFunc
	ClearBusySlotsHandler       gin.HandlerFunc
	DensityHandler              gin.HandlerFunc
	OverlapHandler              gin.HandlerFunc
	CalendarHandler             gin.HandlerFunc

	// AI endpoints
	SuggestHandler gin.HandlerFunc

	// Google endpoints
	GoogleAuthURLHandler    gin.HandlerFunc
	GoogleCallbackHandler   gin.HandlerFunc
	GoogleImportBusyHandler gin.HandlerFunc
}

// Services are the dependencies NewHandlerBundle wires into handlers.
type Services struct {
	Users        user.UserService
	Events       event.EventService
	Availability availability.AvailabilityService
	Suggestions  suggestion.SuggestionService
	Sync         calendarsync.SyncService
}

func NewHandlerBundle(s Services) *HandlerBundle {
	uh := &UserHandler{UserService: s.Users}
	eh := &EventHandler{EventService: s.Events}
	ah := &AvailabilityHandler{AvailabilityService: s.Availability, UserService: s.Users}
	sh := &SuggestionHandler{SuggestionService: s.Suggestions}
	gh := &GoogleHandler{SyncService: s.Sync}

	return &HandlerBundle{
		RegisterUserHandler:        uh.RegisterUserHandler,
		AuthenticateUserHandler:    uh.AuthenticateUserHandler,
		GetCurrentUserHandler:      uh.GetCurrentUserHandler,
		UpdateCurrentUserHandler:   uh.UpdateCurrentUserHandler,
		RevokeUserAuthTokenHandler: uh.RevokeUserAuthTokenHandler,

		CreateEventHandler:   eh.CreateEventHandler,
		ListEventsHandler:    eh.ListEventsHandler,
		GetEventHandler:      eh.GetEventHandler,
		JoinEventHandler:     eh.JoinEventHandler,
		AddWindowHandler:     eh.AddWindowHandler,
		RemoveWindowHandler:  eh.RemoveWindowHandler,
		FinalizeEventHandler: eh.FinalizeEventHandler,
		CancelEventHandler:   eh.CancelEventHandler,

		ListSlotsHandler:            ah.ListSlotsHandler,
		SubmitPreferredSlotsHandler: ah.SubmitPreferredSlotsHandler,
		AddBusySlotsHandler:         ah.AddBusySlotsHandler,
		ClearBusySlotsHandler:       ah.ClearBusySlotsHandler,
		DensityHandler:              ah.DensityHandler,
		OverlapHandler:              ah.OverlapHandler,
		CalendarHandler:             ah.CalendarHandler,

		SuggestHandler: sh.SuggestHandler,

		GoogleAuthURLHandler:    gh.AuthURLHandler,
		GoogleCallbackHandler:   gh.CallbackHandler,
		GoogleImportBusyHandler: gh.ImportBusyHandler,
	}
}
