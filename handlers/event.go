package handlers

import (
	"net/http"

	"syncslot/models"
	"syncslot/services/event"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	EventService event.EventService
}

func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := h.EventService.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	events, err := h.EventService.ListEventsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) GetEventHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ev, err := h.EventService.GetEvent(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) JoinEventHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ev, err := h.EventService.JoinEvent(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) AddWindowHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var window models.TimeWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := h.EventService.AddWindow(c.Request.Context(), c.Param("id"), userID, window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) RemoveWindowHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ev, err := h.EventService.RemoveWindow(c.Request.Context(), c.Param("id"), userID, c.Param("windowID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) FinalizeEventHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := h.EventService.FinalizeEvent(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) CancelEventHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ev, err := h.EventService.CancelEvent(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}
