package handlers

import (
	"net/http"
	"time"

	"syncslot/models"
	"syncslot/services/availability"
	"syncslot/services/user"
	"syncslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	AvailabilityService availability.AvailabilityService
	// UserService supplies the profile timezone when no tz is requested. Optional.
	UserService user.UserService
}

func (h *AvailabilityHandler) ListSlotsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	slots, err := h.AvailabilityService.ListSlots(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// SubmitPreferredSlotsHandler handles PUT /api/events/:id/slots/preferred.
// The body replaces all of the caller's preferred slots.
func (h *AvailabilityHandler) SubmitPreferredSlotsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.SubmitSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.AvailabilityService.SubmitPreferredSlots(c.Request.Context(), c.Param("id"), userID, req.Slots)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": saved})
}

func (h *AvailabilityHandler) AddBusySlotsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.SubmitSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.AvailabilityService.AddBusySlots(c.Request.Context(), c.Param("id"), userID, req.Slots, models.SlotSourceManual)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slots": saved})
}

// ClearBusySlotsHandler handles DELETE /api/events/:id/slots/busy?source=manual|google.
func (h *AvailabilityHandler) ClearBusySlotsHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	source := c.Query("source")
	if source != "" && source != models.SlotSourceManual && source != models.SlotSourceGoogle {
		utils.JSONError(c, http.StatusBadRequest, "Unknown slot source", source)
		return
	}
	n, err := h.AvailabilityService.ClearBusySlots(c.Request.Context(), c.Param("id"), userID, source)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// DensityHandler handles GET /api/events/:id/density?kind=preferred|busy.
func (h *AvailabilityHandler) DensityHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	kind := c.DefaultQuery("kind", models.SlotKindPreferred)
	blocks, err := h.AvailabilityService.Density(c.Request.Context(), c.Param("id"), userID, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "blocks": blocks})
}

func (h *AvailabilityHandler) OverlapHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	part, err := h.AvailabilityService.Overlap(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// CalendarHandler handles GET /api/events/:id/calendar?tz=Area/City. Without
// tz the viewer's profile timezone is used, then UTC.
func (h *AvailabilityHandler) CalendarHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var loc *time.Location
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Unknown timezone", tz)
			return
		}
		loc = l
	} else {
		loc = h.profileLocation(c, userID)
	}
	view, err := h.AvailabilityService.Calendar(c.Request.Context(), c.Param("id"), userID, loc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AvailabilityHandler) profileLocation(c *gin.Context, userID string) *time.Location {
	if h.UserService == nil {
		return time.UTC
	}
	usr, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil || usr.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(usr.Timezone)
	if err != nil {
		getLogger(c).Warn("Stored timezone is invalid", zap.String("userID", userID), zap.String("timezone", usr.Timezone))
		return time.UTC
	}
	return loc
}
