package handlers

import (
	"net/http"

	"syncslot/services/calendarsync"

	"github.com/gin-gonic/gin"
)

type GoogleHandler struct {
	SyncService calendarsync.SyncService
}

func (h *GoogleHandler) AuthURLHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	url, err := h.SyncService.AuthURL(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CallbackHandler handles POST /api/google/callback with the code and state
// the client received from Google's redirect.
func (h *GoogleHandler) CallbackHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		Code  string `json:"code" binding:"required"`
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.SyncService.Connect(c.Request.Context(), userID, req.Code, req.State); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Google calendar connected"})
}

func (h *GoogleHandler) ImportBusyHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	slots, err := h.SyncService.ImportBusy(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
