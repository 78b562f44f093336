package handlers

import (
	"errors"
	"io"
	"net/http"

	"syncslot/models"
	"syncslot/services/suggestion"

	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	SuggestionService suggestion.SuggestionService
}

// SuggestHandler handles POST /api/events/:id/suggestions. The body is optional.
func (h *SuggestionHandler) SuggestHandler(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	resp, err := h.SuggestionService.Suggest(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
