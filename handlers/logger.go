package handlers

import (
	"errors"
	"net/http"

	"syncslot/middleware"
	"syncslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger set by middleware.RequestLogger, or
// the global logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// respondError maps service errors to HTTP responses. Unknown errors become
// a 500 without leaking their text.
func respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		utils.JSONError(c, appErr.Status(), appErr.Message, "")
		return
	}
	getLogger(c).Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
}

// requireUser returns the authenticated user ID or aborts with 401.
func requireUser(c *gin.Context) (string, bool) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return "", false
	}
	return userID, true
}
