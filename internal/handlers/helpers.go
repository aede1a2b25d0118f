package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/middleware"
)

// requireUser returns the authenticated user ID or writes a 401 response.
func requireUser(c *gin.Context) (string, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return "", false
	}
	return userID, true
}

// bindJSON binds the request body or writes a 400 response.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
