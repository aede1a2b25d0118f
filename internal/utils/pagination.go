package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-task-api/internal/constants"
)

// CursorParams holds cursor pagination parameters
type CursorParams struct {
	Limit  int
	Cursor string
}

// GetCursorParams extracts cursor pagination parameters from the request.
// A missing limit falls back to the default; out-of-range values are kept so
// the caller can reject them.
func GetCursorParams(c *gin.Context) (CursorParams, error) {
	limit := constants.DefaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return CursorParams{}, err
		}
		limit = parsed
	}

	return CursorParams{
		Limit:  limit,
		Cursor: c.Query("cursor"),
	}, nil
}
