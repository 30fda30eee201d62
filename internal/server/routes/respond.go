package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/queue"
	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/logger"
)

type messageResponse struct {
	Message string `json:"message"`
}

// fail maps store errors onto HTTP statuses. Taxonomy errors carry a
// client-safe message; anything else is logged and masked.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: err.Error()})
	case errors.Is(err, common.ErrConflict):
		return c.JSON(http.StatusConflict, messageResponse{Message: err.Error()})
	default:
		logger.Error("Request failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}
}

// publishEvent queues a CRM sync event for an already-committed mutation.
func publishEvent(c echo.Context, object string, action common.Action, publicID string) {
	ac := c.(*middleware.AppContext)
	queue.PublishMutation(ac.App.Queue, queue.MutationEvent{
		Object:   object,
		Action:   string(action),
		PublicID: publicID,
		Actor:    ac.User.Actor(),
	})
}
