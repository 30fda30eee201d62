package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// GetRelationshipHandler returns one relationship, soft-deleted included.
func GetRelationshipHandler(c echo.Context) error {
	type getRelationshipParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getRelationshipResponse struct {
		Message      string               `json:"message"`
		Relationship *common.Relationship `json:"relationship,omitempty"`
	}

	params := new(getRelationshipParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getRelationshipResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getRelationshipResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	relationship, err := ac.App.Store.GetRelationship(c.Request().Context(), params.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, getRelationshipResponse{
		Message:      "OK",
		Relationship: &relationship,
	})
}

// GetRelationshipHistoryHandler pages through a relationship's audit
// trail, oldest first. Pass after=<last log id> to continue.
func GetRelationshipHistoryHandler(c echo.Context) error {
	type historyParams struct {
		ID    string `param:"id" validate:"required"`
		After int64  `query:"after"`
		Limit int32  `query:"limit"`
	}

	type historyResponse struct {
		Message string            `json:"message"`
		History []common.LogEntry `json:"history"`
	}

	params := new(historyParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, historyResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, historyResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	history, err := ac.App.Store.History(c.Request().Context(), params.ID, params.After, params.Limit)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, historyResponse{
		Message: "OK",
		History: history,
	})
}

// GetDeletedRelationshipsHandler lists soft-deleted relationships for
// the history toggle view.
func GetDeletedRelationshipsHandler(c echo.Context) error {
	type deletedResponse struct {
		Message       string                `json:"message"`
		Relationships []common.Relationship `json:"relationships"`
	}

	ac := c.(*middleware.AppContext)
	relationships, err := ac.App.Store.ListDeleted(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, deletedResponse{
		Message:       "OK",
		Relationships: relationships,
	})
}
