package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// DeleteRelationshipHandler soft-deletes a relationship. The row and its
// history survive; the edge just leaves the default graph view.
func DeleteRelationshipHandler(c echo.Context) error {
	type deleteRelationshipParams struct {
		ID string `param:"id" validate:"required"`
	}

	type deleteRelationshipResponse struct {
		Message      string               `json:"message"`
		Relationship *common.Relationship `json:"relationship,omitempty"`
	}

	params := new(deleteRelationshipParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteRelationshipResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteRelationshipResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	relationship, err := ac.App.Store.DeleteRelationship(c.Request().Context(), params.ID, ac.User.Actor())
	if err != nil {
		return fail(c, err)
	}

	publishEvent(c, "relationship", common.ActionSoftDelete, relationship.PublicID)

	return c.JSON(http.StatusOK, deleteRelationshipResponse{
		Message:      "Relationship deleted successfully",
		Relationship: &relationship,
	})
}
