package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// DeleteContactHandler soft-deletes a contact. Without cascade=true the
// delete is rejected while active relationships still reference it.
func DeleteContactHandler(c echo.Context) error {
	type deleteContactParams struct {
		ID      string `param:"id" validate:"required"`
		Cascade bool   `query:"cascade"`
	}

	type deleteContactResponse struct {
		Message              string                `json:"message"`
		DeletedRelationships []common.Relationship `json:"deleted_relationships,omitempty"`
	}

	params := new(deleteContactParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteContactResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteContactResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	cascaded, err := ac.App.Store.DeleteContact(c.Request().Context(), params.ID, params.Cascade, ac.User.Actor())
	if err != nil {
		return fail(c, err)
	}

	publishEvent(c, "contact", common.ActionSoftDelete, params.ID)
	for _, relationship := range cascaded {
		publishEvent(c, "relationship", common.ActionSoftDelete, relationship.PublicID)
	}

	return c.JSON(http.StatusOK, deleteContactResponse{
		Message:              "Contact deleted successfully",
		DeletedRelationships: cascaded,
	})
}
