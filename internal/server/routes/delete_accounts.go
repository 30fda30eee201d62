package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// DeleteAccountHandler soft-deletes an account. Without cascade=true the
// delete is rejected while active relationships still reference it.
func DeleteAccountHandler(c echo.Context) error {
	type deleteAccountParams struct {
		ID      string `param:"id" validate:"required"`
		Cascade bool   `query:"cascade"`
	}

	type deleteAccountResponse struct {
		Message              string                `json:"message"`
		DeletedRelationships []common.Relationship `json:"deleted_relationships,omitempty"`
	}

	params := new(deleteAccountParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteAccountResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteAccountResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	cascaded, err := ac.App.Store.DeleteAccount(c.Request().Context(), params.ID, params.Cascade, ac.User.Actor())
	if err != nil {
		return fail(c, err)
	}

	publishEvent(c, "account", common.ActionSoftDelete, params.ID)
	for _, relationship := range cascaded {
		publishEvent(c, "relationship", common.ActionSoftDelete, relationship.PublicID)
	}

	return c.JSON(http.StatusOK, deleteAccountResponse{
		Message:              "Account deleted successfully",
		DeletedRelationships: cascaded,
	})
}
