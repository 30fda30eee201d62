package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

// EditContactHandler partially updates a contact. Sending account_id as
// an empty string detaches the contact from its account.
func EditContactHandler(c echo.Context) error {
	type editContactData struct {
		ID         string  `param:"id" validate:"required"`
		FirstName  *string `json:"first_name"`
		LastName   *string `json:"last_name"`
		JobTitle   *string `json:"job_title"`
		DynamicsID *string `json:"dynamics_id"`
		AccountID  *string `json:"account_id"`
	}

	type editContactResponse struct {
		Message string          `json:"message"`
		Contact *common.Contact `json:"contact,omitempty"`
	}

	data := new(editContactData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editContactResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editContactResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	contact, err := ac.App.Store.UpdateContact(c.Request().Context(), data.ID, store.ContactPatch{
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		JobTitle:        data.JobTitle,
		DynamicsID:      data.DynamicsID,
		AccountPublicID: data.AccountID,
		Actor:           ac.User.Actor(),
	})
	if err != nil {
		return fail(c, err)
	}

	publishEvent(c, "contact", common.ActionUpdate, contact.PublicID)

	return c.JSON(http.StatusOK, editContactResponse{
		Message: "Contact updated successfully",
		Contact: &contact,
	})
}
