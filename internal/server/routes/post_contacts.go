package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

// CreateContactHandler creates a person node, optionally linked to an
// account by public id.
func CreateContactHandler(c echo.Context) error {
	type createContactBody struct {
		FirstName  string `json:"first_name" validate:"required"`
		LastName   string `json:"last_name"`
		JobTitle   string `json:"job_title"`
		DynamicsID string `json:"dynamics_id"`
		AccountID  string `json:"account_id"`
	}

	type createContactResponse struct {
		Message string          `json:"message"`
		Contact *common.Contact `json:"contact,omitempty"`
	}

	data := new(createContactBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createContactResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createContactResponse{
			Message: "Invalid request body",
		})
	}

	ac := c.(*middleware.AppContext)
	contact, err := ac.App.Store.CreateContact(c.Request().Context(), store.CreateContactParams{
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

	publishEvent(c, "contact", common.ActionCreate, contact.PublicID)

	return c.JSON(http.StatusOK, createContactResponse{
		Message: "Contact created successfully",
		Contact: &contact,
	})
}
