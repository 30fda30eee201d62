package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// GetContactsHandler lists all active contacts.
func GetContactsHandler(c echo.Context) error {
	type getContactsResponse struct {
		Message  string           `json:"message"`
		Contacts []common.Contact `json:"contacts"`
	}

	ac := c.(*middleware.AppContext)
	contacts, err := ac.App.Store.ListContacts(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, getContactsResponse{
		Message:  "OK",
		Contacts: contacts,
	})
}

// GetContactHandler returns a single contact by public id.
func GetContactHandler(c echo.Context) error {
	type getContactParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getContactResponse struct {
		Message string          `json:"message"`
		Contact *common.Contact `json:"contact,omitempty"`
	}

	params := new(getContactParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getContactResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getContactResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	contact, err := ac.App.Store.GetContact(c.Request().Context(), params.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, getContactResponse{
		Message: "OK",
		Contact: &contact,
	})
}
