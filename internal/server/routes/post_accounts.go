package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

// CreateAccountHandler creates a company account node.
func CreateAccountHandler(c echo.Context) error {
	type createAccountBody struct {
		Name       string `json:"name" validate:"required"`
		Ticker     string `json:"ticker"`
		DynamicsID string `json:"dynamics_id"`
	}

	type createAccountResponse struct {
		Message string          `json:"message"`
		Account *common.Account `json:"account,omitempty"`
	}

	data := new(createAccountBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAccountResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAccountResponse{
			Message: "Invalid request body",
		})
	}

	ac := c.(*middleware.AppContext)
	account, err := ac.App.Store.CreateAccount(c.Request().Context(), store.CreateAccountParams{
		Name:       data.Name,
		Ticker:     data.Ticker,
		DynamicsID: data.DynamicsID,
		Actor:      ac.User.Actor(),
	})
	if err != nil {
		return fail(c, err)
	}

	publishEvent(c, "account", common.ActionCreate, account.PublicID)

	return c.JSON(http.StatusOK, createAccountResponse{
		Message: "Account created successfully",
		Account: &account,
	})
}
