package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
)

// GetAccountsHandler lists all active accounts.
func GetAccountsHandler(c echo.Context) error {
	type getAccountsResponse struct {
		Message  string           `json:"message"`
		Accounts []common.Account `json:"accounts"`
	}

	ac := c.(*middleware.AppContext)
	accounts, err := ac.App.Store.ListAccounts(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, getAccountsResponse{
		Message:  "OK",
		Accounts: accounts,
	})
}

// GetAccountHandler returns a single account by public id.
func GetAccountHandler(c echo.Context) error {
	type getAccountParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getAccountResponse struct {
		Message string          `json:"message"`
		Account *common.Account `json:"account,omitempty"`
	}

	params := new(getAccountParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getAccountResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getAccountResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	account, err := ac.App.Store.GetAccount(c.Request().Context(), params.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, getAccountResponse{
		Message: "OK",
		Account: &account,
	})
}
