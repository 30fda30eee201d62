package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

// EditAccountHandler partially updates an account. Absent fields stay
// untouched.
func EditAccountHandler(c echo.Context) error {
	type editAccountData struct {
		ID         string  `param:"id" validate:"required"`
		Name       *string `json:"name"`
		Ticker     *string `json:"ticker"`
		DynamicsID *string `json:"dynamics_id"`
	}

	type editAccountResponse struct {
		Message string          `json:"message"`
		Account *common.Account `json:"account,omitempty"`
	}

	data := new(editAccountData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editAccountResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editAccountResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	account, err := ac.App.Store.UpdateAccount(c.Request().Context(), data.ID, store.AccountPatch{
		Name:       data.Name,
		Ticker:     data.Ticker,
		DynamicsID: data.DynamicsID,
		Actor:      ac.User.Actor(),
	})
	if err != nil {
		return fail(c, err)
	}

	publishEvent(c, "account", common.ActionUpdate, account.PublicID)

	return c.JSON(http.StatusOK, editAccountResponse{
		Message: "Account updated successfully",
		Account: &account,
	})
}
