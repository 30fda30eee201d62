package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

// EditRelationshipHandler retypes and/or rescores a relationship. A term
// change without an explicit score resets the score to the new term's
// default.
func EditRelationshipHandler(c echo.Context) error {
	type editRelationshipData struct {
		ID    string  `param:"id" validate:"required"`
		Term  *string `json:"term"`
		Score *int    `json:"score"`
	}

	type editRelationshipResponse struct {
		Message      string               `json:"message"`
		Relationship *common.Relationship `json:"relationship,omitempty"`
	}

	data := new(editRelationshipData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editRelationshipResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editRelationshipResponse{
			Message: "Invalid request params",
		})
	}

	var term *common.Term
	if data.Term != nil {
		t := common.Term(*data.Term)
		term = &t
	}

	ac := c.(*middleware.AppContext)
	relationship, err := ac.App.Store.UpdateRelationship(c.Request().Context(), data.ID, store.RelationshipPatch{
		Term:  term,
		Score: data.Score,
		Actor: ac.User.Actor(),
	})
	if err != nil {
		return fail(c, err)
	}

	action := common.ActionScoreChange
	if term != nil {
		action = common.ActionTermChange
	}
	publishEvent(c, "relationship", action, relationship.PublicID)

	return c.JSON(http.StatusOK, editRelationshipResponse{
		Message:      "Relationship updated successfully",
		Relationship: &relationship,
	})
}
