package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/store"
)

// CreateRelationshipHandler connects two nodes. Reconnecting a
// soft-deleted pair reactivates the old relationship instead of
// creating a second row.
func CreateRelationshipHandler(c echo.Context) error {
	type createRelationshipBody struct {
		SourceType string `json:"source_type" validate:"required,oneof=account contact"`
		SourceID   string `json:"source_id" validate:"required"`
		TargetType string `json:"target_type" validate:"required,oneof=account contact"`
		TargetID   string `json:"target_id" validate:"required"`
		Term       string `json:"term" validate:"required"`
		Score      *int   `json:"score"`
	}

	type createRelationshipResponse struct {
		Message      string               `json:"message"`
		Relationship *common.Relationship `json:"relationship,omitempty"`
	}

	data := new(createRelationshipBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createRelationshipResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createRelationshipResponse{
			Message: "Invalid request body",
		})
	}

	ac := c.(*middleware.AppContext)
	relationship, err := ac.App.Store.CreateRelationship(c.Request().Context(), store.CreateRelationshipParams{
		SourceType:     common.NodeType(data.SourceType),
		SourcePublicID: data.SourceID,
		TargetType:     common.NodeType(data.TargetType),
		TargetPublicID: data.TargetID,
		Term:           common.Term(data.Term),
		Score:          data.Score,
		Actor:          ac.User.Actor(),
	})
	if err != nil {
		return fail(c, err)
	}

	// a reactivated row keeps its original created_at
	action := common.ActionCreate
	if !relationship.CreatedAt.Equal(relationship.UpdatedAt) {
		action = common.ActionReactivate
	}
	publishEvent(c, "relationship", action, relationship.PublicID)

	return c.JSON(http.StatusOK, createRelationshipResponse{
		Message:      "Relationship created successfully",
		Relationship: &relationship,
	})
}
