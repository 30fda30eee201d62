package server

import (
	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Account routes
	apiRoutes.GET("/accounts", routes.GetAccountsHandler)
	apiRoutes.GET("/accounts/:id", routes.GetAccountHandler)
	apiRoutes.POST("/accounts", routes.CreateAccountHandler, middleware.RequirePermission("entity.create"))
	apiRoutes.PATCH("/accounts/:id", routes.EditAccountHandler, middleware.RequirePermission("entity.update"))
	apiRoutes.DELETE("/accounts/:id", routes.DeleteAccountHandler, middleware.RequirePermission("entity.delete"))

	// Contact routes
	apiRoutes.GET("/contacts", routes.GetContactsHandler)
	apiRoutes.GET("/contacts/:id", routes.GetContactHandler)
	apiRoutes.POST("/contacts", routes.CreateContactHandler, middleware.RequirePermission("entity.create"))
	apiRoutes.PATCH("/contacts/:id", routes.EditContactHandler, middleware.RequirePermission("entity.update"))
	apiRoutes.DELETE("/contacts/:id", routes.DeleteContactHandler, middleware.RequirePermission("entity.delete"))

	// Relationship routes
	apiRoutes.GET("/relationships/deleted", routes.GetDeletedRelationshipsHandler)
	apiRoutes.GET("/relationships/:id", routes.GetRelationshipHandler)
	apiRoutes.GET("/relationships/:id/history", routes.GetRelationshipHistoryHandler)
	apiRoutes.POST("/relationships", routes.CreateRelationshipHandler, middleware.RequirePermission("relationship.create"))
	apiRoutes.PATCH("/relationships/:id", routes.EditRelationshipHandler, middleware.RequirePermission("relationship.update"))
	apiRoutes.DELETE("/relationships/:id", routes.DeleteRelationshipHandler, middleware.RequirePermission("relationship.delete"))

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler, middleware.RequirePermission("graph.view"))
	apiRoutes.GET("/search", routes.SearchNodesHandler, middleware.RequirePermission("graph.view"))
}
