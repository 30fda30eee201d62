package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/atlascrm/relgraph/backend/internal/server/middleware"
	"github.com/atlascrm/relgraph/backend/pkg/common"
	"github.com/atlascrm/relgraph/backend/pkg/graph"
)

// GetGraphHandler assembles the dashboard graph. Seeds come from a
// search query or explicit node refs; with neither, the most-connected
// view is returned.
func GetGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		Query          string `query:"q"`
		Seed           string `query:"seed"`
		Depth          int    `query:"depth"`
		Limit          int    `query:"limit"`
		IncludeDeleted bool   `query:"include_deleted"`
	}

	type getGraphResponse struct {
		Message string        `json:"message"`
		Graph   *common.Graph `json:"graph,omitempty"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getGraphResponse{
			Message: "Invalid request params",
		})
	}

	var seeds []string
	for _, seed := range strings.Split(params.Seed, ",") {
		if seed = strings.TrimSpace(seed); seed != "" {
			seeds = append(seeds, seed)
		}
	}

	ac := c.(*middleware.AppContext)
	data, err := ac.App.Store.LoadGraphData(c.Request().Context(), params.IncludeDeleted)
	if err != nil {
		return fail(c, err)
	}

	result := graph.Assemble(data, graph.Options{
		Query:          params.Query,
		Seeds:          seeds,
		Depth:          params.Depth,
		Limit:          params.Limit,
		IncludeDeleted: params.IncludeDeleted,
	})

	return c.JSON(http.StatusOK, getGraphResponse{
		Message: "OK",
		Graph:   &result,
	})
}

// SearchNodesHandler returns matching nodes only, for autocomplete.
func SearchNodesHandler(c echo.Context) error {
	type searchParams struct {
		Query string `query:"q" validate:"required"`
	}

	type searchResponse struct {
		Message string        `json:"message"`
		Nodes   []common.Node `json:"nodes"`
	}

	params := new(searchParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, searchResponse{
			Message: "Invalid request params",
		})
	}

	ac := c.(*middleware.AppContext)
	data, err := ac.App.Store.LoadGraphData(c.Request().Context(), false)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, searchResponse{
		Message: "OK",
		Nodes:   graph.Search(data, params.Query),
	})
}
