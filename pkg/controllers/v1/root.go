package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/httputil"
)

// Controller serves the v1 API on top of the budget service.
type Controller struct {
	Service *budget.Service
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	co.RegisterItineraryRoutes(r.Group("/itineraries"))
	co.RegisterBudgetRoutes(r.Group("/budget"))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Itineraries string `json:"itineraries" example:"https://example.com/api/v1/itineraries"`      // URL of Itinerary collection endpoint
	Records     string `json:"records" example:"https://example.com/api/v1/budget/records"`       // URL of Budget Record collection endpoint
	Summary     string `json:"summary" example:"https://example.com/api/v1/budget/summary"`       // URL of the budget summary endpoint
	Analyze     string `json:"analyze" example:"https://example.com/api/v1/budget/analyze"`       // URL of the spend analysis endpoint
	Reallocate  string `json:"reallocate" example:"https://example.com/api/v1/budget/reallocate"` // URL of the reallocation endpoint
	Days        string `json:"days" example:"https://example.com/api/v1/budget/days"`             // Prefix of the single day endpoints
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := httputil.URL(c)

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Itineraries: url + "/v1/itineraries",
			Records:     url + "/v1/budget/records",
			Summary:     url + "/v1/budget/summary",
			Analyze:     url + "/v1/budget/analyze",
			Reallocate:  url + "/v1/budget/reallocate",
			Days:        url + "/v1/budget/days",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
