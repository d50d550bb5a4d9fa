package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripbudget/backend/internal/httperror"
	"github.com/tripbudget/backend/pkg/httputil"
)

// RegisterItineraryRoutes registers the routes for itineraries with
// the RouterGroup that is passed.
func (co Controller) RegisterItineraryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsItineraryList)
		r.GET("", co.GetItineraries)
		r.POST("", co.CreateItinerary)
	}

	// Itinerary with ID
	{
		r.OPTIONS("/:id", OptionsItineraryDetail)
		r.GET("/:id", co.GetItinerary)
		r.DELETE("/:id", co.DeleteItinerary)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Itineraries
// @Success		204
// @Router			/v1/itineraries [options]
func OptionsItineraryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Itineraries
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/itineraries/{id} [options]
func OptionsItineraryDetail(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Create itinerary
// @Description	Creates an itinerary with its days. When no day has a budget, the total budget is split equally over the days.
// @Tags			Itineraries
// @Accept			json
// @Produce		json
// @Success		201			{object}	ItineraryResponse
// @Failure		400			{object}	ItineraryResponse
// @Failure		500			{object}	ItineraryResponse
// @Param			itinerary	body		ItineraryEditable	true	"Itinerary"
// @Router			/v1/itineraries [post]
func (co Controller) CreateItinerary(c *gin.Context) {
	var editable ItineraryEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ItineraryResponse{
			Error: &e,
		})
		return
	}

	itinerary, err := co.Service.CreateItinerary(c.Request.Context(), editable.model())
	if err != nil {
		e := err.Error()
		c.JSON(httperror.Status(err), ItineraryResponse{
			Error: &e,
		})
		return
	}

	data := newItinerary(httputil.URL(c), itinerary)
	c.JSON(http.StatusCreated, ItineraryResponse{Data: &data})
}

// @Summary		List itineraries
// @Description	Returns all itineraries with their days
// @Tags			Itineraries
// @Produce		json
// @Success		200	{object}	ItineraryListResponse
// @Failure		500	{object}	ItineraryListResponse
// @Router			/v1/itineraries [get]
func (co Controller) GetItineraries(c *gin.Context) {
	itineraries, err := co.Service.ListItineraries(c.Request.Context())
	if err != nil {
		e := err.Error()
		c.JSON(httperror.Status(err), ItineraryListResponse{
			Error: &e,
		})
		return
	}

	url := httputil.URL(c)
	data := make([]Itinerary, 0, len(itineraries))
	for _, itinerary := range itineraries {
		data = append(data, newItinerary(url, itinerary))
	}

	c.JSON(http.StatusOK, ItineraryListResponse{Data: data})
}

// @Summary		Get itinerary
// @Description	Returns a specific itinerary with its days
// @Tags			Itineraries
// @Produce		json
// @Success		200	{object}	ItineraryResponse
// @Failure		400	{object}	ItineraryResponse
// @Failure		404	{object}	ItineraryResponse
// @Failure		500	{object}	ItineraryResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/itineraries/{id} [get]
func (co Controller) GetItinerary(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ItineraryResponse{
			Error: &e,
		})
		return
	}

	itinerary, err := co.Service.GetItinerary(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(httperror.Status(err), ItineraryResponse{
			Error: &e,
		})
		return
	}

	data := newItinerary(httputil.URL(c), itinerary)
	c.JSON(http.StatusOK, ItineraryResponse{Data: &data})
}

// @Summary		Delete itinerary
// @Description	Deletes an itinerary and its days. Budget records are kept.
// @Tags			Itineraries
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/itineraries/{id} [delete]
func (co Controller) DeleteItinerary(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	err := co.Service.DeleteItinerary(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.Status(http.StatusNoContent)
}
