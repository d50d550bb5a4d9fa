package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tripbudget/backend/internal/httperror"
	"github.com/tripbudget/backend/pkg/allocation"
	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/httputil"
	"github.com/tripbudget/backend/pkg/models"
	"github.com/tripbudget/backend/pkg/summary"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// RegisterBudgetRoutes registers the ledger and allocation routes with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Ledger
	{
		r.OPTIONS("/records", OptionsRecordList)
		r.GET("/records", co.GetRecords)
		r.POST("/records", co.CreateRecord)
		r.OPTIONS("/records/:id", OptionsRecordDetail)
		r.DELETE("/records/:id", co.DeleteRecord)
	}

	// Reports
	{
		r.OPTIONS("/summary", OptionsGet)
		r.GET("/summary", co.GetSummary)
		r.OPTIONS("/summary/export", OptionsGet)
		r.GET("/summary/export", co.ExportSummary)
		r.OPTIONS("/analyze", OptionsGet)
		r.GET("/analyze", co.Analyze)
	}

	// Allocation
	{
		r.OPTIONS("/reallocate", OptionsPost)
		r.POST("/reallocate", co.Reallocate)
		r.OPTIONS("/days/update", OptionsPost)
		r.POST("/days/update", co.UpdateDay)
		r.OPTIONS("/days/adjust", OptionsPost)
		r.POST("/days/adjust", co.AdjustDay)
		r.OPTIONS("/days/reset", OptionsPost)
		r.POST("/days/reset", co.ResetDay)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/budget/summary [options]
// @Router			/v1/budget/summary/export [options]
// @Router			/v1/budget/analyze [options]
func OptionsGet(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/budget/reallocate [options]
// @Router			/v1/budget/days/update [options]
// @Router			/v1/budget/days/adjust [options]
// @Router			/v1/budget/days/reset [options]
func OptionsPost(c *gin.Context) {
	httputil.OptionsPost(c)
}

// summaryResponse writes the summary or the error of a service call.
func summaryResponse(c *gin.Context, s summary.Summary, err error) {
	if err != nil {
		e := err.Error()
		c.JSON(httperror.Status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &s})
}

func summaryError(c *gin.Context, status int, err error) {
	e := err.Error()
	c.JSON(status, SummaryResponse{
		Error: &e,
	})
}

// @Summary		Get budget summary
// @Description	Returns the budget, spend and remaining budget of every day of an itinerary
// @Tags			Budget
// @Produce		json
// @Success		200			{object}	SummaryResponse
// @Failure		400			{object}	SummaryResponse
// @Failure		404			{object}	SummaryResponse
// @Failure		500			{object}	SummaryResponse
// @Param			itineraryId	query		string	true	"ID of the itinerary"
// @Router			/v1/budget/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	var query QueryItinerary
	if err := httputil.BindQuery(c, &query); err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	id, err := query.require()
	if err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	s, err := co.Service.Summary(c.Request.Context(), id)
	summaryResponse(c, s, err)
}

// @Summary		Export budget summary
// @Description	Returns the budget summary of an itinerary as XLSX workbook or PDF report
// @Tags			Budget
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce		application/pdf
// @Success		200
// @Failure		400			{object}	httperror.Error
// @Failure		404			{object}	httperror.Error
// @Failure		500			{object}	httperror.Error
// @Param			itineraryId	query		string	true	"ID of the itinerary"
// @Param			format		query		string	true	"Export format"	Enums(xlsx, pdf)
// @Router			/v1/budget/summary/export [get]
func (co Controller) ExportSummary(c *gin.Context) {
	var query QueryExport
	if err := httputil.BindQuery(c, &query); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	id, err := query.require()
	if err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	render, contentType := summary.XLSX, contentTypeXLSX
	switch strings.ToLower(query.Format) {
	case "xlsx":
	case "pdf":
		render, contentType = summary.PDF, contentTypePDF
	default:
		c.JSON(http.StatusBadRequest, httperror.New(errExportFormat))
		return
	}

	s, err := co.Service.Summary(c.Request.Context(), id)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	data, err := render(s)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperror.New(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=budget-%s.%s", id, strings.ToLower(query.Format)))
	c.Data(http.StatusOK, contentType, data)
}

// @Summary		Analyze spend
// @Description	Returns totals, the spend by category and suggestions for an itinerary or, without itineraryId, for the whole ledger
// @Tags			Budget
// @Produce		json
// @Success		200			{object}	AnalysisResponse
// @Failure		400			{object}	AnalysisResponse
// @Failure		404			{object}	AnalysisResponse
// @Failure		500			{object}	AnalysisResponse
// @Param			itineraryId	query		string	false	"ID of the itinerary"
// @Router			/v1/budget/analyze [get]
func (co Controller) Analyze(c *gin.Context) {
	var query QueryItinerary
	if err := httputil.BindQuery(c, &query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, AnalysisResponse{
			Error: &e,
		})
		return
	}

	analysis, err := co.Service.Analyze(c.Request.Context(), query.ItineraryID.Ptr())
	if err != nil {
		e := err.Error()
		c.JSON(httperror.Status(err), AnalysisResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, AnalysisResponse{Data: &analysis})
}

// @Summary		Reallocate budget
// @Description	Splits the total budget over all days of an itinerary. The external mode asks the advisor and falls back to the proportional split.
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		404		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			request	body		ReallocateRequest	true	"Reallocation"
// @Router			/v1/budget/reallocate [post]
func (co Controller) Reallocate(c *gin.Context) {
	var request ReallocateRequest
	if err := httputil.BindData(c, &request); err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	mode, err := allocation.ParseMode(request.Mode)
	if err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	if mode != allocation.ModeExternal {
		s, err := co.Service.Reallocate(c.Request.Context(), request.ItineraryID, request.NewTotal, mode)
		summaryResponse(c, s, err)
		return
	}

	var records []models.BudgetRecord
	if request.Records != nil {
		records = make([]models.BudgetRecord, 0, len(request.Records))
		for _, r := range request.Records {
			records = append(records, r.model())
		}
	}

	s, err := co.Service.AIReallocate(c.Request.Context(), request.ItineraryID, budget.AIOptions{
		Total:   request.NewTotal,
		Records: records,
	})
	summaryResponse(c, s, err)
}

// @Summary		Set day budget
// @Description	Sets the budget of a single day. Negative values are stored as zero.
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		404		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			request	body		DayUpdateRequest	true	"Day budget"
// @Router			/v1/budget/days/update [post]
func (co Controller) UpdateDay(c *gin.Context) {
	var request DayUpdateRequest
	if err := httputil.BindData(c, &request); err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	s, err := co.Service.UpdateDay(c.Request.Context(), request.ItineraryID, request.selector(), request.NewBudget)
	summaryResponse(c, s, err)
}

// @Summary		Adjust day budget
// @Description	Changes the budget of a single day by delta. The result is never negative.
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		404		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			request	body		DayAdjustRequest	true	"Day budget change"
// @Router			/v1/budget/days/adjust [post]
func (co Controller) AdjustDay(c *gin.Context) {
	var request DayAdjustRequest
	if err := httputil.BindData(c, &request); err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	s, err := co.Service.AdjustDay(c.Request.Context(), request.ItineraryID, request.selector(), request.Delta)
	summaryResponse(c, s, err)
}

// @Summary		Reset day budget
// @Description	Sets a single day to its share of the total budget
// @Tags			Budget
// @Accept			json
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		404		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			request	body		DayResetRequest	true	"Day reset"
// @Router			/v1/budget/days/reset [post]
func (co Controller) ResetDay(c *gin.Context) {
	var request DayResetRequest
	if err := httputil.BindData(c, &request); err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	mode, err := allocation.ParseMode(request.Mode)
	if err != nil {
		summaryError(c, http.StatusBadRequest, err)
		return
	}

	s, err := co.Service.ResetDay(c.Request.Context(), request.ItineraryID, request.selector(), mode)
	summaryResponse(c, s, err)
}
