package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripbudget/backend/internal/httperror"
	"github.com/tripbudget/backend/pkg/httputil"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Records
// @Success		204
// @Router			/v1/budget/records [options]
func OptionsRecordList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Records
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/budget/records/{id} [options]
func OptionsRecordDetail(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Create budget record
// @Description	Adds a record to the ledger. Negative amounts are expenses.
// @Tags			Records
// @Accept			json
// @Produce		json
// @Success		201		{object}	RecordResponse
// @Failure		400		{object}	RecordResponse
// @Failure		404		{object}	RecordResponse
// @Failure		500		{object}	RecordResponse
// @Param			record	body		RecordEditable	true	"Record"
// @Router			/v1/budget/records [post]
func (co Controller) CreateRecord(c *gin.Context) {
	var editable RecordEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecordResponse{
			Error: &e,
		})
		return
	}

	record := editable.model()
	err = co.Service.AddRecord(c.Request.Context(), &record)
	if err != nil {
		e := err.Error()
		c.JSON(httperror.Status(err), RecordResponse{
			Error: &e,
		})
		return
	}

	data := newRecord(httputil.URL(c), record)
	c.JSON(http.StatusCreated, RecordResponse{Data: &data})
}

// @Summary		List budget records
// @Description	Returns the budget records ordered by date
// @Tags			Records
// @Produce		json
// @Success		200			{object}	RecordListResponse
// @Failure		400			{object}	RecordListResponse
// @Failure		500			{object}	RecordListResponse
// @Param			itineraryId	query		string	false	"Filter by itinerary ID"
// @Param			date		query		string	false	"Filter by date"
// @Param			category	query		string	false	"Filter by category. Supports glob patterns"
// @Router			/v1/budget/records [get]
func (co Controller) GetRecords(c *gin.Context) {
	var filter RecordQueryFilter
	if err := httputil.BindQuery(c, &filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecordListResponse{
			Error: &e,
		})
		return
	}

	records, err := co.Service.ListRecords(c.Request.Context(), filter.filter())
	if err != nil {
		e := err.Error()
		c.JSON(httperror.Status(err), RecordListResponse{
			Error: &e,
		})
		return
	}

	url := httputil.URL(c)
	data := make([]Record, 0, len(records))
	for _, record := range records {
		data = append(data, newRecord(url, record))
	}

	c.JSON(http.StatusOK, RecordListResponse{Data: data})
}

// @Summary		Delete budget record
// @Description	Deletes a budget record
// @Tags			Records
// @Success		204
// @Failure		400	{object}	httperror.Error
// @Failure		404	{object}	httperror.Error
// @Failure		500	{object}	httperror.Error
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budget/records/{id} [delete]
func (co Controller) DeleteRecord(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperror.New(err))
		return
	}

	err := co.Service.DeleteRecord(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(httperror.Status(err), httperror.New(err))
		return
	}

	c.Status(http.StatusNoContent)
}
