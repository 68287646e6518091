package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/controller/appointment"
)

func (h *Handler) appointmentTable(c *gin.Context) (*appointment.Table, bool) {
	state := stateFrom(c)
	if state == nil {
		return nil, false
	}
	table, err := h.ensureAppointments(c.Request.Context(), state)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return nil, false
	}
	return table, true
}

func appointmentPageData(table *appointment.Table) gin.H {
	return gin.H{
		"rows":         table.Page(),
		"current_page": table.CurrentPage(),
		"total_pages":  table.TotalPages(),
		"load_error":   table.LoadError(),
	}
}

// Appointments renders the appointment table page state.
func (h *Handler) Appointments(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}
	if err := table.Load(c.Request.Context()); err != nil {
		h.log.Warn().Err(err).Msg("appointment reload failed")
	}
	c.JSON(http.StatusOK, NewSuccessResponse(appointmentPageData(table)))
}

type appointmentSearchRequest struct {
	Name string `json:"name"`
}

// AppointmentSearch updates the debounced patient-name search. The backend
// query fires only after the input settles.
func (h *Handler) AppointmentSearch(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	var req appointmentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid search payload"))
		return
	}
	// The debounce timer outlives this request; the deferred query must
	// not ride on the request context.
	table.SetSearch(context.Background(), req.Name)

	c.JSON(http.StatusAccepted, NewSuccessResponse(gin.H{"debounced": true}))
}

type appointmentFilterRequest struct {
	Date   *string `json:"date"`
	Status *string `json:"status"`
}

// AppointmentFilter applies date/status filters with an immediate re-query.
func (h *Handler) AppointmentFilter(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	var req appointmentFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid filter payload"))
		return
	}

	ctx := c.Request.Context()
	if req.Date != nil {
		if err := table.SetDateFilter(ctx, *req.Date); err != nil {
			c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
			return
		}
	}
	if req.Status != nil {
		if err := table.SetStatusFilter(ctx, *req.Status); err != nil {
			c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
			return
		}
	}

	c.JSON(http.StatusOK, NewSuccessResponse(appointmentPageData(table)))
}

// AppointmentPage moves the pagination cursor.
func (h *Handler) AppointmentPage(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid page payload"))
		return
	}
	switch req.Op {
	case "next":
		table.NextPage()
	case "prev":
		table.PrevPage()
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse("op must be next or prev"))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(appointmentPageData(table)))
}

// AppointmentBeginEdit opens the row's independent edit buffer.
func (h *Handler) AppointmentBeginEdit(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := table.BeginEdit(id); err != nil {
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
		return
	}
	buf, _ := table.EditBuffer(id)
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"edit": buf}))
}

type appointmentEditRequest struct {
	Symptoms     string `json:"symptoms"`
	Prescription string `json:"prescription"`
	Status       string `json:"status"`
}

// AppointmentSetEdit replaces the row's edit buffer.
func (h *Handler) AppointmentSetEdit(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	var req appointmentEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid edit payload"))
		return
	}

	err := table.SetEdit(c.Param("id"), appointment.Edit{
		Symptoms:     req.Symptoms,
		Prescription: req.Prescription,
		Status:       req.Status,
	})
	if err != nil {
		c.JSON(http.StatusConflict, NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}

// AppointmentCancelEdit discards the row's buffer without saving.
func (h *Handler) AppointmentCancelEdit(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}
	table.CancelEdit(c.Param("id"))
	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}

// AppointmentCommit saves the row's buffer through the backend update.
func (h *Handler) AppointmentCommit(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	if err := table.CommitEdit(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(appointmentPageData(table)))
}

// AppointmentDeletePrompt returns the confirmation text for a cancellation.
func (h *Handler) AppointmentDeletePrompt(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	prompt, err := table.DeletePrompt(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"prompt": prompt}))
}

// AppointmentDelete performs a confirmed cancellation.
func (h *Handler) AppointmentDelete(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	if err := table.ConfirmDelete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(appointmentPageData(table)))
}

// AppointmentExport streams the filtered rows as a spreadsheet download.
func (h *Handler) AppointmentExport(c *gin.Context) {
	table, ok := h.appointmentTable(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := table.Export(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse("failed to build export"))
		return
	}
	if h.metrics != nil {
		h.metrics.ExportsTotal.Inc()
	}

	c.Header("Content-Disposition", `attachment; filename="`+table.ExportFilename()+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
