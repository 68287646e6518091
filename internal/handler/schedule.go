package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/controller/schedule"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/validator"
)

func (h *Handler) scheduleView(c *gin.Context) (*schedule.View, bool) {
	state := stateFrom(c)
	if state == nil {
		return nil, false
	}
	view, err := h.ensureSchedule(c.Request.Context(), state)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return nil, false
	}
	return view, true
}

func schedulePageData(view *schedule.View) gin.H {
	return gin.H{
		"rows":         view.Page(),
		"current_page": view.CurrentPage(),
		"total_pages":  view.TotalPages(),
		"load_error":   view.LoadError(),
		"modal":        view.Modal(),
	}
}

// Schedules renders the schedule table page state.
func (h *Handler) Schedules(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}
	if err := view.Reload(c.Request.Context()); err != nil {
		// The view keeps its inline error state; render it as-is.
		h.log.Warn().Err(err).Msg("schedule reload failed")
	}
	c.JSON(http.StatusOK, NewSuccessResponse(schedulePageData(view)))
}

// SchedulesAll is the admin view over every doctor's schedule.
func (h *Handler) SchedulesAll(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	if state.CurrentSession().Role != session.RoleAdmin {
		c.JSON(http.StatusForbidden, NewErrorResponse("admin access required"))
		return
	}

	schedules, err := state.Client.Schedules.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"schedules": schedules}))
}

type scheduleFilterRequest struct {
	Date   *string `json:"date"`
	Active *bool   `json:"active"`
}

// ScheduleFilter applies date/active filters; pagination resets to page 1.
func (h *Handler) ScheduleFilter(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}

	var req scheduleFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid filter payload"))
		return
	}
	if req.Date != nil {
		view.SetDateFilter(*req.Date)
	}
	view.SetActiveFilter(req.Active)

	c.JSON(http.StatusOK, NewSuccessResponse(schedulePageData(view)))
}

type pageRequest struct {
	Op   string `json:"op"`
	Page int    `json:"page"`
}

// SchedulePage moves the pagination cursor.
func (h *Handler) SchedulePage(c *gin.Context) {
	view, ok := h.scheduleView(c)
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
		view.NextPage()
	case "prev":
		view.PrevPage()
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse("op must be next or prev"))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(schedulePageData(view)))
}

type scheduleModalRequest struct {
	Mode string `json:"mode" binding:"required"`
	ID   string `json:"id"`
}

// ScheduleOpenModal opens the shared create/edit modal.
func (h *Handler) ScheduleOpenModal(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}

	var req scheduleModalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("modal mode is required"))
		return
	}

	switch schedule.ModalMode(req.Mode) {
	case schedule.ModalCreate:
		view.OpenCreate()
	case schedule.ModalEdit:
		if err := view.OpenEdit(req.ID); err != nil {
			c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
			return
		}
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse("mode must be create or edit"))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"modal": view.Modal()}))
}

// ScheduleSetDraft replaces the modal draft with edited values.
func (h *Handler) ScheduleSetDraft(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}

	var draft model.Schedule
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid draft payload"))
		return
	}
	view.SetDraft(draft)

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"modal": view.Modal()}))
}

// ScheduleSubmitModal commits the modal draft.
func (h *Handler) ScheduleSubmitModal(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}

	if err := view.SubmitModal(c.Request.Context()); err != nil {
		if fields, isField := err.(validator.FieldErrors); isField {
			c.JSON(http.StatusUnprocessableEntity, &Response{
				Status:  "error",
				Message: "please correct the highlighted fields",
				Data:    gin.H{"field_errors": fields},
			})
			return
		}
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(schedulePageData(view)))
}

// ScheduleCloseModal dismisses the modal without saving.
func (h *Handler) ScheduleCloseModal(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}
	view.CloseModal()
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"modal": view.Modal()}))
}

// ScheduleDeletePrompt returns the confirmation text for a delete.
func (h *Handler) ScheduleDeletePrompt(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}

	prompt, err := view.DeletePrompt(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"prompt": prompt}))
}

// ScheduleDelete performs a confirmed delete.
func (h *Handler) ScheduleDelete(c *gin.Context) {
	view, ok := h.scheduleView(c)
	if !ok {
		return
	}

	if err := view.ConfirmDelete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(schedulePageData(view)))
}
