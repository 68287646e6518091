package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/session"
)

// Patients is the admin roster view, filterable by name, visit date,
// status and doctor.
func (h *Handler) Patients(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	if state.CurrentSession().Role != session.RoleAdmin {
		c.JSON(http.StatusForbidden, NewErrorResponse("admin access required"))
		return
	}

	filter := model.PatientFilter{
		Name:        c.Query("name"),
		AppointDate: c.Query("appoint_date"),
		Status:      c.Query("status"),
		DoctorID:    c.Query("doctor_id"),
	}
	patients, err := state.Client.Patients.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"patients": patients}))
}
