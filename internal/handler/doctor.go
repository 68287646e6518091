package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/validator"
)

// DoctorCreate is the admin "add doctor" form submit.
func (h *Handler) DoctorCreate(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	if state.CurrentSession().Role != session.RoleAdmin {
		c.JSON(http.StatusForbidden, NewErrorResponse("admin access required"))
		return
	}

	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid doctor payload"))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		fields, _ := err.(validator.FieldErrors)
		c.JSON(http.StatusUnprocessableEntity, &Response{
			Status:  "error",
			Message: "please correct the highlighted fields",
			Data:    gin.H{"field_errors": fields},
		})
		return
	}

	doctor, err := state.Client.Doctors.Create(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusCreated, NewSuccessResponse(gin.H{"doctor": doctor}))
}
