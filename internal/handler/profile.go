package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
)

// Profile returns the signed-in patient's own profile.
func (h *Handler) Profile(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	sess := state.CurrentSession()
	if !sess.SignedIn() {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("sign in to view your profile"))
		return
	}

	patient, err := state.Client.Patients.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"profile": patient}))
}

// ProfileUpdate updates the signed-in patient's own profile.
func (h *Handler) ProfileUpdate(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	sess := state.CurrentSession()
	if !sess.SignedIn() {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("sign in to update your profile"))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid profile payload"))
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse(err.Error()))
		return
	}

	patient, err := state.Client.Patients.UpdateProfile(c.Request.Context(), sess.UserID, &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"profile": patient}))
}
