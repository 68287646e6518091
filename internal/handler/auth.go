package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/session"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the backend and binds the resulting session
// to this browser session's UI state.
func (h *Handler) Login(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("email and password are required"))
		return
	}

	sess, err := session.Login(c.Request.Context(), state.Client, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	state.SetSession(sess)

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"user_id": sess.UserID,
		"role":    sess.Role,
		"name":    sess.Name,
	}))
}

// Logout tears down both the backend session and every buffer this browser
// session accumulated.
func (h *Handler) Logout(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}

	if err := session.Logout(c.Request.Context(), state.Client, state.CurrentSession()); err != nil {
		h.log.Warn().Err(err).Msg("backend logout failed")
	}
	h.registry.Drop(c)

	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}

// Me reports the signed-in identity, or signed_in=false.
func (h *Handler) Me(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}

	sess := state.CurrentSession()
	if !sess.SignedIn() {
		c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"signed_in": false}))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"signed_in": true,
		"user_id":   sess.UserID,
		"role":      sess.Role,
		"name":      sess.Name,
		"email":     sess.Email,
	}))
}
