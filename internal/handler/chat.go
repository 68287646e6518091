package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatSend forwards one widget message and returns the updated transcript.
func (h *Handler) ChatSend(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("message is required"))
		return
	}

	transcript := state.Chat.Send(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"session_id": state.Chat.SessionID(),
		"messages":   transcript,
	}))
}

// ChatTranscript returns the widget's current transcript.
func (h *Handler) ChatTranscript(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"session_id": state.Chat.SessionID(),
		"messages":   state.Chat.Transcript(),
	}))
}

// ChatClose drops the transcript; the session does not survive the widget.
func (h *Handler) ChatClose(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	state.Chat.Close()
	c.JSON(http.StatusOK, NewSuccessResponse(nil))
}
