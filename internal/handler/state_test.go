package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/notice"
)

func newStateRouter() (*gin.Engine, *Registry) {
	gin.SetMode(gin.TestMode)
	registry := NewRegistry(time.Minute, func() *UIState {
		return &UIState{Notices: notice.NewCenter(0)}
	})

	r := gin.New()
	r.Use(registry.Middleware())
	r.GET("/touch", func(c *gin.Context) {
		state := stateFrom(c)
		if state == nil {
			return
		}
		c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"notices": len(state.Notices.Active())}))
	})
	r.POST("/note", func(c *gin.Context) {
		state := stateFrom(c)
		if state == nil {
			return
		}
		state.Notices.Push(notice.KindInfo, "hello", time.Minute)
		c.JSON(http.StatusOK, NewSuccessResponse(nil))
	})
	return r, registry
}

func TestMiddlewareMintsSessionCookie(t *testing.T) {
	r, _ := newStateRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/touch", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "portal_sid", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestStatePersistsAcrossRequests(t *testing.T) {
	r, registry := newStateRouter()

	// First contact mints the cookie.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/touch", nil))
	sid := w.Result().Cookies()[0]

	// A mutation in one request is visible in the next.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/note", nil)
	req.AddCookie(sid)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/touch", nil)
	req.AddCookie(sid)
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"notices":1`)

	// A different browser session sees none of it.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/touch", nil))
	assert.Contains(t, w.Body.String(), `"notices":0`)

	// Drop wipes the state; the next touch starts fresh.
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(sid)
	registry.Drop(c)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/touch", nil)
	req.AddCookie(sid)
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"notices":0`)
}
