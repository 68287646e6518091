package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/middleware"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

type Router struct {
	engine *gin.Engine
	h      *handler.Handler
	m      *metrics.Metrics
	log    zerolog.Logger
}

func New(h *handler.Handler, m *metrics.Metrics, log zerolog.Logger) *Router {
	return &Router{
		engine: gin.New(),
		h:      h,
		m:      m,
		log:    log,
	}
}

// Setup mounts middleware and every portal route.
func (r *Router) Setup() *gin.Engine {
	r.engine.Use(middleware.RequestID(r.log))
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.engine.Use(r.observe())

	r.engine.GET("/healthz", r.h.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	api.Use(middleware.Timeout(30 * time.Second))
	api.Use(r.h.Registry().Middleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.h.Login)
			auth.POST("/logout", r.h.Logout)
			auth.GET("/me", r.h.Me)
		}

		api.GET("/notices", r.h.Notices)

		bookingGroup := api.Group("/booking")
		{
			bookingGroup.GET("/doctors", r.h.BookingDoctors)
			bookingGroup.GET("/form", r.h.BookingForm)
			bookingGroup.PUT("/form", r.h.BookingSetField)
			bookingGroup.POST("/submit", r.h.BookingSubmit)
			bookingGroup.GET("/history", r.h.BookingHistory)
		}

		api.POST("/doctors", r.h.DoctorCreate)
		api.GET("/patients", r.h.Patients)

		profile := api.Group("/profile")
		{
			profile.GET("", r.h.Profile)
			profile.PUT("", r.h.ProfileUpdate)
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("", r.h.Schedules)
			schedules.GET("/all", r.h.SchedulesAll)
			schedules.PUT("/filters", r.h.ScheduleFilter)
			schedules.PUT("/page", r.h.SchedulePage)
			schedules.POST("/modal", r.h.ScheduleOpenModal)
			schedules.PUT("/modal", r.h.ScheduleSetDraft)
			schedules.POST("/modal/submit", r.h.ScheduleSubmitModal)
			schedules.DELETE("/modal", r.h.ScheduleCloseModal)
			schedules.GET("/:id/delete-prompt", r.h.ScheduleDeletePrompt)
			schedules.DELETE("/:id", r.h.ScheduleDelete)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", r.h.Appointments)
			appointments.PUT("/search", r.h.AppointmentSearch)
			appointments.PUT("/filters", r.h.AppointmentFilter)
			appointments.PUT("/page", r.h.AppointmentPage)
			appointments.GET("/export", r.h.AppointmentExport)
			appointments.POST("/:id/edit", r.h.AppointmentBeginEdit)
			appointments.PUT("/:id/edit", r.h.AppointmentSetEdit)
			appointments.DELETE("/:id/edit", r.h.AppointmentCancelEdit)
			appointments.POST("/:id/commit", r.h.AppointmentCommit)
			appointments.GET("/:id/delete-prompt", r.h.AppointmentDeletePrompt)
			appointments.DELETE("/:id", r.h.AppointmentDelete)
		}

		// The widget hits the bot on every keystroke-send; keep it from
		// flooding the backend.
		chatLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: rate.Limit(2), Burst: 5})
		chatGroup := api.Group("/chat", chatLimiter.RateLimit())
		{
			chatGroup.GET("", r.h.ChatTranscript)
			chatGroup.POST("", r.h.ChatSend)
			chatGroup.DELETE("", r.h.ChatClose)
		}
	}

	return r.engine
}

func (r *Router) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		r.m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
