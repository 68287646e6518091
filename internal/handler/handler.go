// Package handler exposes the portal's UI flows over HTTP. Handlers stay
// thin: they translate requests into controller calls and controller state
// back into the response envelope.
package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/config"
	"github.com/jwalitptl/clinic-portal/internal/controller/appointment"
	"github.com/jwalitptl/clinic-portal/internal/controller/booking"
	"github.com/jwalitptl/clinic-portal/internal/controller/chat"
	"github.com/jwalitptl/clinic-portal/internal/controller/schedule"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
	"github.com/jwalitptl/clinic-portal/pkg/validator"
)

type Handler struct {
	registry *Registry
	client   *apiclient.Client
	validate *validator.Validator
	log      zerolog.Logger
	metrics  *metrics.Metrics
	ui       config.UIConfig
}

func New(client *apiclient.Client, validate *validator.Validator, log zerolog.Logger, m *metrics.Metrics, ui config.UIConfig) *Handler {
	h := &Handler{
		client:   client,
		validate: validate,
		log:      log,
		metrics:  m,
		ui:       ui,
	}
	h.registry = NewRegistry(0, h.newUIState)
	return h
}

func (h *Handler) Registry() *Registry {
	return h.registry
}

// newUIState builds the state a fresh browser session starts with, bound
// to a session-scoped backend client so credentials stay per browser. The
// schedule and appointment views also need the signed-in doctor, so they
// are attached lazily on first use.
func (h *Handler) newUIState() *UIState {
	client, err := h.client.WithSession()
	if err != nil {
		// cookiejar.New with nil options cannot fail today; if it ever
		// does, a session without backend credentials is still usable
		// for the public flows.
		h.log.Error().Err(err).Msg("failed to derive session client")
		client = h.client
	}

	notices := notice.NewCenter(h.ui.NoticeTTL)
	return &UIState{
		Client:  client,
		Notices: notices,
		Booking: booking.NewForm(booking.FormDeps{
			Slots:      client.Booking,
			Submit:     client.Booking,
			Doctors:    client.Doctors,
			Validator:  h.validate,
			Notices:    notices,
			Logger:     h.log,
			ResetDelay: h.ui.FormReset,
		}),
		Chat: chat.NewWidget(client.Chatbot, h.log),
	}
}

// ensureSchedule initializes the schedule view on first use, resolving the
// signed-in doctor directly.
func (h *Handler) ensureSchedule(ctx context.Context, state *UIState) (*schedule.View, error) {
	state.mu.Lock()
	view := state.Schedule
	state.mu.Unlock()
	if view != nil {
		return view, nil
	}

	view = schedule.NewView(schedule.ViewDeps{
		API:       state.Client.Schedules,
		Profile:   state.Client.Doctors,
		Validator: h.validate,
		Notices:   state.Notices,
		Logger:    h.log,
		PageSize:  h.ui.PageSize,
	})
	if err := view.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schedule view: %w", err)
	}

	state.mu.Lock()
	state.Schedule = view
	state.mu.Unlock()
	return view, nil
}

// ensureAppointments initializes the appointment table on first use.
func (h *Handler) ensureAppointments(ctx context.Context, state *UIState) (*appointment.Table, error) {
	state.mu.Lock()
	table := state.Appointments
	state.mu.Unlock()
	if table != nil {
		return table, nil
	}

	doctor, err := state.Client.Doctors.MyProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctor profile: %w", err)
	}

	table = appointment.NewTable(appointment.TableDeps{
		API:          state.Client.Doctors,
		Canceller:    state.Client.Patients,
		Notices:      state.Notices,
		Logger:       h.log,
		DoctorID:     doctor.ID,
		PageSize:     h.ui.PageSize,
		SearchSettle: h.ui.SearchSettle,
	})
	if err := table.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	state.mu.Lock()
	state.Appointments = table
	state.mu.Unlock()
	return table, nil
}

// Notices returns the session's live notices for the toast area.
func (h *Handler) Notices(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	c.JSON(200, NewSuccessResponse(gin.H{"notices": state.Notices.Active()}))
}
