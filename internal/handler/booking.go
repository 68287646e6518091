package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
)

// BookingDoctors backs the doctor dropdown on the booking form.
func (h *Handler) BookingDoctors(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	doctors, err := state.Client.Doctors.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"doctors": doctors}))
}

// BookingForm returns the form's full render state.
func (h *Handler) BookingForm(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	form := state.Booking

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"fields":       form.Fields(),
		"field_errors": form.FieldErrors(),
		"busy_slots":   form.BusySlots(),
		"slot_catalog": model.SlotCatalog(),
		"submitted":    form.Submitted(),
	}))
}

type bookingFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// BookingSetField applies one field edit. Doctor and date changes also
// re-fetch the busy-slot list for the new combination.
func (h *Handler) BookingSetField(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	form := state.Booking

	var req bookingFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("field name is required"))
		return
	}

	ctx := c.Request.Context()
	switch req.Field {
	case "patient_name":
		form.SetPatientName(req.Value)
	case "phone":
		form.SetPhone(req.Value)
	case "email":
		form.SetEmail(req.Value)
	case "gender":
		form.SetGender(req.Value)
	case "date_of_birth":
		form.SetDateOfBirth(req.Value)
	case "symptoms":
		form.SetSymptoms(req.Value)
	case "doctor_id":
		form.SetDoctor(ctx, req.Value)
	case "appoint_date":
		form.SetDate(ctx, req.Value)
	case "appoint_hour":
		if !form.SetTime(req.Value) {
			c.JSON(http.StatusConflict, NewWarningResponse("the selected time slot is no longer available"))
			return
		}
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse("unknown field "+req.Field))
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"fields":     form.Fields(),
		"busy_slots": form.BusySlots(),
	}))
}

// BookingSubmit validates and posts the booking.
func (h *Handler) BookingSubmit(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	form := state.Booking

	if err := form.Submit(c.Request.Context()); err != nil {
		if errs := form.FieldErrors(); len(errs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, &Response{
				Status:  "error",
				Message: "please correct the highlighted fields",
				Data:    gin.H{"field_errors": errs},
			})
			return
		}
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, NewSuccessResponse(gin.H{"submitted": true}))
}

// BookingHistory lists the signed-in patient's own bookings.
func (h *Handler) BookingHistory(c *gin.Context) {
	state := stateFrom(c)
	if state == nil {
		return
	}
	sess := state.CurrentSession()
	if !sess.SignedIn() {
		c.JSON(http.StatusUnauthorized, NewErrorResponse("sign in to view booking history"))
		return
	}

	records, err := state.Client.Booking.History(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusBadGateway, NewErrorResponse(apiclient.UserMessage(err)))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"bookings": records}))
}
