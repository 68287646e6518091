package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

func validBooking() model.BookingRequest {
	return model.BookingRequest{
		PatientName: "Alice Wong",
		Phone:       "+6598765432",
		Email:       "alice@example.com",
		Gender:      "female",
		DateOfBirth: "1990-04-12",
		DoctorID:    "d1",
		AppointDate: time.Now().AddDate(0, 0, 7).Format(model.DateLayout),
		AppointHour: "09:00",
	}
}

func TestValidBookingPasses(t *testing.T) {
	v := New()
	req := validBooking()
	assert.NoError(t, v.Validate(&req))
}

func TestPhoneRule(t *testing.T) {
	v := New()

	for _, phone := range []string{"+6598765432", "98765432123", "123456789"} {
		req := validBooking()
		req.Phone = phone
		assert.NoError(t, v.Validate(&req), phone)
	}

	for _, phone := range []string{"12345678", "123456789012", "98-76-54-32-1", "abc123456", ""} {
		req := validBooking()
		req.Phone = phone
		err := v.Validate(&req)
		require.Error(t, err, phone)
		fields, ok := err.(FieldErrors)
		require.True(t, ok)
		assert.Contains(t, fields, "phone")
	}
}

func TestPastAppointmentDateRejected(t *testing.T) {
	v := New()

	req := validBooking()
	req.AppointDate = "2020-01-01"
	err := v.Validate(&req)
	require.Error(t, err)
	assert.Equal(t, "date cannot be in the past", err.(FieldErrors)["appointdate"])

	// Today itself is bookable.
	req.AppointDate = time.Now().Format(model.DateLayout)
	assert.NoError(t, v.Validate(&req))
}

func TestSlotRule(t *testing.T) {
	v := New()

	req := validBooking()
	req.AppointHour = "12:00"
	err := v.Validate(&req)
	require.Error(t, err)
	assert.Equal(t, "must be one of the offered time slots", err.(FieldErrors)["appointhour"])
}

func TestDateFormatRule(t *testing.T) {
	v := New()

	req := validBooking()
	req.DateOfBirth = "12/04/1990"
	err := v.Validate(&req)
	require.Error(t, err)
	assert.Contains(t, err.(FieldErrors)["dateofbirth"], "yyyy-mm-dd")
}

func TestMissingFieldsReportedPerField(t *testing.T) {
	v := New()

	err := v.Validate(&model.BookingRequest{})
	require.Error(t, err)

	fields, ok := err.(FieldErrors)
	require.True(t, ok)
	for _, name := range []string{"patientname", "phone", "email", "gender", "dateofbirth", "doctorid", "appointdate", "appointhour"} {
		assert.Contains(t, fields, name)
	}
	assert.NotEmpty(t, fields.Error())
}
