package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "appointments_20250307.xlsx", Filename(now))
}

func TestAppointmentsRowShape(t *testing.T) {
	appointments := []model.Appointment{
		{
			PatientName: "Alice Wong", DateOfBirth: "1990-04-12", Gender: "female",
			PatientPhone: "+6598765432", AppointHour: "09:00",
			Symptoms: "cough", Prescription: "lozenges",
			Status: model.AppointmentStatusCompleted,
		},
		{
			PatientName: "Bob Tan", DateOfBirth: "1985-11-02", Gender: "male",
			PatientPhone: "+6591234567", AppointHour: "10:30",
			Symptoms: "fever", Status: model.AppointmentStatusScheduled,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Appointments(&buf, appointments))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	// Only the appointments sheet exists; the default sheet is dropped.
	assert.Equal(t, []string{"Appointments"}, wb.GetSheetList())

	rows, err := wb.GetRows("Appointments")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per appointment")

	assert.Equal(t, []string{
		"#", "Name", "Date of birth", "Gender", "Phone",
		"Hour", "Symptoms", "Prescription", "Status",
	}, rows[0])
	assert.Equal(t, []string{
		"1", "Alice Wong", "1990-04-12", "female", "+6598765432",
		"09:00", "cough", "lozenges", "Completed",
	}, rows[1])
	assert.Equal(t, "Bob Tan", rows[2][1])
	assert.Equal(t, "Scheduled", rows[2][8])
}

func TestEmptyListProducesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Appointments(&buf, nil))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Appointments")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
