package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type DoctorsClient struct {
	c *Client
}

const doctorRosterCacheKey = "doctors:roster"

// List returns the full doctor roster. Reads are served from the shadow
// cache within its TTL; the roster changes rarely and backs every doctor
// dropdown in the portal.
func (d *DoctorsClient) List(ctx context.Context) ([]model.Doctor, error) {
	if cached, ok := d.c.cache.Get(doctorRosterCacheKey); ok {
		return cached.([]model.Doctor), nil
	}

	var doctors []model.Doctor
	if err := d.c.get(ctx, "/doctors", nil, &doctors); err != nil {
		return nil, err
	}
	d.c.cache.SetDefault(doctorRosterCacheKey, doctors)
	return doctors, nil
}

func (d *DoctorsClient) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := d.c.post(ctx, "/doctors", req, &doctor); err != nil {
		return nil, err
	}
	d.c.cache.Delete(doctorRosterCacheKey)
	return &doctor, nil
}

// MyProfile resolves the signed-in doctor's profile directly. The previous
// client matched the auth user id against the whole roster to find its own
// doctor row; the backend exposes a direct lookup, so use it.
func (d *DoctorsClient) MyProfile(ctx context.Context) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := d.c.get(ctx, "/doctors/me", nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ListAppointments runs the server-side appointment search. Filters are
// forwarded as-is; the portal never filters appointment rows locally.
func (d *DoctorsClient) ListAppointments(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error) {
	q := url.Values{}
	if filter.DoctorID != "" {
		q.Set("doctor_id", filter.DoctorID)
	}
	if filter.PatientName != "" {
		q.Set("patient_name", filter.PatientName)
	}
	if filter.Phone != "" {
		q.Set("phone", filter.Phone)
	}
	if filter.AppointDate != "" {
		q.Set("appoint_date", filter.AppointDate)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}

	var appointments []model.Appointment
	if err := d.c.get(ctx, "/doctors/appointments", q, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateAppointment commits an inline edit. The backend contract addresses
// the row by (patient id, date, hour, appointment id); all four are
// required even though the id alone would suffice, and that redundancy is
// preserved for compatibility.
func (d *DoctorsClient) UpdateAppointment(ctx context.Context, patientID, appointDate, appointHour, appointID string, req *model.UpdateAppointmentRequest) error {
	if patientID == "" || appointDate == "" || appointHour == "" || appointID == "" {
		return fmt.Errorf("all of patient id, date, hour and appointment id are required")
	}
	q := url.Values{}
	q.Set("patient_id", patientID)
	q.Set("appoint_date", appointDate)
	q.Set("appoint_hour", appointHour)
	q.Set("appoint_id", appointID)
	return d.c.do(ctx, "PUT", "/doctors/appointments", q, req, nil)
}
