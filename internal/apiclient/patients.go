package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type PatientsClient struct {
	c *Client
}

func (p *PatientsClient) List(ctx context.Context, filter model.PatientFilter) ([]model.Patient, error) {
	q := url.Values{}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}
	if filter.AppointDate != "" {
		q.Set("appoint_date", filter.AppointDate)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.DoctorID != "" {
		q.Set("doctor_id", filter.DoctorID)
	}

	var patients []model.Patient
	if err := p.c.get(ctx, "/patients", q, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (p *PatientsClient) Get(ctx context.Context, id string) (*model.Patient, error) {
	if id == "" {
		return nil, fmt.Errorf("patient id is required")
	}
	var patient model.Patient
	if err := p.c.get(ctx, "/patients/"+url.PathEscape(id), nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (p *PatientsClient) UpdateProfile(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if id == "" {
		return nil, fmt.Errorf("patient id is required")
	}
	var patient model.Patient
	if err := p.c.put(ctx, "/patients/"+url.PathEscape(id), req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CancelAppointment cancels one appointment by id. The appointment table's
// delete action routes here so removals reach the backend instead of being
// a display-only trick.
func (p *PatientsClient) CancelAppointment(ctx context.Context, appointmentID string) error {
	if appointmentID == "" {
		return fmt.Errorf("appointment id is required")
	}
	return p.c.delete(ctx, "/patients/appointments/"+url.PathEscape(appointmentID))
}
