package model

type AppointmentStatus string

// Backend vocabulary. The portal UI uses a tri-state (pending/completed/
// cancelled) that maps onto these values; see UIStatus and BackendStatus.
const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

const (
	UIStatusPending   = "pending"
	UIStatusCompleted = "completed"
	UIStatusCancelled = "cancelled"
)

// UIStatus maps a backend appointment status to the tri-state shown in the
// table. Unknown values are treated as pending rather than dropped.
func UIStatus(s AppointmentStatus) string {
	switch s {
	case AppointmentStatusCompleted:
		return UIStatusCompleted
	case AppointmentStatusCancelled:
		return UIStatusCancelled
	default:
		return UIStatusPending
	}
}

// BackendStatus is the inverse mapping, applied just before an update call.
func BackendStatus(ui string) AppointmentStatus {
	switch ui {
	case UIStatusCompleted:
		return AppointmentStatusCompleted
	case UIStatusCancelled:
		return AppointmentStatusCancelled
	default:
		return AppointmentStatusScheduled
	}
}

// Appointment links a patient to a doctor at a specific date and hour slot.
// The patient display fields are denormalized by the backend list endpoint
// so the table can render without extra lookups.
type Appointment struct {
	ID           string            `json:"id"`
	PatientID    string            `json:"patient_id"`
	DoctorID     string            `json:"doctor_id"`
	AppointDate  string            `json:"appoint_date"`
	AppointHour  string            `json:"appoint_hour"`
	Symptoms     string            `json:"symptoms"`
	Prescription string            `json:"prescription"`
	Status       AppointmentStatus `json:"status"`

	PatientName  string `json:"patient_name"`
	DateOfBirth  string `json:"date_of_birth"`
	Gender       string `json:"gender"`
	PatientPhone string `json:"patient_phone"`
}

// UpdateAppointmentRequest is the body of the appointment update call. The
// call itself is addressed by the full compound key (patient id, date, hour,
// appointment id); the backend requires all four even though the id alone
// would identify the row.
type UpdateAppointmentRequest struct {
	Status       AppointmentStatus `json:"Status"`
	Symptoms     string            `json:"Symptoms"`
	Prescription string            `json:"Prescription"`
}

// AppointmentFilter is forwarded verbatim to the backend list endpoint.
type AppointmentFilter struct {
	DoctorID    string `json:"doctor_id,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AppointDate string `json:"appoint_date,omitempty"`
	Status      string `json:"status,omitempty"`
}
