package model

type Patient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address,omitempty"`
	// Summary of the patient's most recent appointment state, as reported
	// by the backend list endpoint.
	AppointmentStatus string `json:"appointment_status,omitempty"`
}

type UpdatePatientRequest struct {
	Name        *string `json:"name,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Address     *string `json:"address,omitempty"`
}

// PatientFilter narrows the backend appointment/patient list query. All
// filtering is server-side; the portal only forwards these values.
type PatientFilter struct {
	Name        string `json:"name,omitempty"`
	AppointDate string `json:"appoint_date,omitempty"`
	Status      string `json:"status,omitempty"`
	DoctorID    string `json:"doctor_id,omitempty"`
}
