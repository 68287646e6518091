package model

// BookingRequest is the payload composed by the booking form and posted to
// the backend. Validation tags are advisory; the server re-validates.
type BookingRequest struct {
	PatientName string `json:"patient_name" validate:"required"`
	Phone       string `json:"phone" validate:"required,phone"`
	Email       string `json:"email" validate:"required,email"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth string `json:"date_of_birth" validate:"required,dateformat"`
	DoctorID    string `json:"doctor_id" validate:"required"`
	AppointDate string `json:"appoint_date" validate:"required,dateformat,notpast"`
	AppointHour string `json:"appoint_hour" validate:"required,slot"`
	Symptoms    string `json:"symptoms" validate:"max=1000"`
}

// BookingRecord is one row of a patient's booking history.
type BookingRecord struct {
	ID          string            `json:"id"`
	DoctorID    string            `json:"doctor_id"`
	DoctorName  string            `json:"doctor_name"`
	AppointDate string            `json:"appoint_date"`
	AppointHour string            `json:"appoint_hour"`
	Status      AppointmentStatus `json:"status"`
}
