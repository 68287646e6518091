package model

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "Scheduled"
	ScheduleStatusBooked    ScheduleStatus = "Booked"
	ScheduleStatusCancelled ScheduleStatus = "Cancelled"
)

// Schedule is a doctor's declared working interval for one date. A schedule
// is capacity; an appointment is demand against that capacity.
type Schedule struct {
	ID        string         `json:"id"`
	DoctorID  string         `json:"doctor_id"`
	WorkDate  string         `json:"work_date"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Status    ScheduleStatus `json:"status"`
	Active    bool           `json:"active"`
}

type CreateScheduleRequest struct {
	DoctorID  string         `json:"doctor_id" validate:"required"`
	WorkDate  string         `json:"work_date" validate:"required,dateformat"`
	StartTime string         `json:"start_time" validate:"required"`
	EndTime   string         `json:"end_time" validate:"required"`
	Status    ScheduleStatus `json:"status" validate:"required,oneof=Scheduled Booked Cancelled"`
}

type UpdateScheduleRequest struct {
	WorkDate  *string         `json:"work_date,omitempty" validate:"omitempty,dateformat"`
	StartTime *string         `json:"start_time,omitempty"`
	EndTime   *string         `json:"end_time,omitempty"`
	Status    *ScheduleStatus `json:"status,omitempty" validate:"omitempty,oneof=Scheduled Booked Cancelled"`
	Active    *bool           `json:"active,omitempty"`
}
