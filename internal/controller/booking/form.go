// Package booking drives the patient booking form: field buffering,
// validation, busy-slot reconciliation and submission.
package booking

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/pkg/validator"
)

// SlotSource reports the busy slots for one doctor and date.
type SlotSource interface {
	BusySlots(ctx context.Context, doctorID, date string, force bool) ([]string, error)
}

// Submitter posts the composed booking payload.
type Submitter interface {
	Submit(ctx context.Context, req *model.BookingRequest) (*model.BookingRecord, error)
}

// DoctorSource lists the roster backing the doctor dropdown.
type DoctorSource interface {
	List(ctx context.Context) ([]model.Doctor, error)
}

const slotTakenNotice = "the selected time slot is no longer available, please pick another"

// Form is the booking form controller. All methods are safe for the
// interleaved calls a UI event loop produces; a mutex guards the buffer.
type Form struct {
	slots    SlotSource
	submit   Submitter
	doctors  DoctorSource
	validate *validator.Validator
	notices  *notice.Center
	log      zerolog.Logger

	// resetDelay is how long the success state shows before the form
	// clears itself.
	resetDelay time.Duration

	mu        sync.Mutex
	fields    model.BookingRequest
	fieldErrs validator.FieldErrors
	busy      []string
	// latestGen is the monotonic generation of busy-slot fetches. A
	// response is applied only when its generation is still the latest,
	// so a stale fetch from a rapid doctor/date change can never
	// overwrite newer state.
	latestGen uint64
	submitted bool
}

type FormDeps struct {
	Slots      SlotSource
	Submit     Submitter
	Doctors    DoctorSource
	Validator  *validator.Validator
	Notices    *notice.Center
	Logger     zerolog.Logger
	ResetDelay time.Duration
}

func NewForm(deps FormDeps) *Form {
	if deps.ResetDelay <= 0 {
		deps.ResetDelay = 3 * time.Second
	}
	return &Form{
		slots:      deps.Slots,
		submit:     deps.Submit,
		doctors:    deps.Doctors,
		validate:   deps.Validator,
		notices:    deps.Notices,
		log:        deps.Logger,
		resetDelay: deps.ResetDelay,
	}
}

// Doctors returns the roster for the doctor dropdown.
func (f *Form) Doctors(ctx context.Context) ([]model.Doctor, error) {
	return f.doctors.List(ctx)
}

// Fields returns a copy of the current buffer.
func (f *Form) Fields() model.BookingRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// FieldErrors returns the per-field messages from the last validation.
func (f *Form) FieldErrors() validator.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(validator.FieldErrors, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		out[k] = v
	}
	return out
}

// BusySlots returns the busy list currently steering the slot picker.
func (f *Form) BusySlots() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.busy))
	copy(out, f.busy)
	return out
}

// Submitted reports whether the form is in its post-success state.
func (f *Form) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

func (f *Form) SetPatientName(v string) { f.set(func() { f.fields.PatientName = v }) }
func (f *Form) SetPhone(v string)       { f.set(func() { f.fields.Phone = v }) }
func (f *Form) SetEmail(v string)       { f.set(func() { f.fields.Email = v }) }
func (f *Form) SetGender(v string)      { f.set(func() { f.fields.Gender = v }) }
func (f *Form) SetDateOfBirth(v string) { f.set(func() { f.fields.DateOfBirth = v }) }
func (f *Form) SetSymptoms(v string)    { f.set(func() { f.fields.Symptoms = v }) }

func (f *Form) set(apply func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply()
}

// SetTime records the chosen slot. Choosing a slot the busy list already
// contains is refused up front with the same transient warning the
// reconciliation path uses.
func (f *Form) SetTime(slot string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.busy {
		if b == slot {
			f.pushLocked(notice.KindWarning, slotTakenNotice)
			return false
		}
	}
	f.fields.AppointHour = slot
	return true
}

// SetDoctor switches the doctor and re-fetches that doctor's busy slots
// for the chosen date.
func (f *Form) SetDoctor(ctx context.Context, doctorID string) {
	f.mu.Lock()
	f.fields.DoctorID = doctorID
	gen := f.nextGenLocked()
	doctor, date := f.fields.DoctorID, f.fields.AppointDate
	f.mu.Unlock()

	f.loadBusySlots(ctx, gen, doctor, date)
}

// SetDate switches the appointment date and re-fetches busy slots.
func (f *Form) SetDate(ctx context.Context, date string) {
	f.mu.Lock()
	f.fields.AppointDate = date
	gen := f.nextGenLocked()
	doctor := f.fields.DoctorID
	f.mu.Unlock()

	f.loadBusySlots(ctx, gen, doctor, date)
}

func (f *Form) nextGenLocked() uint64 {
	f.latestGen++
	return f.latestGen
}

func (f *Form) loadBusySlots(ctx context.Context, gen uint64, doctorID, date string) {
	if doctorID == "" || date == "" {
		return
	}

	slots, err := f.slots.BusySlots(ctx, doctorID, date, true)
	if err != nil {
		f.log.Warn().Err(err).Str("doctor_id", doctorID).Str("date", date).Msg("busy slot fetch failed")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen < f.latestGen {
		// A newer doctor/date change is already in flight; this result
		// describes state the user has moved past.
		return
	}
	f.busy = slots

	if f.fields.AppointHour == "" {
		return
	}
	for _, b := range slots {
		if b == f.fields.AppointHour {
			f.fields.AppointHour = ""
			f.pushLocked(notice.KindWarning, slotTakenNotice)
			return
		}
	}
}

// Submit validates the buffer and posts the booking. Validation failures
// never reach the network; write failures preserve the buffer so the user
// can resubmit.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	req := f.fields
	f.mu.Unlock()

	if err := f.validate.Validate(&req); err != nil {
		f.mu.Lock()
		if fields, ok := err.(validator.FieldErrors); ok {
			f.fieldErrs = fields
		} else {
			f.fieldErrs = validator.FieldErrors{"form": err.Error()}
		}
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.fieldErrs = nil
	f.mu.Unlock()

	if _, err := f.submit.Submit(ctx, &req); err != nil {
		f.notices.Push(notice.KindError, apiclient.UserMessage(err), 0)
		return err
	}

	f.mu.Lock()
	f.submitted = true
	f.mu.Unlock()
	f.notices.Push(notice.KindSuccess, "your appointment request has been submitted", 0)

	time.AfterFunc(f.resetDelay, f.Reset)
	return nil
}

// Reset clears the buffer back to a blank form.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = model.BookingRequest{}
	f.fieldErrs = nil
	f.busy = nil
	f.submitted = false
}

func (f *Form) pushLocked(kind notice.Kind, text string) {
	f.notices.Push(kind, text, 0)
}
