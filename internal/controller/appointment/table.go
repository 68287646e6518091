// Package appointment drives the appointment table: server-side filtered
// listing, per-row inline editing, confirmed cancellation, debounced
// patient-name search and spreadsheet export.
package appointment

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/export"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/internal/paginate"
)

// API is the appointment surface of the doctors resource.
type API interface {
	ListAppointments(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error)
	UpdateAppointment(ctx context.Context, patientID, appointDate, appointHour, appointID string, req *model.UpdateAppointmentRequest) error
}

// Canceller removes an appointment through the patients resource.
type Canceller interface {
	CancelAppointment(ctx context.Context, appointmentID string) error
}

// DefaultSearchSettle is how long typing must pause before the name search
// re-queries the backend.
const DefaultSearchSettle = 500 * time.Millisecond

// Edit is one row's independent edit buffer. It is a copy: discarding it
// can never touch the canonical row or any other row's buffer.
type Edit struct {
	Symptoms     string
	Prescription string
	// Status holds the UI tri-state (pending/completed/cancelled); it is
	// mapped to the backend vocabulary only at commit time.
	Status string
}

// Table is the appointment table controller.
type Table struct {
	api      API
	cancel   Canceller
	notices  *notice.Center
	log      zerolog.Logger
	settle   time.Duration
	doctorID string

	mu      sync.Mutex
	rows    []model.Appointment
	edits   map[string]*Edit
	filter  model.AppointmentFilter
	pager   *paginate.Pager[model.Appointment]
	loadErr string
	// listGen discards stale list responses the same way the booking form
	// guards its busy-slot fetches.
	listGen     uint64
	searchTimer *time.Timer
}

type TableDeps struct {
	API API
	// Canceller backs the row delete action. The action is wired to a real
	// backend cancellation, not a display-only removal.
	Canceller Canceller
	Notices   *notice.Center
	Logger    zerolog.Logger
	// DoctorID scopes every list query to the signed-in doctor.
	DoctorID     string
	PageSize     int
	SearchSettle time.Duration
}

func NewTable(deps TableDeps) *Table {
	if deps.SearchSettle <= 0 {
		deps.SearchSettle = DefaultSearchSettle
	}
	return &Table{
		api:      deps.API,
		cancel:   deps.Canceller,
		notices:  deps.Notices,
		log:      deps.Logger,
		settle:   deps.SearchSettle,
		doctorID: deps.DoctorID,
		edits:    make(map[string]*Edit),
		pager:    paginate.New[model.Appointment](deps.PageSize),
	}
}

// Load re-issues the list query with the current filters. Filtering is
// server-side; the rows that come back are the filtered result set.
func (t *Table) Load(ctx context.Context) error {
	t.mu.Lock()
	t.listGen++
	gen := t.listGen
	filter := t.filter
	filter.DoctorID = t.doctorID
	t.mu.Unlock()

	rows, err := t.api.ListAppointments(ctx, filter)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen < t.listGen {
		// A newer query is in flight; drop this result.
		return nil
	}
	if err != nil {
		t.loadErr = apiclient.UserMessage(err)
		return err
	}
	t.rows = rows
	t.loadErr = ""
	t.pager.SetItems(rows)
	return nil
}

// LoadError is the inline error state of the last list fetch.
func (t *Table) LoadError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadErr
}

// SetSearch updates the patient-name search. The query is debounced: the
// timer restarts on every keystroke and the backend is hit only after the
// input settles.
func (t *Table) SetSearch(ctx context.Context, name string) {
	t.mu.Lock()
	t.filter.PatientName = name
	t.pager.Reset()
	if t.searchTimer != nil {
		t.searchTimer.Stop()
	}
	t.searchTimer = time.AfterFunc(t.settle, func() {
		if err := t.Load(ctx); err != nil {
			t.log.Warn().Err(err).Msg("debounced appointment search failed")
		}
	})
	t.mu.Unlock()
}

// SetDateFilter re-queries immediately and resets to page one.
func (t *Table) SetDateFilter(ctx context.Context, date string) error {
	t.mu.Lock()
	t.filter.AppointDate = date
	t.pager.Reset()
	t.mu.Unlock()
	return t.Load(ctx)
}

// SetStatusFilter re-queries immediately and resets to page one.
func (t *Table) SetStatusFilter(ctx context.Context, status string) error {
	t.mu.Lock()
	t.filter.Status = status
	t.pager.Reset()
	t.mu.Unlock()
	return t.Load(ctx)
}

// Rows returns the full filtered result set (not just the current page).
func (t *Table) Rows() []model.Appointment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Appointment, len(t.rows))
	copy(out, t.rows)
	return out
}

// Page returns the current page of rows.
func (t *Table) Page() []model.Appointment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pager.Page()
}

func (t *Table) CurrentPage() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pager.Current()
}

func (t *Table) TotalPages() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pager.Total()
}

func (t *Table) NextPage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pager.Next()
}

func (t *Table) PrevPage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pager.Prev()
}

// BeginEdit copies the row into its own edit buffer. Rows edit
// independently; any number may be mid-edit at once.
func (t *Table) BeginEdit(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rowLocked(id)
	if !ok {
		return fmt.Errorf("appointment %s is not in the current list", id)
	}
	t.edits[id] = &Edit{
		Symptoms:     row.Symptoms,
		Prescription: row.Prescription,
		Status:       model.UIStatus(row.Status),
	}
	return nil
}

// EditBuffer returns a copy of the row's buffer, or false when the row is
// not in edit.
func (t *Table) EditBuffer(id string) (Edit, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.edits[id]
	if !ok {
		return Edit{}, false
	}
	return *e, true
}

// SetEdit replaces the row's buffer with edited values.
func (t *Table) SetEdit(id string, e Edit) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.edits[id]; !ok {
		return fmt.Errorf("appointment %s is not being edited", id)
	}
	t.edits[id] = &e
	return nil
}

// CancelEdit discards the row's buffer. The canonical row and every other
// row's buffer are untouched.
func (t *Table) CancelEdit(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.edits, id)
}

// CommitEdit sends the buffer through the update call, addressed by the
// backend's full compound key. The benign "nothing changed" outcome maps
// to a warning notice; real failures keep the row in edit for retry.
func (t *Table) CommitEdit(ctx context.Context, id string) error {
	t.mu.Lock()
	e, ok := t.edits[id]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("appointment %s is not being edited", id)
	}
	row, found := t.rowLocked(id)
	if !found {
		t.mu.Unlock()
		return fmt.Errorf("appointment %s is not in the current list", id)
	}
	buf := *e
	t.mu.Unlock()

	req := &model.UpdateAppointmentRequest{
		Status:       model.BackendStatus(buf.Status),
		Symptoms:     buf.Symptoms,
		Prescription: buf.Prescription,
	}
	err := t.api.UpdateAppointment(ctx, row.PatientID, row.AppointDate, row.AppointHour, row.ID, req)
	if err != nil {
		if apiclient.IsNoFieldsChanged(err) {
			t.CancelEdit(id)
			t.notices.Push(notice.KindWarning, "no information to update", 0)
			return nil
		}
		t.notices.Push(notice.KindError, apiclient.UserMessage(err), 0)
		return err
	}

	t.CancelEdit(id)
	t.notices.Push(notice.KindSuccess, "appointment updated", 0)
	return t.Load(ctx)
}

// DeletePrompt returns the confirmation text for removing a row.
func (t *Table) DeletePrompt(id string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rowLocked(id)
	if !ok {
		return "", fmt.Errorf("appointment %s is not in the current list", id)
	}
	return fmt.Sprintf("Cancel %s's appointment on %s at %s?", row.PatientName, row.AppointDate, row.AppointHour), nil
}

// ConfirmDelete cancels the appointment on the backend after the user has
// confirmed, then re-fetches the list. Failure leaves the table unchanged.
func (t *Table) ConfirmDelete(ctx context.Context, id string) error {
	if err := t.cancel.CancelAppointment(ctx, id); err != nil {
		t.notices.Push(notice.KindError, apiclient.UserMessage(err), 0)
		return err
	}
	t.mu.Lock()
	delete(t.edits, id)
	t.mu.Unlock()
	t.notices.Push(notice.KindSuccess, "appointment cancelled", 0)
	return t.Load(ctx)
}

// Export writes the currently filtered result set — all rows, not just the
// visible page — as a spreadsheet.
func (t *Table) Export(w io.Writer) error {
	return export.Appointments(w, t.Rows())
}

// ExportFilename stamps the download with the current date.
func (t *Table) ExportFilename() string {
	return export.Filename(time.Now())
}

func (t *Table) rowLocked(id string) (model.Appointment, bool) {
	for _, r := range t.rows {
		if r.ID == id {
			return r, true
		}
	}
	return model.Appointment{}, false
}
