package appointment

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
)

type fakeAPI struct {
	mu          sync.Mutex
	rows        []model.Appointment
	listCalls   int
	lastFilter  model.AppointmentFilter
	updateErr   error
	updateCalls []model.UpdateAppointmentRequest
	updateKeys  [][4]string
}

func (f *fakeAPI) ListAppointments(_ context.Context, filter model.AppointmentFilter) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastFilter = filter
	out := make([]model.Appointment, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeAPI) UpdateAppointment(_ context.Context, patientID, appointDate, appointHour, appointID string, req *model.UpdateAppointmentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateKeys = append(f.updateKeys, [4]string{patientID, appointDate, appointHour, appointID})
	f.updateCalls = append(f.updateCalls, *req)
	return f.updateErr
}

func (f *fakeAPI) stats() (int, model.AppointmentFilter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.lastFilter
}

type fakeCanceller struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (f *fakeCanceller) CancelAppointment(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	return f.err
}

func sampleRows() []model.Appointment {
	return []model.Appointment{
		{
			ID: "a1", PatientID: "p1", DoctorID: "d1",
			AppointDate: "2030-05-01", AppointHour: "09:00",
			Symptoms: "cough", Status: model.AppointmentStatusScheduled,
			PatientName: "Alice Wong",
		},
		{
			ID: "a2", PatientID: "p2", DoctorID: "d1",
			AppointDate: "2030-05-01", AppointHour: "10:30",
			Symptoms: "fever", Status: model.AppointmentStatusCompleted,
			PatientName: "Bob Tan", Prescription: "paracetamol",
		},
	}
}

func newTestTable(api *fakeAPI, cancel *fakeCanceller, settle time.Duration) (*Table, *notice.Center) {
	notices := notice.NewCenter(0)
	t := NewTable(TableDeps{
		API:          api,
		Canceller:    cancel,
		Notices:      notices,
		Logger:       zerolog.Nop(),
		DoctorID:     "d1",
		PageSize:     5,
		SearchSettle: settle,
	})
	return t, notices
}

func TestLoadScopesQueryToDoctor(t *testing.T) {
	api := &fakeAPI{rows: sampleRows()}
	tbl, _ := newTestTable(api, &fakeCanceller{}, time.Minute)

	require.NoError(t, tbl.Load(context.Background()))
	assert.Len(t, tbl.Rows(), 2)

	_, filter := api.stats()
	assert.Equal(t, "d1", filter.DoctorID)
}

func TestEditBuffersAreIndependent(t *testing.T) {
	api := &fakeAPI{rows: sampleRows()}
	tbl, _ := newTestTable(api, &fakeCanceller{}, time.Minute)
	require.NoError(t, tbl.Load(context.Background()))

	require.NoError(t, tbl.BeginEdit("a1"))
	require.NoError(t, tbl.BeginEdit("a2"))

	// Edit mode pre-populates from the row, with the status in UI terms.
	buf1, ok := tbl.EditBuffer("a1")
	require.True(t, ok)
	assert.Equal(t, "cough", buf1.Symptoms)
	assert.Equal(t, model.UIStatusPending, buf1.Status)

	buf1.Symptoms = "dry cough, two weeks"
	require.NoError(t, tbl.SetEdit("a1", buf1))

	// The other row's buffer is untouched.
	buf2, ok := tbl.EditBuffer("a2")
	require.True(t, ok)
	assert.Equal(t, "fever", buf2.Symptoms)
	assert.Equal(t, model.UIStatusCompleted, buf2.Status)

	// Cancelling one edit leaves the other in place and the rows pristine.
	tbl.CancelEdit("a1")
	_, ok = tbl.EditBuffer("a1")
	assert.False(t, ok)
	_, ok = tbl.EditBuffer("a2")
	assert.True(t, ok)
	assert.Equal(t, "cough", tbl.Rows()[0].Symptoms)
}

func TestCommitEditSendsCompoundKeyAndReloads(t *testing.T) {
	api := &fakeAPI{rows: sampleRows()}
	tbl, notices := newTestTable(api, &fakeCanceller{}, time.Minute)
	require.NoError(t, tbl.Load(context.Background()))

	require.NoError(t, tbl.BeginEdit("a1"))
	require.NoError(t, tbl.SetEdit("a1", Edit{
		Symptoms:     "cough",
		Prescription: "lozenges",
		Status:       model.UIStatusCompleted,
	}))
	require.NoError(t, tbl.CommitEdit(context.Background(), "a1"))

	require.Len(t, api.updateKeys, 1)
	assert.Equal(t, [4]string{"p1", "2030-05-01", "09:00", "a1"}, api.updateKeys[0])
	assert.Equal(t, model.AppointmentStatusCompleted, api.updateCalls[0].Status)

	// The buffer is gone and the list was re-fetched.
	_, ok := tbl.EditBuffer("a1")
	assert.False(t, ok)
	calls, _ := api.stats()
	assert.Equal(t, 2, calls)
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindSuccess, notices.Active()[0].Kind)
}

func TestCommitEditNoFieldsChangedIsAWarningNotAnError(t *testing.T) {
	api := &fakeAPI{
		rows:      sampleRows(),
		updateErr: fmt.Errorf("no change: %w", apiclient.ErrNoFieldsChanged),
	}
	tbl, notices := newTestTable(api, &fakeCanceller{}, time.Minute)
	require.NoError(t, tbl.Load(context.Background()))

	require.NoError(t, tbl.BeginEdit("a1"))
	err := tbl.CommitEdit(context.Background(), "a1")
	assert.NoError(t, err, "a no-op update is not a failure")

	_, ok := tbl.EditBuffer("a1")
	assert.False(t, ok, "the row leaves edit mode")
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindWarning, notices.Active()[0].Kind)
	assert.Equal(t, "no information to update", notices.Active()[0].Text)
}

func TestCommitEditFailureKeepsRowInEdit(t *testing.T) {
	api := &fakeAPI{
		rows:      sampleRows(),
		updateErr: &apiclient.APIError{Kind: apiclient.KindServer, Message: "backend down"},
	}
	tbl, notices := newTestTable(api, &fakeCanceller{}, time.Minute)
	require.NoError(t, tbl.Load(context.Background()))

	require.NoError(t, tbl.BeginEdit("a1"))
	err := tbl.CommitEdit(context.Background(), "a1")
	require.Error(t, err)

	_, ok := tbl.EditBuffer("a1")
	assert.True(t, ok, "a failed commit keeps the buffer for retry")
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindError, notices.Active()[0].Kind)
}

func TestConfirmDeleteCancelsOnBackend(t *testing.T) {
	api := &fakeAPI{rows: sampleRows()}
	cancel := &fakeCanceller{}
	tbl, notices := newTestTable(api, cancel, time.Minute)
	require.NoError(t, tbl.Load(context.Background()))

	prompt, err := tbl.DeletePrompt("a2")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Bob Tan")
	assert.Contains(t, prompt, "2030-05-01")

	require.NoError(t, tbl.ConfirmDelete(context.Background(), "a2"))
	assert.Equal(t, []string{"a2"}, cancel.ids)

	// The list was re-fetched after the cancellation.
	calls, _ := api.stats()
	assert.Equal(t, 2, calls)
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindSuccess, notices.Active()[0].Kind)
}

func TestSearchIsDebounced(t *testing.T) {
	api := &fakeAPI{rows: sampleRows()}
	tbl, _ := newTestTable(api, &fakeCanceller{}, 40*time.Millisecond)

	ctx := context.Background()
	tbl.SetSearch(ctx, "A")
	tbl.SetSearch(ctx, "Al")
	tbl.SetSearch(ctx, "Ali")
	tbl.SetSearch(ctx, "Alice")

	// Nothing fires while the user is still typing.
	calls, _ := api.stats()
	assert.Equal(t, 0, calls)

	assert.Eventually(t, func() bool {
		calls, filter := api.stats()
		return calls == 1 && filter.PatientName == "Alice"
	}, time.Second, 10*time.Millisecond)

	// No trailing extra query after the settle window.
	time.Sleep(80 * time.Millisecond)
	calls, _ = api.stats()
	assert.Equal(t, 1, calls)
}

func TestFilterChangeResetsPagination(t *testing.T) {
	rows := make([]model.Appointment, 12)
	for i := range rows {
		rows[i] = model.Appointment{
			ID:          fmt.Sprintf("a%d", i),
			PatientID:   fmt.Sprintf("p%d", i),
			AppointDate: "2030-05-01",
			AppointHour: "09:00",
		}
	}
	api := &fakeAPI{rows: rows}
	tbl, _ := newTestTable(api, &fakeCanceller{}, time.Minute)
	require.NoError(t, tbl.Load(context.Background()))

	tbl.NextPage()
	tbl.NextPage()
	require.Equal(t, 3, tbl.CurrentPage())

	require.NoError(t, tbl.SetStatusFilter(context.Background(), "Completed"))
	assert.Equal(t, 1, tbl.CurrentPage())

	_, filter := api.stats()
	assert.Equal(t, "Completed", filter.Status)
}

func TestExportCoversAllFilteredRowsNotJustThePage(t *testing.T) {
	rows := make([]model.Appointment, 7)
	for i := range rows {
		rows[i] = model.Appointment{
			ID:          fmt.Sprintf("a%d", i),
			PatientName: fmt.Sprintf("Patient %d", i),
			AppointDate: "2030-05-01",
			AppointHour: "09:00",
		}
	}
	api := &fakeAPI{rows: rows}
	tbl, _ := newTestTable(api, &fakeCanceller{}, time.Minute)
	require.NoError(t, tbl.Load(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, tbl.Export(&buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	sheetRows, err := wb.GetRows("Appointments")
	require.NoError(t, err)
	assert.Len(t, sheetRows, 8, "header plus one row per filtered appointment")
}
