package schedule

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/pkg/validator"
)

type fakeScheduleAPI struct {
	mu        sync.Mutex
	schedules []model.Schedule
	listCalls int
	createErr error
	created   []model.CreateScheduleRequest
	updated   map[string]model.UpdateScheduleRequest
	deleted   []string
	deleteErr error
}

func (f *fakeScheduleAPI) ListForDoctor(_ context.Context, _ string) ([]model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]model.Schedule, len(f.schedules))
	copy(out, f.schedules)
	return out, nil
}

func (f *fakeScheduleAPI) Create(_ context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *req)
	s := model.Schedule{ID: fmt.Sprintf("s%d", len(f.created)), DoctorID: req.DoctorID, WorkDate: req.WorkDate, Status: req.Status, Active: true}
	f.schedules = append(f.schedules, s)
	return &s, nil
}

func (f *fakeScheduleAPI) Update(_ context.Context, id string, req *model.UpdateScheduleRequest) (*model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updated == nil {
		f.updated = make(map[string]model.UpdateScheduleRequest)
	}
	f.updated[id] = *req
	return &model.Schedule{ID: id}, nil
}

func (f *fakeScheduleAPI) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	for i, s := range f.schedules {
		if s.ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			break
		}
	}
	return nil
}

type fakeProfile struct{}

func (fakeProfile) MyProfile(context.Context) (*model.Doctor, error) {
	return &model.Doctor{ID: "d1", Name: "Dr. Chen"}, nil
}

func sampleSchedules() []model.Schedule {
	return []model.Schedule{
		{ID: "s1", DoctorID: "d1", WorkDate: "2030-05-01", StartTime: "08:00", EndTime: "12:00", Status: model.ScheduleStatusScheduled, Active: true},
		{ID: "s2", DoctorID: "d1", WorkDate: "2030-05-02", StartTime: "13:30", EndTime: "17:00", Status: model.ScheduleStatusBooked, Active: true},
		{ID: "s3", DoctorID: "d1", WorkDate: "2030-05-03", StartTime: "08:00", EndTime: "12:00", Status: model.ScheduleStatusCancelled, Active: false},
	}
}

func newTestView(api *fakeScheduleAPI) (*View, *notice.Center) {
	notices := notice.NewCenter(0)
	v := NewView(ViewDeps{
		API:       api,
		Profile:   fakeProfile{},
		Validator: validator.New(),
		Notices:   notices,
		Logger:    zerolog.Nop(),
		PageSize:  2,
	})
	return v, notices
}

func TestInitLoadsOwnSchedules(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, _ := newTestView(api)

	require.NoError(t, v.Init(context.Background()))
	assert.Empty(t, v.LoadError())
	assert.Equal(t, 2, v.TotalPages())
	assert.Len(t, v.Page(), 2)
}

func TestDateFilterMatchesNothingShowsEmptyPage(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, _ := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	v.SetDateFilter("2031-01-01")

	assert.Empty(t, v.Page())
	assert.Equal(t, 1, v.TotalPages())
	assert.Equal(t, 1, v.CurrentPage())
}

func TestFilterChangeResetsToFirstPage(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, _ := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	v.NextPage()
	require.Equal(t, 2, v.CurrentPage())

	active := true
	v.SetActiveFilter(&active)
	assert.Equal(t, 1, v.CurrentPage())
	assert.Len(t, v.Page(), 2, "s1 and s2 are active")

	v.SetActiveFilter(nil)
	assert.Equal(t, 2, v.TotalPages())
}

func TestDateFilterAcceptsLooseFormats(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, _ := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	// A picker may hand back a day/month/year string; it still matches.
	v.SetDateFilter("02/05/2030")
	page := v.Page()
	require.Len(t, page, 1)
	assert.Equal(t, "s2", page[0].ID)
}

func TestOpenEditPrePopulatesDraft(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, _ := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	require.NoError(t, v.OpenEdit("s2"))
	m := v.Modal()
	assert.True(t, m.Open)
	assert.Equal(t, ModalEdit, m.Mode)
	assert.Equal(t, "2030-05-02", m.Draft.WorkDate)
	assert.Equal(t, model.ScheduleStatusBooked, m.Draft.Status)

	assert.Error(t, v.OpenEdit("nope"))
}

func TestSetDraftCannotRebindIdentity(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, _ := newTestView(api)
	require.NoError(t, v.Init(context.Background()))
	require.NoError(t, v.OpenEdit("s1"))

	v.SetDraft(model.Schedule{ID: "hijacked", DoctorID: "d9", WorkDate: "2030-06-01"})

	m := v.Modal()
	assert.Equal(t, "s1", m.Draft.ID)
	assert.Equal(t, "d1", m.Draft.DoctorID)
	assert.Equal(t, "2030-06-01", m.Draft.WorkDate)
}

func TestSubmitCreateClosesModalAndReloads(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, notices := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	v.OpenCreate()
	m := v.Modal()
	m.Draft.WorkDate = "2030-05-04"
	m.Draft.StartTime = "08:00"
	m.Draft.EndTime = "12:00"
	v.SetDraft(m.Draft)

	require.NoError(t, v.SubmitModal(context.Background()))

	assert.False(t, v.Modal().Open)
	require.Len(t, api.created, 1)
	assert.Equal(t, "d1", api.created[0].DoctorID)
	assert.GreaterOrEqual(t, api.listCalls, 2, "the list is re-fetched after the create")
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindSuccess, notices.Active()[0].Kind)
}

func TestSubmitCreateValidationKeepsModalOpen(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, notices := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	v.OpenCreate()
	// WorkDate is missing.
	err := v.SubmitModal(context.Background())
	require.Error(t, err)

	_, ok := err.(validator.FieldErrors)
	assert.True(t, ok)
	assert.True(t, v.Modal().Open, "the modal stays open for correction")
	assert.Empty(t, api.created)
	assert.Empty(t, notices.Active(), "inline field errors do not raise a notice")
}

func TestSubmitCreateBackendFailureReloadsAnyway(t *testing.T) {
	api := &fakeScheduleAPI{
		schedules: sampleSchedules(),
		createErr: &apiclient.APIError{Kind: apiclient.KindServer, Message: "backend down"},
	}
	v, notices := newTestView(api)
	require.NoError(t, v.Init(context.Background()))
	before := api.listCalls

	v.OpenCreate()
	m := v.Modal()
	m.Draft.WorkDate = "2030-05-04"
	m.Draft.StartTime = "08:00"
	m.Draft.EndTime = "12:00"
	v.SetDraft(m.Draft)

	err := v.SubmitModal(context.Background())
	require.Error(t, err)

	assert.True(t, v.Modal().Open)
	assert.Greater(t, api.listCalls, before, "the list re-syncs even after a failed write")
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindError, notices.Active()[0].Kind)
	assert.Equal(t, "backend down", notices.Active()[0].Text)
}

func TestSubmitEditSendsUpdate(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, _ := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	require.NoError(t, v.OpenEdit("s1"))
	m := v.Modal()
	m.Draft.EndTime = "11:30"
	m.Draft.Active = false
	v.SetDraft(m.Draft)

	require.NoError(t, v.SubmitModal(context.Background()))

	req, ok := api.updated["s1"]
	require.True(t, ok)
	assert.Equal(t, "11:30", *req.EndTime)
	assert.False(t, *req.Active)
	assert.False(t, v.Modal().Open)
}

func TestConfirmedDeleteRemovesAndReloads(t *testing.T) {
	api := &fakeScheduleAPI{schedules: sampleSchedules()}
	v, notices := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	prompt, err := v.DeletePrompt("s3")
	require.NoError(t, err)
	assert.Equal(t, "Delete the schedule for 2030-05-03?", prompt)

	require.NoError(t, v.ConfirmDelete(context.Background(), "s3"))
	assert.Equal(t, []string{"s3"}, api.deleted)

	// Re-fetched list no longer carries the row.
	for _, s := range v.Page() {
		assert.NotEqual(t, "s3", s.ID)
	}
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindSuccess, notices.Active()[0].Kind)
}

func TestDeleteFailureLeavesListUntouched(t *testing.T) {
	api := &fakeScheduleAPI{
		schedules: sampleSchedules(),
		deleteErr: &apiclient.APIError{Kind: apiclient.KindServer, Message: "backend down"},
	}
	v, notices := newTestView(api)
	require.NoError(t, v.Init(context.Background()))

	err := v.ConfirmDelete(context.Background(), "s1")
	require.Error(t, err)
	assert.Empty(t, api.deleted)
	assert.Equal(t, 2, v.TotalPages())
	require.Len(t, notices.Active(), 1)
	assert.Equal(t, notice.KindError, notices.Active()[0].Kind)
}
