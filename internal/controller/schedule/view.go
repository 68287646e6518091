// Package schedule drives the doctor/admin work-schedule view: modal-based
// create and edit, confirmed delete, date/active filtering and pagination.
package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-portal/internal/apiclient"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/internal/paginate"
	"github.com/jwalitptl/clinic-portal/pkg/validator"
)

// API is the schedule resource surface the view needs.
type API interface {
	ListForDoctor(ctx context.Context, doctorID string) ([]model.Schedule, error)
	Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error)
	Update(ctx context.Context, id string, req *model.UpdateScheduleRequest) (*model.Schedule, error)
	Delete(ctx context.Context, id string) error
}

// ProfileSource resolves the signed-in doctor's own profile.
type ProfileSource interface {
	MyProfile(ctx context.Context) (*model.Doctor, error)
}

type ModalMode string

const (
	ModalCreate ModalMode = "create"
	ModalEdit   ModalMode = "edit"
)

// Modal is the shared create/edit dialog state. Edit mode pre-populates
// the draft from the selected row.
type Modal struct {
	Open  bool
	Mode  ModalMode
	Draft model.Schedule
}

// View is the schedule management controller. The backend is ground truth:
// every mutation triggers a full re-fetch, never a local patch.
type View struct {
	api      API
	profile  ProfileSource
	validate *validator.Validator
	notices  *notice.Center
	log      zerolog.Logger

	mu           sync.Mutex
	doctorID     string
	schedules    []model.Schedule
	filterDate   string
	filterActive *bool
	pager        *paginate.Pager[model.Schedule]
	modal        Modal
	loadErr      string
}

type ViewDeps struct {
	API       API
	Profile   ProfileSource
	Validator *validator.Validator
	Notices   *notice.Center
	Logger    zerolog.Logger
	PageSize  int
}

func NewView(deps ViewDeps) *View {
	return &View{
		api:      deps.API,
		profile:  deps.Profile,
		validate: deps.Validator,
		notices:  deps.Notices,
		log:      deps.Logger,
		pager:    paginate.New[model.Schedule](deps.PageSize),
	}
}

// Init resolves the signed-in doctor and loads their schedules.
func (v *View) Init(ctx context.Context) error {
	doctor, err := v.profile.MyProfile(ctx)
	if err != nil {
		v.setLoadErr(err)
		return err
	}

	v.mu.Lock()
	v.doctorID = doctor.ID
	v.mu.Unlock()

	return v.Reload(ctx)
}

// Reload re-fetches the full schedule list from the backend.
func (v *View) Reload(ctx context.Context) error {
	v.mu.Lock()
	doctorID := v.doctorID
	v.mu.Unlock()

	schedules, err := v.api.ListForDoctor(ctx, doctorID)
	if err != nil {
		v.setLoadErr(err)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.schedules = schedules
	v.loadErr = ""
	v.repageLocked(false)
	return nil
}

// LoadError returns the inline error state of the last fetch, empty when
// the view is healthy.
func (v *View) LoadError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}

func (v *View) setLoadErr(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadErr = apiclient.UserMessage(err)
}

// SetDateFilter filters by exact calendar date (normalized comparison).
// Any filter change resets pagination to the first page.
func (v *View) SetDateFilter(date string) {
	normalized := date
	if date != "" {
		if n, err := model.NormalizeDate(date); err == nil {
			normalized = n
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.filterDate = normalized
	v.repageLocked(true)
}

// SetActiveFilter filters by the active flag; nil clears the filter.
func (v *View) SetActiveFilter(active *bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filterActive = active
	v.repageLocked(true)
}

func (v *View) repageLocked(resetPage bool) {
	v.pager.SetItems(v.filteredLocked())
	if resetPage {
		v.pager.Reset()
	}
}

func (v *View) filteredLocked() []model.Schedule {
	out := make([]model.Schedule, 0, len(v.schedules))
	for _, s := range v.schedules {
		if v.filterDate != "" {
			d, err := model.NormalizeDate(s.WorkDate)
			if err != nil || d != v.filterDate {
				continue
			}
		}
		if v.filterActive != nil && s.Active != *v.filterActive {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Page returns the rows of the current page over the filtered set.
func (v *View) Page() []model.Schedule {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pager.Page()
}

func (v *View) CurrentPage() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pager.Current()
}

func (v *View) TotalPages() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pager.Total()
}

func (v *View) NextPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.Next()
}

func (v *View) PrevPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.Prev()
}

// OpenCreate opens the modal in create mode with a blank draft.
func (v *View) OpenCreate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = Modal{
		Open: true,
		Mode: ModalCreate,
		Draft: model.Schedule{
			DoctorID: v.doctorID,
			Status:   model.ScheduleStatusScheduled,
			Active:   true,
		},
	}
}

// OpenEdit opens the modal pre-populated from the selected row.
func (v *View) OpenEdit(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.schedules {
		if s.ID == id {
			v.modal = Modal{Open: true, Mode: ModalEdit, Draft: s}
			return nil
		}
	}
	return fmt.Errorf("schedule %s is not in the current list", id)
}

func (v *View) CloseModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = Modal{}
}

func (v *View) Modal() Modal {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.modal
}

// SetDraft replaces the modal draft with edited field values.
func (v *View) SetDraft(draft model.Schedule) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.modal.Open {
		return
	}
	draft.ID = v.modal.Draft.ID
	draft.DoctorID = v.modal.Draft.DoctorID
	v.modal.Draft = draft
}

// SubmitModal commits the draft. Success closes the modal; failure keeps
// it open for correction. Either way the list is re-fetched, because the
// server is the only source of truth.
func (v *View) SubmitModal(ctx context.Context) error {
	v.mu.Lock()
	modal := v.modal
	v.mu.Unlock()

	if !modal.Open {
		return fmt.Errorf("no modal is open")
	}

	var submitErr error
	switch modal.Mode {
	case ModalCreate:
		req := &model.CreateScheduleRequest{
			DoctorID:  modal.Draft.DoctorID,
			WorkDate:  modal.Draft.WorkDate,
			StartTime: modal.Draft.StartTime,
			EndTime:   modal.Draft.EndTime,
			Status:    modal.Draft.Status,
		}
		if submitErr = v.validate.Validate(req); submitErr == nil {
			_, submitErr = v.api.Create(ctx, req)
		}
	case ModalEdit:
		req := &model.UpdateScheduleRequest{
			WorkDate:  &modal.Draft.WorkDate,
			StartTime: &modal.Draft.StartTime,
			EndTime:   &modal.Draft.EndTime,
			Status:    &modal.Draft.Status,
			Active:    &modal.Draft.Active,
		}
		if submitErr = v.validate.Validate(req); submitErr == nil {
			_, submitErr = v.api.Update(ctx, modal.Draft.ID, req)
		}
	default:
		return fmt.Errorf("unknown modal mode %q", modal.Mode)
	}

	if submitErr != nil {
		if _, ok := submitErr.(validator.FieldErrors); !ok {
			v.notices.Push(notice.KindError, apiclient.UserMessage(submitErr), 0)
			// Mutation may have partially landed; re-sync regardless.
			if err := v.Reload(ctx); err != nil {
				v.log.Warn().Err(err).Msg("schedule reload after failed submit")
			}
		}
		return submitErr
	}

	v.CloseModal()
	v.notices.Push(notice.KindSuccess, "schedule saved", 0)
	return v.Reload(ctx)
}

// DeletePrompt returns the confirmation text for a delete, carrying the
// target work date so the user sees what they are about to remove.
func (v *View) DeletePrompt(id string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.schedules {
		if s.ID == id {
			return fmt.Sprintf("Delete the schedule for %s?", s.WorkDate), nil
		}
	}
	return "", fmt.Errorf("schedule %s is not in the current list", id)
}

// ConfirmDelete performs the delete after the user has confirmed. Failure
// leaves the list untouched; success re-fetches it.
func (v *View) ConfirmDelete(ctx context.Context, id string) error {
	if err := v.api.Delete(ctx, id); err != nil {
		v.notices.Push(notice.KindError, apiclient.UserMessage(err), 0)
		return err
	}
	v.notices.Push(notice.KindSuccess, "schedule deleted", 0)
	return v.Reload(ctx)
}
