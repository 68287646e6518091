package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type SchedulesClient struct {
	c *Client
}

func (s *SchedulesClient) ListForDoctor(ctx context.Context, doctorID string) ([]model.Schedule, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("doctor id is required")
	}
	q := url.Values{}
	q.Set("doctor_id", doctorID)

	var schedules []model.Schedule
	if err := s.c.get(ctx, "/schedules", q, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListAll is the admin view over every doctor's schedule.
func (s *SchedulesClient) ListAll(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := s.c.get(ctx, "/schedules/all", nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s *SchedulesClient) Get(ctx context.Context, id string) (*model.Schedule, error) {
	if id == "" {
		return nil, fmt.Errorf("schedule id is required")
	}
	var schedule model.Schedule
	if err := s.c.get(ctx, "/schedules/"+url.PathEscape(id), nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *SchedulesClient) Create(ctx context.Context, req *model.CreateScheduleRequest) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := s.c.post(ctx, "/schedules", req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *SchedulesClient) Update(ctx context.Context, id string, req *model.UpdateScheduleRequest) (*model.Schedule, error) {
	if id == "" {
		return nil, fmt.Errorf("schedule id is required")
	}
	var schedule model.Schedule
	if err := s.c.put(ctx, "/schedules/"+url.PathEscape(id), req, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *SchedulesClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("schedule id is required")
	}
	return s.c.delete(ctx, "/schedules/"+url.PathEscape(id))
}
