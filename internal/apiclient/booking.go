package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type BookingClient struct {
	c *Client
}

func (b *BookingClient) Submit(ctx context.Context, req *model.BookingRequest) (*model.BookingRecord, error) {
	var record model.BookingRecord
	if err := b.c.post(ctx, "/bookings", req, &record); err != nil {
		return nil, err
	}
	// A new booking changes the busy-slot picture for that doctor and date.
	b.c.cache.Delete(busySlotsCacheKey(req.DoctorID, req.AppointDate))
	return &record, nil
}

func busySlotsCacheKey(doctorID, date string) string {
	return fmt.Sprintf("busyslots:%s:%s", doctorID, date)
}

// BusySlots returns the hours already bound to confirmed appointments for
// one doctor on one date. Results are shadow-cached briefly; pass force to
// bypass the cache when the caller needs the freshest picture.
func (b *BookingClient) BusySlots(ctx context.Context, doctorID, date string, force bool) ([]string, error) {
	if doctorID == "" || date == "" {
		return nil, fmt.Errorf("doctor id and date are required")
	}

	key := busySlotsCacheKey(doctorID, date)
	if !force {
		if cached, ok := b.c.cache.Get(key); ok {
			return cached.([]string), nil
		}
	}

	q := url.Values{}
	q.Set("doctor_id", doctorID)
	q.Set("date", date)

	var slots []string
	if err := b.c.get(ctx, "/bookings/busy-slots", q, &slots); err != nil {
		return nil, err
	}
	b.c.cache.SetDefault(key, slots)
	return slots, nil
}

// History lists the signed-in patient's own bookings.
func (b *BookingClient) History(ctx context.Context, patientID string) ([]model.BookingRecord, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient id is required")
	}
	q := url.Values{}
	q.Set("patient_id", patientID)

	var records []model.BookingRecord
	if err := b.c.get(ctx, "/bookings/history", q, &records); err != nil {
		return nil, err
	}
	return records, nil
}
