package model

import "time"

// Wire layouts shared by every date/hour field exchanged with the backend.
const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"
)

// The bookable day is a fixed catalog of half-hour slots: a morning block
// from 08:00 through 11:30 and an afternoon block from 13:30 through 17:00.
var slotCatalog = buildSlots()

func buildSlots() []string {
	var slots []string
	appendBlock := func(fromH, fromM, toH, toM int) {
		t := time.Date(0, 1, 1, fromH, fromM, 0, 0, time.UTC)
		end := time.Date(0, 1, 1, toH, toM, 0, 0, time.UTC)
		for !t.After(end) {
			slots = append(slots, t.Format(HourLayout))
			t = t.Add(30 * time.Minute)
		}
	}
	appendBlock(8, 0, 11, 30)
	appendBlock(13, 30, 17, 0)
	return slots
}

// SlotCatalog returns the fixed daily slot catalog. Callers must not mutate
// the returned slice; a copy is handed out to keep the catalog stable.
func SlotCatalog() []string {
	out := make([]string, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// ValidSlot reports whether s is a member of the slot catalog.
func ValidSlot(s string) bool {
	for _, c := range slotCatalog {
		if c == s {
			return true
		}
	}
	return false
}

// NormalizeDate parses any of the accepted client date spellings and returns
// the canonical yyyy-mm-dd form, so date comparisons are never raw string
// comparisons across formats.
func NormalizeDate(s string) (string, error) {
	for _, layout := range []string{DateLayout, "2006-01-02T15:04:05Z07:00", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	_, err := time.Parse(DateLayout, s)
	return "", err
}
