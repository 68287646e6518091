// Package export serializes appointment rows to a spreadsheet. It is a
// convenience transform over whatever the table currently shows filtered;
// it plays no part in the data model's lifecycle.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

const sheetName = "Appointments"

var header = []string{
	"#", "Name", "Date of birth", "Gender", "Phone",
	"Hour", "Symptoms", "Prescription", "Status",
}

// Filename stamps the export with the current date.
func Filename(now time.Time) string {
	return fmt.Sprintf("appointments_%s.xlsx", now.Format("20060102"))
}

// Appointments writes one sheet: a header row followed by exactly one row
// per appointment, in the given order.
func Appointments(w io.Writer, appointments []model.Appointment) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := writeRow(f, 1, headerCells()); err != nil {
		return err
	}
	for i, apt := range appointments {
		cells := []interface{}{
			i + 1,
			apt.PatientName,
			apt.DateOfBirth,
			apt.Gender,
			apt.PatientPhone,
			apt.AppointHour,
			apt.Symptoms,
			apt.Prescription,
			string(apt.Status),
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func headerCells() []interface{} {
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
