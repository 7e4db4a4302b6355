package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	DailySheet   = "Daily"
)

var (
	summaryHeader = []interface{}{"Employee", "Activity", "Shifts", "Hours", "Average rate (VND/h)", "Subtotal (VND)", "Confirmed", "Paid"}
	dailyHeader   = []interface{}{"Date", "Employee", "Activity", "Start", "End", "Hours", "Rate (VND/h)", "Subtotal (VND)"}
)

// PayrollWorkbook renders a month's payroll as an xlsx file with a Summary
// sheet (one row per employee activity plus totals) and a Daily sheet.
// Shift times on the Daily sheet are shown in loc.
func PayrollWorkbook(summary payroll.PayrollSummaryResponse, daily []payroll.DailyEntry, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(DailySheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6F4E37"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	// Summary
	title := fmt.Sprintf("Payroll %s", summary.Month)
	if summary.Status != nil {
		title += fmt.Sprintf(" (%s)", *summary.Status)
	}
	f.SetCellValue(SummarySheet, "A1", title)
	f.SetCellStyle(SummarySheet, "A1", "A1", totalStyle)
	if err := writeRow(f, SummarySheet, 2, summaryHeader); err != nil {
		return nil, err
	}
	f.SetCellStyle(SummarySheet, "A2", cellName(len(summaryHeader), 2), headerStyle)

	row := 3
	for _, emp := range summary.Employees {
		confirmed, paid := "", ""
		if c := emp.Confirmation; c != nil {
			confirmed = c.ConfirmedAt.Format("2006-01-02")
			if c.PaidAt != nil {
				paid = c.PaidAt.Format("2006-01-02")
			}
		}
		for _, a := range emp.Activities {
			values := []interface{}{
				emp.EmployeeName,
				a.ActivityName,
				a.ShiftCount,
				a.Hours.Round(2).InexactFloat64(),
				a.AverageRate.InexactFloat64(),
				a.Subtotal.Round(0).IntPart(),
				confirmed,
				paid,
			}
			if err := writeRow(f, SummarySheet, row, values); err != nil {
				return nil, err
			}
			row++
		}
		values := []interface{}{
			emp.EmployeeName,
			"Total",
			emp.ShiftCount,
			emp.TotalHours.Round(2).InexactFloat64(),
			nil,
			emp.TotalSalary.Round(0).IntPart(),
		}
		if err := writeRow(f, SummarySheet, row, values); err != nil {
			return nil, err
		}
		f.SetCellStyle(SummarySheet, cellName(1, row), cellName(len(summaryHeader), row), totalStyle)
		row++
	}
	values := []interface{}{"All employees", "", nil, summary.TotalHours.Round(2).InexactFloat64(), nil, summary.TotalSalary.Round(0).IntPart()}
	if err := writeRow(f, SummarySheet, row, values); err != nil {
		return nil, err
	}
	f.SetCellStyle(SummarySheet, cellName(1, row), cellName(len(summaryHeader), row), totalStyle)

	f.SetColWidth(SummarySheet, "A", "B", 24)
	f.SetColWidth(SummarySheet, "C", "H", 16)

	// Daily
	if err := writeRow(f, DailySheet, 1, dailyHeader); err != nil {
		return nil, err
	}
	f.SetCellStyle(DailySheet, "A1", cellName(len(dailyHeader), 1), headerStyle)
	for i, d := range daily {
		values := []interface{}{
			d.Date,
			d.EmployeeName,
			d.ActivityName,
			d.StartAt.In(loc).Format("15:04"),
			d.EndAt.In(loc).Format("15:04"),
			d.Hours.InexactFloat64(),
			d.HourlyVND,
			d.Subtotal.IntPart(),
		}
		if err := writeRow(f, DailySheet, i+2, values); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(DailySheet, "A", "C", 20)
	f.SetColWidth(DailySheet, "D", "H", 14)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	return f.SetSheetRow(sheet, cellName(1, row), &values)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
