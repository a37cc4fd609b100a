// Package excel renders the study-plan progress report as an xlsx workbook.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"studyplan/domain/schedule"
	"studyplan/domain/session"
	"studyplan/domain/timer"
)

// ReportWriter builds progress report workbooks.
type ReportWriter struct{}

// NewReportWriter creates a report writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Write renders the weekly plan, blocked dates and practice results into an
// xlsx workbook on w.
func (rw *ReportWriter) Write(w io.Writer, sched *schedule.StudySchedule, results []session.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	const planSheet = "Weekly Plan"
	f.SetSheetName("Sheet1", planSheet)

	headers := []string{"Day", "Enabled", "Target Hours"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(planSheet, cell, h)
	}
	week := schedule.DefaultWeek()
	if sched != nil && len(sched.ScheduleData) > 0 {
		week = sched.ScheduleData
	}
	for row, day := range week {
		f.SetCellValue(planSheet, fmt.Sprintf("A%d", row+2), day.Day)
		f.SetCellValue(planSheet, fmt.Sprintf("B%d", row+2), day.Enabled)
		f.SetCellValue(planSheet, fmt.Sprintf("C%d", row+2), day.Hours)
	}
	if sched != nil {
		f.SetCellValue(planSheet, "E1", "Start Date")
		f.SetCellValue(planSheet, "F1", "End Date")
		if sched.StartDate != nil {
			f.SetCellValue(planSheet, "E2", sched.StartDate.String())
		}
		if sched.EndDate != nil {
			f.SetCellValue(planSheet, "F2", sched.EndDate.String())
		}
	}

	const blockedSheet = "Blocked Dates"
	if _, err := f.NewSheet(blockedSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetCellValue(blockedSheet, "A1", "Date")
	if sched != nil {
		for i, d := range schedule.SortedBlockedDates(sched.BlockedDates) {
			f.SetCellValue(blockedSheet, fmt.Sprintf("A%d", i+2), d)
		}
	}

	const resultsSheet = "Practice Results"
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	resultHeaders := []string{"Taken At", "Mode", "Questions", "Answered", "Correct", "Score %", "Duration"}
	for i, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(resultsSheet, cell, h)
	}
	for row, r := range results {
		f.SetCellValue(resultsSheet, fmt.Sprintf("A%d", row+2), r.TakenAt.Format("2006-01-02 15:04"))
		f.SetCellValue(resultsSheet, fmt.Sprintf("B%d", row+2), string(r.Mode))
		f.SetCellValue(resultsSheet, fmt.Sprintf("C%d", row+2), r.TotalQuestions)
		f.SetCellValue(resultsSheet, fmt.Sprintf("D%d", row+2), r.Answered)
		f.SetCellValue(resultsSheet, fmt.Sprintf("E%d", row+2), r.Correct)
		f.SetCellValue(resultsSheet, fmt.Sprintf("F%d", row+2), r.Score())
		f.SetCellValue(resultsSheet, fmt.Sprintf("G%d", row+2), timer.FormatSeconds(r.DurationSeconds))
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
