package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/talentgate/screener/internal/audit"
	"github.com/talentgate/screener/internal/screening"
)

const (
	summarySheet      = "Summary"
	applicationsSheet = "Applications"
)

var applicationHeaders = []string{
	"Application ID",
	"Run ID",
	"Status",
	"Score",
	"Outcome",
	"Rejection Reason",
	"Missing Items",
	"Confidence",
	"Dedupe Key",
	"Updated At",
}

// WriteReport renders the persisted screening records into an .xlsx workbook
// with a summary sheet and one row per application.
func WriteReport(records []audit.Record, outputPath string) error {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(applicationsSheet); err != nil {
		return fmt.Errorf("create applications sheet: %w", err)
	}

	if err := writeSummarySheet(f, records); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}

	if err := writeApplicationsSheet(f, records); err != nil {
		return fmt.Errorf("write applications sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save report %q: %w", outputPath, err)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, records []audit.Record) error {
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	counts := map[screening.Outcome]int{}
	for _, record := range records {
		counts[record.Decision.Outcome]++
	}

	rows := []struct {
		label string
		value any
	}{
		{"Screening Report", ""},
		{"Total applications", len(records)},
		{"Interviews scheduled", counts[screening.OutcomeInterviewScheduled]},
		{"Clarification required", counts[screening.OutcomeClarificationRequired]},
		{"Rejected", counts[screening.OutcomeRejected]},
	}

	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(summarySheet, labelCell, row.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, labelCell, labelCell, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row.value); err != nil {
			return err
		}
	}

	return f.SetColWidth(summarySheet, "A", "A", 26)
}

func writeApplicationsSheet(f *excelize.File, records []audit.Record) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, header := range applicationHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(applicationsSheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(applicationsSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, record := range records {
		values := []any{
			record.ApplicationID,
			record.RunID,
			record.Status,
			record.Score.Score,
			string(record.Decision.Outcome),
			record.Decision.RejectionReasonCode,
			strings.Join(record.Score.MissingItems, "; "),
			record.Profile.Confidence,
			record.Normalized.DedupeKey,
			record.UpdatedAt.Format("2006-01-02 15:04:05"),
		}

		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(applicationsSheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SetColWidth(applicationsSheet, "A", "J", 22)
}
