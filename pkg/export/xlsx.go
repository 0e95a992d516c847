package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formclone/pkg/model"
)

// SheetName is the single worksheet name used for exported responses.
const SheetName = "Form Responses"

const (
	labelHeader = "Question"
	valueHeader = "Answer"

	// maxColumnWidth caps auto-sizing so one long paragraph answer does not
	// produce an unreadable sheet.
	maxColumnWidth = 60
)

// WriteXLSX serializes report rows as a one-sheet workbook with a header row
// and auto-sized columns.
func WriteXLSX(w io.Writer, rows []model.AnswerRow) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: name sheet: %w", err)
	}

	if err := setRow(f, 1, labelHeader, valueHeader); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row.Label, row.Value); err != nil {
			return err
		}
	}

	labelWidth, valueWidth := len(labelHeader), len(valueHeader)
	for _, row := range rows {
		if n := len(row.Label); n > labelWidth {
			labelWidth = n
		}
		if n := len(row.Value); n > valueWidth {
			valueWidth = n
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", columnWidth(labelWidth)); err != nil {
		return fmt.Errorf("export: size column A: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", columnWidth(valueWidth)); err != nil {
		return fmt.Errorf("export: size column B: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, label, value string) error {
	labelCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export: cell name: %w", err)
	}
	valueCell, err := excelize.CoordinatesToCellName(2, row)
	if err != nil {
		return fmt.Errorf("export: cell name: %w", err)
	}
	if err := f.SetCellValue(SheetName, labelCell, label); err != nil {
		return fmt.Errorf("export: set cell %s: %w", labelCell, err)
	}
	if err := f.SetCellValue(SheetName, valueCell, value); err != nil {
		return fmt.Errorf("export: set cell %s: %w", valueCell, err)
	}
	return nil
}

func columnWidth(contentLen int) float64 {
	width := contentLen + 2
	if width > maxColumnWidth {
		width = maxColumnWidth
	}
	return float64(width)
}
