package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formclone/pkg/model"
)

func TestWriteXLSX_RoundTrip(t *testing.T) {
	rows := []model.AnswerRow{
		{Label: "Name", Value: "Ada"},
		{Label: "Comments", Value: Unanswered},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 1 || got[0] != SheetName {
		t.Fatalf("sheets: %v", got)
	}

	cells, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	want := [][]string{
		{"Question", "Answer"},
		{"Name", "Ada"},
		{"Comments", Unanswered},
	}
	if len(cells) != len(want) {
		t.Fatalf("want %d rows, got %d: %v", len(want), len(cells), cells)
	}
	for i := range want {
		if len(cells[i]) != 2 || cells[i][0] != want[i][0] || cells[i][1] != want[i][1] {
			t.Fatalf("row %d: want %v, got %v", i, want[i], cells[i])
		}
	}
}

func TestWriteXLSX_EmptyRowsStillProducesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	cells, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(cells) != 1 || cells[0][0] != "Question" || cells[0][1] != "Answer" {
		t.Fatalf("header row: %v", cells)
	}
}

func TestWriteXLSX_ColumnWidthCapped(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	rows := []model.AnswerRow{{Label: "Essay", Value: string(long)}}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	width, err := f.GetColWidth(SheetName, "B")
	if err != nil {
		t.Fatalf("col width: %v", err)
	}
	if width != maxColumnWidth {
		t.Fatalf("want width %d, got %v", maxColumnWidth, width)
	}
}
