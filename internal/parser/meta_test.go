package parser_test

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/parser"
)

func TestExtractMonthLabel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A1", "Gäste und Übernachtungen")
	setCell(t, f, "Sheet1", "A3", "Dezember 2025")
	setCell(t, f, "Sheet1", "B6", 42)

	got, err := parser.ExtractMonthLabel(f, "Sheet1")
	if err != nil {
		t.Fatalf("ExtractMonthLabel failed: %v", err)
	}
	if got != "Dezember 2025" {
		t.Fatalf("label=%q, want %q", got, "Dezember 2025")
	}
}

func TestExtractMonthLabel_IgnoresMonthWithoutYear(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A2", "Monat: Dezember")
	setCell(t, f, "Sheet1", "A4", "März 2026, vorläufig")

	got, err := parser.ExtractMonthLabel(f, "Sheet1")
	if err != nil {
		t.Fatalf("ExtractMonthLabel failed: %v", err)
	}
	if got != "März 2026, vorläufig" {
		t.Fatalf("label=%q, want the line carrying month and year", got)
	}
}

func TestExtractMonthLabel_Absent(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A1", "Überschrift ohne Periode")

	got, err := parser.ExtractMonthLabel(f, "Sheet1")
	if err != nil {
		t.Fatalf("ExtractMonthLabel failed: %v", err)
	}
	if got != "" {
		t.Fatalf("label=%q, want empty for sheet without period line", got)
	}
}

func TestExtractAsOfStamp(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A1", "Kopfzeile")
	setCell(t, f, "Sheet1", "B9", 3.5)
	setCell(t, f, "Sheet1", "C15", "(C)opyright 2024, Stand: 15.12.2025")

	got, err := parser.ExtractAsOfStamp(f, "Sheet1", "Stand:")
	if err != nil {
		t.Fatalf("ExtractAsOfStamp failed: %v", err)
	}
	if got != "Stand: 15.12.2025" {
		t.Fatalf("stamp=%q, want %q", got, "Stand: 15.12.2025")
	}
}

func TestExtractAsOfStamp_OutsideScanDepth(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A2", "Stand: 01.01.2020")
	setCell(t, f, "Sheet1", "A30", "Fußbereich")

	got, err := parser.ExtractAsOfStamp(f, "Sheet1", "Stand:")
	if err != nil {
		t.Fatalf("ExtractAsOfStamp failed: %v", err)
	}
	if got != "" {
		t.Fatalf("stamp=%q, want empty, the marker sits above the scanned rows", got)
	}
}
