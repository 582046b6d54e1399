package parser_test

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/parser"
)

func setCell(t *testing.T, f *excelize.File, sheet, cell string, value interface{}) {
	t.Helper()
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		t.Fatalf("SetCellValue(%s) failed: %v", cell, err)
	}
}

func newDetector() parser.Detector {
	return parser.Detector{
		Classifier:     parser.NewClassifier([]string{"-", "X"}),
		FootnoteMarker: "-",
	}
}

// buildRegionSheet lays out a typical table: four header rows, seven data
// rows in column B, a footnote line, and a copyright line.
func buildRegionSheet(t *testing.T) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	setCell(t, f, "Sheet1", "A1", "Tabelle 2")
	setCell(t, f, "Sheet1", "A2", "Umsatz im Gastgewerbe")
	setCell(t, f, "Sheet1", "A4", "Monat")
	setCell(t, f, "Sheet1", "B4", "Umsatz")
	labels := []string{"Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"}
	for i, label := range labels {
		row := 5 + i
		setCell(t, f, "Sheet1", cellRef(t, 1, row), label)
		setCell(t, f, "Sheet1", cellRef(t, 2, row), float64(100+i))
	}
	setCell(t, f, "Sheet1", "A12", "- vorläufiges Ergebnis")
	setCell(t, f, "Sheet1", "A13", "(C)opyright 2024 Bayerisches Landesamt für Statistik")
	return f
}

func cellRef(t *testing.T, col, row int) string {
	t.Helper()
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatalf("CoordinatesToCellName(%d,%d) failed: %v", col, row, err)
	}
	return cell
}

func TestDetectWindow(t *testing.T) {
	f := buildRegionSheet(t)
	defer f.Close()

	win, err := newDetector().DetectWindow(f, "Sheet1", 2)
	if err != nil {
		t.Fatalf("DetectWindow failed: %v", err)
	}
	if win.FirstDataRow != 5 {
		t.Fatalf("FirstDataRow=%d, want 5", win.FirstDataRow)
	}
	if win.FootnoteStart != 12 {
		t.Fatalf("FootnoteStart=%d, want 12", win.FootnoteStart)
	}
	if win.Rows() != 7 {
		t.Fatalf("Rows()=%d, want 7", win.Rows())
	}
}

func TestDetectWindow_PlaceholderStartsData(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A1", "Kopf")
	setCell(t, f, "Sheet1", "B3", "X")
	setCell(t, f, "Sheet1", "B4", 12)
	setCell(t, f, "Sheet1", "A6", "- Fußnote")

	win, err := newDetector().DetectWindow(f, "Sheet1", 2)
	if err != nil {
		t.Fatalf("DetectWindow failed: %v", err)
	}
	if win.FirstDataRow != 3 {
		t.Fatalf("FirstDataRow=%d, want 3 (placeholder row)", win.FirstDataRow)
	}
}

func TestDetectWindow_Fallbacks(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A1", "nur Text")
	setCell(t, f, "Sheet1", "B2", "auch Text")
	setCell(t, f, "Sheet1", "A3", "noch mehr Text")

	win, err := newDetector().DetectWindow(f, "Sheet1", 2)
	if err != nil {
		t.Fatalf("DetectWindow failed: %v", err)
	}
	if win.FirstDataRow != 1 {
		t.Fatalf("FirstDataRow=%d, want fallback 1", win.FirstDataRow)
	}
	if win.FootnoteStart != 4 {
		t.Fatalf("FootnoteStart=%d, want fallback maxRow+1=4", win.FootnoteStart)
	}
}

func TestDetectWindow_FootnoteAboveDataClampsToZero(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	setCell(t, f, "Sheet1", "A2", "- Hinweis zur Methodik")
	setCell(t, f, "Sheet1", "B5", 7)

	win, err := newDetector().DetectWindow(f, "Sheet1", 2)
	if err != nil {
		t.Fatalf("DetectWindow failed: %v", err)
	}
	if win.FirstDataRow != 5 || win.FootnoteStart != 2 {
		t.Fatalf("window=%+v, want FirstDataRow=5 FootnoteStart=2", win)
	}
	if win.Rows() != 0 {
		t.Fatalf("Rows()=%d, want 0 for crossed boundaries", win.Rows())
	}
}
