package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/model"
)

// Detector locates the data window of a sheet. The same detector runs
// against raw extracts and against layout sheets, which still carry the
// previous period's values in their data region.
type Detector struct {
	Classifier     Classifier
	FootnoteMarker string
}

// DetectWindow scans the probe column top-down for the first data-like row
// and column A for the first footnote row. Both scans fall back instead of
// failing: no data-like row means row 1, no footnote row means one past the
// last row. The scans are independent, so the resulting window can be empty
// on malformed sheets.
func (d Detector) DetectWindow(f *excelize.File, sheet string, probeCol int) (model.DataWindow, error) {
	_, maxRow, err := SheetBounds(f, sheet)
	if err != nil {
		return model.DataWindow{}, err
	}
	win := model.DataWindow{FirstDataRow: 1, FootnoteStart: maxRow + 1}

	probe, err := excelize.ColumnNumberToName(probeCol)
	if err != nil {
		return model.DataWindow{}, fmt.Errorf("probe column %d: %w", probeCol, err)
	}
	for r := 1; r <= maxRow; r++ {
		v, err := f.GetCellValue(sheet, fmt.Sprintf("%s%d", probe, r), excelize.Options{RawCellValue: true})
		if err != nil {
			return model.DataWindow{}, err
		}
		if d.Classifier.IsDataLike(v) {
			win.FirstDataRow = r
			break
		}
	}

	for r := 1; r <= maxRow; r++ {
		v, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", r))
		if err != nil {
			return model.DataWindow{}, err
		}
		if strings.HasPrefix(strings.TrimSpace(v), d.FootnoteMarker) {
			win.FootnoteStart = r
			break
		}
	}
	return win, nil
}
