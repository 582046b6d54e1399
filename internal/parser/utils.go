package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetBounds returns the bounding box of the sheet's populated cells. The
// stored dimension element is not trusted; workbooks assembled in memory
// leave it stale.
func SheetBounds(f *excelize.File, sheet string) (maxCol, maxRow int, err error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, 0, err
	}
	maxRow = len(rows)
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxCol, maxRow, nil
}

// ContainsAny reports whether text contains at least one of the keywords.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
