package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// germanMonths appear in the period line of every raw extract.
var germanMonths = []string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// monthScanRows bounds the header scan for the period label.
const monthScanRows = 20

// asOfScanRows bounds the bottom-up scan for the extract's date stamp.
const asOfScanRows = 10

// ExtractMonthLabel returns the period line of a raw sheet, for example
// "Dezember 2025". The line sits in column A within the first header rows
// and is recognized by carrying a month name next to a year fragment.
// Absent label means empty string, not an error.
func ExtractMonthLabel(f *excelize.File, sheet string) (string, error) {
	_, maxRow, err := SheetBounds(f, sheet)
	if err != nil {
		return "", err
	}
	limit := monthScanRows
	if maxRow < limit {
		limit = maxRow
	}
	for r := 1; r <= limit; r++ {
		v, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", r))
		if err != nil {
			return "", err
		}
		s := strings.TrimSpace(v)
		if s == "" {
			continue
		}
		if ContainsAny(s, germanMonths) && strings.Contains(s, "20") {
			return s, nil
		}
	}
	return "", nil
}

// ExtractAsOfStamp finds the extract's own date stamp in the bottom rows
// and returns the text from the marker onward, for example
// "Stand: 15.12.2025". Absent stamp means empty string.
func ExtractAsOfStamp(f *excelize.File, sheet, marker string) (string, error) {
	maxCol, maxRow, err := SheetBounds(f, sheet)
	if err != nil {
		return "", err
	}
	low := maxRow - asOfScanRows + 1
	if low < 1 {
		low = 1
	}
	for r := maxRow; r >= low; r-- {
		for c := 1; c <= maxCol; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			v, err := f.GetCellValue(sheet, cell)
			if err != nil {
				return "", err
			}
			if idx := strings.Index(v, marker); idx >= 0 {
				return strings.TrimSpace(v[idx:]), nil
			}
		}
	}
	return "", nil
}
