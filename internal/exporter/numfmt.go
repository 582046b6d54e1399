package exporter

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/parser"
)

// groupedNumFmt renders whole numbers in space-separated thousands groups
// with a "minus space" negative form, e.g. 1234567 as "1 234 567" and -42
// as "- 42".
const groupedNumFmt = `#\ ##0;-\ #\ ##0`

// NumberFormatter normalizes the display of numeric cells after filling.
type NumberFormatter struct {
	Placeholders []string
}

// Apply walks the populated area of the sheet, rounds every non-integral
// numeric cell to a whole number (ties away from zero) by rewriting its
// stored value, and applies the grouped display format. Columns listed in
// skipCols, placeholder cells, text cells, and date cells stay untouched.
// Cells already carrying the grouped format are left alone, so a second
// pass changes nothing.
func (n NumberFormatter) Apply(f *excelize.File, sheet string, skipCols []int) error {
	maxCol, maxRow, err := parser.SheetBounds(f, sheet)
	if err != nil {
		return err
	}
	skip := make(map[int]bool, len(skipCols))
	for _, c := range skipCols {
		skip[c] = true
	}

	styleCache := make(map[int]int)
	for r := 1; r <= maxRow; r++ {
		for c := 1; c <= maxCol; c++ {
			if skip[c] {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c, r)
			raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
			if err != nil {
				return err
			}
			s := strings.TrimSpace(raw)
			if s == "" || n.isPlaceholder(s) {
				continue
			}
			ct, err := f.GetCellType(sheet, cell)
			if err != nil {
				return err
			}
			if ct == excelize.CellTypeSharedString || ct == excelize.CellTypeInlineString || ct == excelize.CellTypeDate {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				continue
			}
			if v != math.Trunc(v) {
				if err := f.SetCellValue(sheet, cell, int64(roundHalfAway(v))); err != nil {
					return err
				}
			}
			if err := applyGroupedFormat(f, sheet, cell, styleCache); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n NumberFormatter) isPlaceholder(s string) bool {
	for _, p := range n.Placeholders {
		if s == p {
			return true
		}
	}
	return false
}

// roundHalfAway rounds to the nearest integer with ties away from zero, so
// 12.5 becomes 13 and -12.5 becomes -13.
func roundHalfAway(v float64) float64 {
	if v >= 0 {
		return math.Floor(v + 0.5)
	}
	return -math.Floor(-v + 0.5)
}

// applyGroupedFormat swaps only the number format of the cell's style,
// keeping font, borders, and fill as the layout defined them. The cache
// maps seen style IDs to their grouped counterparts, or to themselves when
// the grouped format is already present.
func applyGroupedFormat(f *excelize.File, sheet, cell string, cache map[int]int) error {
	sid, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	if mapped, ok := cache[sid]; ok {
		if mapped == sid {
			return nil
		}
		return f.SetCellStyle(sheet, cell, cell, mapped)
	}
	st, err := f.GetStyle(sid)
	if err != nil {
		return err
	}
	if st.CustomNumFmt != nil && *st.CustomNumFmt == groupedNumFmt {
		cache[sid] = sid
		return nil
	}
	code := groupedNumFmt
	st.CustomNumFmt = &code
	st.NumFmt = 0
	st.DecimalPlaces = nil
	mapped, err := f.NewStyle(st)
	if err != nil {
		return err
	}
	cache[sid] = mapped
	return f.SetCellStyle(sheet, cell, cell, mapped)
}
