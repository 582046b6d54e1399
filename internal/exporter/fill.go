package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/model"
	"tabfmt/internal/parser"
)

// Filler copies raw values into a styled layout sheet. It owns the merge
// index of the destination and the destination-to-raw column mapping of the
// table being built. Styles are never touched; the layout keeps its own.
type Filler struct {
	merges  *parser.MergeIndex
	columns model.ColumnMap
}

// NewFiller builds a filler for one destination sheet. The merge index is
// read once here, so the filler must be created after the layout is loaded.
func NewFiller(dest *excelize.File, destSheet string, columns model.ColumnMap) (*Filler, error) {
	idx, err := parser.NewMergeIndex(dest, destSheet)
	if err != nil {
		return nil, fmt.Errorf("merge index for %s: %w", destSheet, err)
	}
	return &Filler{merges: idx, columns: columns}, nil
}

// FillWindow aligns the two data windows and copies min(raw, dest) rows
// starting at fromCol. Destination rows beyond the shorter window keep
// their previous values; cells hidden inside merged ranges are never
// written.
func (fl *Filler) FillWindow(raw *excelize.File, rawSheet string, dest *excelize.File, destSheet string, rawWin, destWin model.DataWindow, fromCol int) error {
	n := rawWin.Rows()
	if destWin.Rows() < n {
		n = destWin.Rows()
	}
	if n == 0 {
		return nil
	}
	maxCol, _, err := parser.SheetBounds(dest, destSheet)
	if err != nil {
		return err
	}
	for offset := 0; offset < n; offset++ {
		rawRow := rawWin.FirstDataRow + offset
		destRow := destWin.FirstDataRow + offset
		for col := fromCol; col <= maxCol; col++ {
			if fl.merges.IsSecondary(destRow, col) {
				continue
			}
			if err := copyCell(raw, rawSheet, fl.columns.Source(col), rawRow, dest, destSheet, col, destRow); err != nil {
				return err
			}
		}
	}
	return nil
}

// FillSheet copies the two sheets positionally over their full height, the
// shape used by tables whose extract mirrors the layout row for row.
func (fl *Filler) FillSheet(raw *excelize.File, rawSheet string, dest *excelize.File, destSheet string, fromCol int) error {
	_, rawMax, err := parser.SheetBounds(raw, rawSheet)
	if err != nil {
		return err
	}
	_, destMax, err := parser.SheetBounds(dest, destSheet)
	if err != nil {
		return err
	}
	rawWin := model.DataWindow{FirstDataRow: 1, FootnoteStart: rawMax + 1}
	destWin := model.DataWindow{FirstDataRow: 1, FootnoteStart: destMax + 1}
	return fl.FillWindow(raw, rawSheet, dest, destSheet, rawWin, destWin, fromCol)
}

// copyCell transfers one value, keeping numbers numeric and text textual.
// An empty source clears the destination. A formula left in the destination
// cell is dropped so the written literal survives recalculation.
func copyCell(src *excelize.File, srcSheet string, srcCol, srcRow int, dest *excelize.File, destSheet string, destCol, destRow int) error {
	srcCell, _ := excelize.CoordinatesToCellName(srcCol, srcRow)
	destCell, _ := excelize.CoordinatesToCellName(destCol, destRow)

	ct, err := src.GetCellType(srcSheet, srcCell)
	if err != nil {
		return err
	}
	raw, err := src.GetCellValue(srcSheet, srcCell, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}

	var value interface{}
	switch {
	case strings.TrimSpace(raw) == "":
		value = ""
	case ct == excelize.CellTypeSharedString || ct == excelize.CellTypeInlineString:
		value = raw
	case ct == excelize.CellTypeDate:
		// dates travel as their rendered text, not as serial numbers
		rendered, err := src.GetCellValue(srcSheet, srcCell)
		if err != nil {
			return err
		}
		value = rendered
	default:
		if fv, err := strconv.ParseFloat(raw, 64); err == nil {
			value = fv
		} else {
			value = raw
		}
	}

	if err := dest.SetCellValue(destSheet, destCell, value); err != nil {
		return err
	}
	return dest.SetCellFormula(destSheet, destCell, "")
}
