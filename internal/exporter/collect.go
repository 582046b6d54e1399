package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/parser"
)

// CopySheetInto clones one sheet of src into dst under dstSheet, carrying
// values, cell styles, merged ranges, column widths, row heights, and
// hidden rows and columns. dst and src are separate files, so styles are
// re-registered in dst through a per-call cache.
func CopySheetInto(dst *excelize.File, dstSheet string, src *excelize.File, srcSheet string) error {
	if err := ensureSheet(dst, dstSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", dstSheet, err)
	}
	maxCol, maxRow, err := parser.SheetBounds(src, srcSheet)
	if err != nil {
		return err
	}
	srcMerges, err := parser.NewMergeIndex(src, srcSheet)
	if err != nil {
		return err
	}

	styleCache := make(map[int]int)
	for r := 1; r <= maxRow; r++ {
		for c := 1; c <= maxCol; c++ {
			// merged secondaries resolve to their anchor's value on
			// read, so copying them would smear the anchor across the
			// range
			if !srcMerges.IsSecondary(r, c) {
				if err := copyCell(src, srcSheet, c, r, dst, dstSheet, c, r); err != nil {
					return err
				}
			}
			cell, _ := excelize.CoordinatesToCellName(c, r)
			if err := copyCellStyle(dst, dstSheet, src, srcSheet, cell, styleCache); err != nil {
				return err
			}
		}
	}

	merged, err := src.GetMergeCells(srcSheet)
	if err != nil {
		return err
	}
	for _, m := range merged {
		if err := dst.MergeCell(dstSheet, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return err
		}
	}

	for c := 1; c <= maxCol; c++ {
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		width, err := src.GetColWidth(srcSheet, name)
		if err != nil {
			return err
		}
		if err := dst.SetColWidth(dstSheet, name, name, width); err != nil {
			return err
		}
		visible, err := src.GetColVisible(srcSheet, name)
		if err != nil {
			return err
		}
		if !visible {
			if err := dst.SetColVisible(dstSheet, name, false); err != nil {
				return err
			}
		}
	}
	for r := 1; r <= maxRow; r++ {
		height, err := src.GetRowHeight(srcSheet, r)
		if err != nil {
			return err
		}
		if err := dst.SetRowHeight(dstSheet, r, height); err != nil {
			return err
		}
		visible, err := src.GetRowVisible(srcSheet, r)
		if err != nil {
			return err
		}
		if !visible {
			if err := dst.SetRowVisible(dstSheet, r, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx >= 0 {
		return nil
	}
	_, err = f.NewSheet(sheet)
	return err
}

// copyCellStyle registers the source cell's style in dst once per distinct
// style ID and assigns it to the same coordinate.
func copyCellStyle(dst *excelize.File, dstSheet string, src *excelize.File, srcSheet, cell string, cache map[int]int) error {
	sid, err := src.GetCellStyle(srcSheet, cell)
	if err != nil {
		return err
	}
	if sid == 0 {
		return nil
	}
	mapped, ok := cache[sid]
	if !ok {
		st, err := src.GetStyle(sid)
		if err != nil {
			return err
		}
		mapped, err = dst.NewStyle(st)
		if err != nil {
			return err
		}
		cache[sid] = mapped
	}
	return dst.SetCellStyle(dstSheet, cell, cell, mapped)
}
