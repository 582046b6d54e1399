package exporter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/parser"
)

// copyrightYearRe isolates the year inside a copyright line so the
// surrounding text survives the rewrite untouched.
var copyrightYearRe = regexp.MustCompile(`((?:\(C\)opyright|Copyright)\s+)\d{4}`)

// FooterUpdater rewrites the footer line of a layout sheet: the copyright
// year becomes current and the "as of" stamp of the new extract replaces
// every older one. A zero Year means the wall-clock year.
type FooterUpdater struct {
	CopyrightHolder string
	AsOfMarker      string
	Year            int
}

func (u FooterUpdater) year() int {
	if u.Year != 0 {
		return u.Year
	}
	return time.Now().Year()
}

func (u FooterUpdater) copyrightMarkers() []string {
	m := []string{"(C)opyright", "Copyright"}
	if u.CopyrightHolder != "" {
		m = append(m, u.CopyrightHolder)
	}
	return m
}

// Update pins the footer of one sheet. It finds the copyright line bottom-up
// in column A (synthesizing one below the content when absent), rewrites its
// year in place, removes stale stamps everywhere else, and writes the new
// stamp into the stamp column of the copyright row with the row's own look.
// Running Update again with the same stamp changes nothing.
func (u FooterUpdater) Update(f *excelize.File, sheet, asOf string) error {
	maxCol, maxRow, err := parser.SheetBounds(f, sheet)
	if err != nil {
		return err
	}

	anchorRow := 0
	for r := maxRow; r >= 1; r-- {
		v, err := f.GetCellValue(sheet, fmt.Sprintf("A%d", r))
		if err != nil {
			return err
		}
		if parser.ContainsAny(v, u.copyrightMarkers()) {
			anchorRow = r
			break
		}
	}

	if anchorRow == 0 {
		// leave one blank separator row below the existing content
		anchorRow = maxRow + 2
		line := fmt.Sprintf("(C)opyright %d %s", u.year(), u.CopyrightHolder)
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", anchorRow), line); err != nil {
			return err
		}
		maxRow = anchorRow
	} else {
		anchor := fmt.Sprintf("A%d", anchorRow)
		v, err := f.GetCellValue(sheet, anchor)
		if err != nil {
			return err
		}
		if rewritten := copyrightYearRe.ReplaceAllString(v, fmt.Sprintf("${1}%d", u.year())); rewritten != v {
			if err := f.SetCellValue(sheet, anchor, rewritten); err != nil {
				return err
			}
		}
	}

	stampCol := maxCol
	for c := maxCol; c >= 2; c-- {
		cell, _ := excelize.CoordinatesToCellName(c, anchorRow)
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return err
		}
		if strings.Contains(v, u.AsOfMarker) {
			stampCol = c
			break
		}
	}

	for r := 1; r <= maxRow; r++ {
		if r == anchorRow {
			continue
		}
		for c := 1; c <= maxCol; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			v, err := f.GetCellValue(sheet, cell)
			if err != nil {
				return err
			}
			if strings.HasPrefix(strings.TrimSpace(v), u.AsOfMarker) {
				if err := f.SetCellValue(sheet, cell, ""); err != nil {
					return err
				}
			}
		}
	}

	text := strings.TrimSpace(asOf)
	if strings.Count(text, u.AsOfMarker) > 1 {
		first := strings.Index(text, u.AsOfMarker)
		rest := strings.ReplaceAll(text[first+len(u.AsOfMarker):], u.AsOfMarker, "")
		text = u.AsOfMarker + strings.TrimSpace(rest)
	}
	stampCell, _ := excelize.CoordinatesToCellName(stampCol, anchorRow)
	if err := f.SetCellValue(sheet, stampCell, text); err != nil {
		return err
	}

	bundle, err := CaptureStyle(f, sheet, fmt.Sprintf("A%d", anchorRow))
	if err != nil {
		return err
	}
	return bundle.ApplyRightAligned(f, sheet, stampCell)
}
