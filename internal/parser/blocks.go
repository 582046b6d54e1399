package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/model"
)

// SplitBlocks partitions a multi-block raw sheet into its repeated
// sub-tables. A block starts at every row whose label-column text matches
// pattern; it ends at the row before the next start, or at the last row of
// the sheet, trimmed back past rows whose first trimCols columns are all
// empty. No matching label rows means no blocks, not an error.
func SplitBlocks(f *excelize.File, sheet string, labelCol int, pattern *regexp.Regexp, trimCols int) ([]model.Block, error) {
	_, maxRow, err := SheetBounds(f, sheet)
	if err != nil {
		return nil, err
	}
	label, err := excelize.ColumnNumberToName(labelCol)
	if err != nil {
		return nil, fmt.Errorf("label column %d: %w", labelCol, err)
	}

	var starts []int
	for r := 1; r <= maxRow; r++ {
		v, err := f.GetCellValue(sheet, fmt.Sprintf("%s%d", label, r))
		if err != nil {
			return nil, err
		}
		if pattern.MatchString(strings.TrimSpace(v)) {
			starts = append(starts, r)
		}
	}
	if len(starts) == 0 {
		return nil, nil
	}

	blocks := make([]model.Block, 0, len(starts))
	for i, start := range starts {
		end := maxRow
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		for end > start && rowBlank(f, sheet, end, trimCols) {
			end--
		}
		blocks = append(blocks, model.Block{Start: start, End: end})
	}
	return blocks, nil
}

// rowBlank reports whether the first cols cells of the row are all empty.
func rowBlank(f *excelize.File, sheet string, row, cols int) bool {
	for c := 1; c <= cols; c++ {
		cell, _ := excelize.CoordinatesToCellName(c, row)
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			continue
		}
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
