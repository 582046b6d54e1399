package parser

import (
	"github.com/xuri/excelize/v2"
)

type mergeRect struct {
	minCol, minRow, maxCol, maxRow int
}

// MergeIndex answers whether a coordinate is a hidden member of a merged
// range. Writing such cells relocates the value to the range anchor and
// silently corrupts the layout, so the filler has to skip them.
type MergeIndex struct {
	rects []mergeRect
}

// NewMergeIndex reads the merged ranges of one sheet into an index.
func NewMergeIndex(f *excelize.File, sheet string) (*MergeIndex, error) {
	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	idx := &MergeIndex{rects: make([]mergeRect, 0, len(merged))}
	for _, m := range merged {
		minCol, minRow, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return nil, err
		}
		maxCol, maxRow, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			return nil, err
		}
		idx.rects = append(idx.rects, mergeRect{minCol: minCol, minRow: minRow, maxCol: maxCol, maxRow: maxRow})
	}
	return idx, nil
}

// IsSecondary reports whether (row, col) lies inside a merged range without
// being its top-left anchor. Anchors and unmerged cells return false.
func (m *MergeIndex) IsSecondary(row, col int) bool {
	for _, r := range m.rects {
		if row >= r.minRow && row <= r.maxRow && col >= r.minCol && col <= r.maxCol {
			return !(row == r.minRow && col == r.minCol)
		}
	}
	return false
}
