package model

// DataWindow is the detected data region of one sheet. FirstDataRow is the
// first row whose probe-column content looks like data; FootnoteStart is the
// first row past the data that belongs to the footnote region (exclusive
// bound). Both boundaries carry fallback values for degenerate sheets, so a
// window is always usable.
type DataWindow struct {
	FirstDataRow  int `json:"firstDataRow"`
	FootnoteStart int `json:"footnoteStart"`
}

// Rows returns the number of copyable rows. The two boundary scans run
// independently and can cross on malformed sheets, so the count clamps to
// zero instead of going negative.
func (w DataWindow) Rows() int {
	if w.FootnoteStart <= w.FirstDataRow {
		return 0
	}
	return w.FootnoteStart - w.FirstDataRow
}

// Block is one repeated sub-table inside a multi-block raw sheet. Start and
// End are inclusive row numbers; End is already trimmed past trailing blank
// padding rows.
type Block struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Rows returns the block height in rows.
func (b Block) Rows() int {
	if b.End < b.Start {
		return 0
	}
	return b.End - b.Start + 1
}

// Window converts the block into the window form the filler consumes.
func (b Block) Window() DataWindow {
	return DataWindow{FirstDataRow: b.Start, FootnoteStart: b.End + 1}
}
