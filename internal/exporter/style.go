package exporter

import (
	"github.com/xuri/excelize/v2"
)

// StyleBundle is a copy of the clonable parts of one cell's style: font,
// border, fill, number format, and protection. Alignment is chosen at apply
// time, so a bundle captured from a left-aligned label can style a
// right-aligned stamp.
type StyleBundle struct {
	font       *excelize.Font
	border     []excelize.Border
	fill       excelize.Fill
	numFmt     int
	customFmt  *string
	protection *excelize.Protection
	vertical   string
}

// CaptureStyle reads the style of one cell into a bundle.
func CaptureStyle(f *excelize.File, sheet, cell string) (StyleBundle, error) {
	sid, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return StyleBundle{}, err
	}
	st, err := f.GetStyle(sid)
	if err != nil {
		return StyleBundle{}, err
	}
	b := StyleBundle{
		font:       st.Font,
		border:     st.Border,
		fill:       st.Fill,
		numFmt:     st.NumFmt,
		customFmt:  st.CustomNumFmt,
		protection: st.Protection,
	}
	if st.Alignment != nil {
		b.vertical = st.Alignment.Vertical
	}
	return b, nil
}

// ApplyRightAligned stamps the bundle onto a cell with right horizontal
// alignment. Vertical alignment carries over from the captured cell and
// defaults to centered when the source had none.
func (b StyleBundle) ApplyRightAligned(f *excelize.File, sheet, cell string) error {
	vertical := b.vertical
	if vertical == "" {
		vertical = "center"
	}
	sid, err := f.NewStyle(&excelize.Style{
		Font:         b.font,
		Border:       b.border,
		Fill:         b.fill,
		NumFmt:       b.numFmt,
		CustomNumFmt: b.customFmt,
		Protection:   b.protection,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
			Vertical:   vertical,
		},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, sid)
}
