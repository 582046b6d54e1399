package exporter

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// OpenTemplate loads a layout workbook. A missing file surfaces as a
// wrapped fs.ErrNotExist so callers can downgrade it to a skip instead of
// failing the run.
func OpenTemplate(path string) (*excelize.File, error) {
	if path == "" {
		return nil, errors.New("template path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}
	return excelize.OpenFile(path)
}

// WriteLabel sets one fixed label cell, such as the period line or the
// internal-use header. An empty cell reference is a no-op, so callers can
// pass unconfigured label positions through.
func WriteLabel(f *excelize.File, sheet, cell, text string) error {
	if cell == "" {
		return nil
	}
	return f.SetCellValue(sheet, cell, text)
}
