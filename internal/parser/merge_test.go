package parser_test

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/parser"
)

func TestMergeIndexIsSecondary(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.MergeCell("Sheet1", "A5", "C6"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}

	idx, err := parser.NewMergeIndex(f, "Sheet1")
	if err != nil {
		t.Fatalf("NewMergeIndex failed: %v", err)
	}

	if idx.IsSecondary(5, 1) {
		t.Fatalf("anchor A5 reported as secondary")
	}
	if !idx.IsSecondary(5, 2) {
		t.Fatalf("B5 inside the range not reported as secondary")
	}
	if !idx.IsSecondary(6, 1) {
		t.Fatalf("A6 inside the range not reported as secondary")
	}
	if !idx.IsSecondary(6, 3) {
		t.Fatalf("C6 inside the range not reported as secondary")
	}
	if idx.IsSecondary(4, 1) || idx.IsSecondary(7, 3) || idx.IsSecondary(5, 4) {
		t.Fatalf("cells outside the range reported as secondary")
	}
}

func TestMergeIndexEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := parser.NewMergeIndex(f, "Sheet1")
	if err != nil {
		t.Fatalf("NewMergeIndex failed: %v", err)
	}
	if idx.IsSecondary(1, 1) {
		t.Fatalf("unmerged sheet reported a secondary cell")
	}
}
