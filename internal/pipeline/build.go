package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"tabfmt/internal/config"
	"tabfmt/internal/exporter"
	"tabfmt/internal/model"
	"tabfmt/internal/parser"
)

// internalHeaderText goes into cell A1 of every internal variant.
const internalHeaderText = "NUR FÜR DEN INTERNEN DIENSTGEBRAUCH"

// rawMeta is what the raw extract contributes beyond its data rows.
type rawMeta struct {
	monthLabel string
	asOfStamp  string
}

// buildFile produces both variants of one raw extract. Each variant is
// isolated; its failure is recorded and the other one still proceeds.
func (c *Coordinator) buildFile(dir, outDir string, raw RawFile, tcfg config.TableConfig) []model.FileResult {
	started := time.Now()

	fail := func(msg string) []model.FileResult {
		results := make([]model.FileResult, 0, 2)
		for _, v := range model.Variants() {
			results = append(results, model.FileResult{
				File:     raw.Name,
				Table:    raw.Table,
				Variant:  v,
				Status:   model.StatusError,
				Message:  msg,
				Duration: time.Since(started),
			})
		}
		return results
	}

	rawWB, err := excelize.OpenFile(raw.Path)
	if err != nil {
		return fail(fmt.Sprintf("open raw workbook: %v", err))
	}
	defer rawWB.Close()

	if idx, err := rawWB.GetSheetIndex(tcfg.RawSheet); err != nil || idx < 0 {
		return fail(fmt.Sprintf("raw sheet %q missing", tcfg.RawSheet))
	}

	meta, err := c.extractMeta(rawWB, tcfg.RawSheet)
	if err != nil {
		return fail(err.Error())
	}

	results := make([]model.FileResult, 0, 2)
	for _, v := range model.Variants() {
		vStarted := time.Now()
		res := c.buildVariant(dir, outDir, raw, tcfg, rawWB, meta, v)
		res.Duration = time.Since(vStarted)
		results = append(results, res)
	}
	return results
}

func (c *Coordinator) extractMeta(wb *excelize.File, sheet string) (rawMeta, error) {
	month, err := parser.ExtractMonthLabel(wb, sheet)
	if err != nil {
		return rawMeta{}, fmt.Errorf("extract month label: %w", err)
	}
	stamp, err := parser.ExtractAsOfStamp(wb, sheet, c.cfg.Footer.AsOfMarker)
	if err != nil {
		return rawMeta{}, fmt.Errorf("extract as-of stamp: %w", err)
	}
	return rawMeta{monthLabel: month, asOfStamp: stamp}, nil
}

func (c *Coordinator) buildVariant(dir, outDir string, raw RawFile, tcfg config.TableConfig, rawWB *excelize.File, meta rawMeta, v model.Variant) model.FileResult {
	res := model.FileResult{File: raw.Name, Table: raw.Table, Variant: v}

	layoutPath := filepath.Join(dir, c.cfg.Paths.LayoutDir, tcfg.LayoutFile(v))
	tpl, err := exporter.OpenTemplate(layoutPath)
	if err != nil {
		// a missing layout downgrades to a skip, everything else fails
		// the variant
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = model.StatusSkipped
			res.Message = fmt.Sprintf("layout %s not found", tcfg.LayoutFile(v))
			return res
		}
		res.Status = model.StatusError
		res.Message = err.Error()
		return res
	}
	defer tpl.Close()

	if err := c.fillTemplate(rawWB, tpl, tcfg, meta, v); err != nil {
		res.Status = model.StatusError
		res.Message = err.Error()
		return res
	}

	outPath := filepath.Join(outDir, raw.OutputName(v))
	if err := tpl.SaveAs(outPath); err != nil {
		res.Status = model.StatusError
		res.Message = fmt.Sprintf("save output: %v", err)
		return res
	}
	res.Status = model.StatusFilled
	res.Output = outPath
	return res
}

// fillTemplate runs the fill, label, footer, and number format steps on the
// loaded layout. Which sheets get the follow-up steps depends on the mode:
// single-sheet modes touch the first sheet, block mode every sheet that
// received a block.
func (c *Coordinator) fillTemplate(rawWB, tpl *excelize.File, tcfg config.TableConfig, meta rawMeta, v model.Variant) error {
	sheets := tpl.GetSheetList()
	if len(sheets) == 0 {
		return errors.New("layout has no sheets")
	}

	columns, err := tcfg.ColumnMapping()
	if err != nil {
		return err
	}
	detector := parser.Detector{
		Classifier:     parser.NewClassifier(c.cfg.Format.Placeholders),
		FootnoteMarker: c.cfg.Format.FootnoteMarker,
	}

	var touched []string
	switch tcfg.Mode {
	case config.ModeFull:
		dest := sheets[0]
		fl, err := exporter.NewFiller(tpl, dest, columns)
		if err != nil {
			return err
		}
		if err := fl.FillSheet(rawWB, tcfg.RawSheet, tpl, dest, tcfg.CopyFromColumn); err != nil {
			return err
		}
		touched = []string{dest}

	case config.ModeWindow:
		dest := sheets[0]
		rawWin, err := detector.DetectWindow(rawWB, tcfg.RawSheet, tcfg.ProbeColumn)
		if err != nil {
			return err
		}
		destWin, err := detector.DetectWindow(tpl, dest, tcfg.ProbeColumn)
		if err != nil {
			return err
		}
		fl, err := exporter.NewFiller(tpl, dest, columns)
		if err != nil {
			return err
		}
		if err := fl.FillWindow(rawWB, tcfg.RawSheet, tpl, dest, rawWin, destWin, tcfg.CopyFromColumn); err != nil {
			return err
		}
		touched = []string{dest}

	case config.ModeBlocks:
		pattern, err := tcfg.CompiledBlockPattern()
		if err != nil {
			return err
		}
		blocks, err := parser.SplitBlocks(rawWB, tcfg.RawSheet, tcfg.BlockLabelColumn, pattern, tcfg.BlockTrimColumns)
		if err != nil {
			return err
		}
		// blocks beyond the layout's sheet count are dropped; layout
		// sheets beyond the block count stay as they are
		for i, block := range blocks {
			if i >= len(sheets) {
				break
			}
			dest := sheets[i]
			destWin, err := detector.DetectWindow(tpl, dest, tcfg.ProbeColumn)
			if err != nil {
				return err
			}
			fl, err := exporter.NewFiller(tpl, dest, columns)
			if err != nil {
				return err
			}
			if err := fl.FillWindow(rawWB, tcfg.RawSheet, tpl, dest, block.Window(), destWin, tcfg.CopyFromColumn); err != nil {
				return err
			}
			touched = append(touched, dest)
		}

	default:
		return fmt.Errorf("unknown mode %q for table %d", tcfg.Mode, tcfg.Number)
	}

	footer := exporter.FooterUpdater{
		CopyrightHolder: c.cfg.Footer.CopyrightHolder,
		AsOfMarker:      c.cfg.Footer.AsOfMarker,
	}
	numfmt := exporter.NumberFormatter{Placeholders: c.cfg.Format.Placeholders}

	for _, sheet := range touched {
		if err := exporter.WriteLabel(tpl, sheet, tcfg.MonthCell(v), meta.monthLabel); err != nil {
			return err
		}
		if v == model.VariantInternal {
			if err := exporter.WriteLabel(tpl, sheet, "A1", internalHeaderText); err != nil {
				return err
			}
		}
		if err := footer.Update(tpl, sheet, meta.asOfStamp); err != nil {
			return err
		}
		if err := numfmt.Apply(tpl, sheet, tcfg.SkipFormatColumns); err != nil {
			return err
		}
	}
	return nil
}
