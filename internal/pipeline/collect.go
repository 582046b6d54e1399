package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"tabfmt/internal/exporter"
	"tabfmt/internal/model"
)

// outputFileRe matches produced outputs like "Tabelle-1-Land_2025-12_g.xlsx".
var outputFileRe = regexp.MustCompile(`^Tabelle-(\d+)-Land_(.+?)(_g|_INTERN)\.xlsx$`)

// collectedName is the combined workbook of one period and variant.
func collectedName(period string, v model.Variant) string {
	return "Tabellenband-Land_" + period + v.Suffix() + ".xlsx"
}

type collectSource struct {
	path  string
	table int
}

type collectGroup struct {
	period  string
	variant model.Variant
	sources []collectSource
}

// Collect merges the per-table outputs of every reporting period found in
// the output directory into one combined workbook per period and variant.
// Sheets are ordered by table number and named "Tabelle <n>", with a
// ".<i>" suffix when a table contributes more than one sheet.
func (c *Coordinator) Collect(dir string) (*model.RunReport, error) {
	report := &model.RunReport{RunID: uuid.New().String(), StartedAt: time.Now()}
	outDir := filepath.Join(dir, c.cfg.Paths.OutputDir)
	c.emit("start", "collecting produced tables", map[string]string{"dir": outDir})

	groups, err := findCollectGroups(outDir)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		c.emit("info", "no produced tables found", nil)
	}

	for _, g := range groups {
		started := time.Now()
		name := collectedName(g.period, g.variant)
		res := model.FileResult{File: name, Variant: g.variant}
		if err := buildCollected(filepath.Join(outDir, name), g); err != nil {
			res.Status = model.StatusError
			res.Message = err.Error()
			c.emit("error", fmt.Sprintf("%s: %v", name, err), nil)
		} else {
			res.Status = model.StatusFilled
			res.Output = filepath.Join(outDir, name)
			c.emit("file_done", fmt.Sprintf("%s (%d tables)", name, len(g.sources)), nil)
		}
		res.Duration = time.Since(started)
		report.Add(res)
	}

	report.Duration = time.Since(report.StartedAt)
	c.emit("done", "done", report)
	return report, nil
}

func findCollectGroups(outDir string) ([]collectGroup, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	byKey := make(map[string]*collectGroup)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := outputFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		table, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		variant := model.VariantExternal
		if m[3] == model.VariantInternal.Suffix() {
			variant = model.VariantInternal
		}
		key := m[2] + "|" + string(variant)
		g, ok := byKey[key]
		if !ok {
			g = &collectGroup{period: m[2], variant: variant}
			byKey[key] = g
		}
		g.sources = append(g.sources, collectSource{
			path:  filepath.Join(outDir, e.Name()),
			table: table,
		})
	}

	groups := make([]collectGroup, 0, len(byKey))
	for _, g := range byKey {
		sort.Slice(g.sources, func(i, j int) bool { return g.sources[i].table < g.sources[j].table })
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].period != groups[j].period {
			return groups[i].period < groups[j].period
		}
		return groups[i].variant < groups[j].variant
	})
	return groups, nil
}

func buildCollected(path string, g collectGroup) error {
	combined := excelize.NewFile()
	defer combined.Close()

	for _, src := range g.sources {
		wb, err := excelize.OpenFile(src.path)
		if err != nil {
			return fmt.Errorf("open %s: %w", filepath.Base(src.path), err)
		}
		sheets := wb.GetSheetList()
		for i, sheet := range sheets {
			target := fmt.Sprintf("Tabelle %d", src.table)
			if len(sheets) > 1 {
				target = fmt.Sprintf("Tabelle %d.%d", src.table, i+1)
			}
			if err := exporter.CopySheetInto(combined, target, wb, sheet); err != nil {
				wb.Close()
				return fmt.Errorf("copy sheet %q: %w", sheet, err)
			}
		}
		wb.Close()
	}

	if err := combined.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	combined.SetActiveSheet(0)
	return combined.SaveAs(path)
}
