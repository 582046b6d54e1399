package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"tabfmt/internal/model"
)

// ConfigFileName sits in the working directory next to the raw extracts.
const ConfigFileName = "config.toml"

// Table fill modes.
const (
	// ModeFull copies the sheets positionally over their full height.
	ModeFull = "full"
	// ModeWindow aligns the detected data windows of extract and layout.
	ModeWindow = "window"
	// ModeBlocks splits the extract into labeled blocks, one per layout
	// sheet.
	ModeBlocks = "blocks"
)

// AppConfig is the full configuration surface. Everything has a default, so
// a missing config.toml still produces a working run.
type AppConfig struct {
	Paths  PathsConfig   `toml:"paths"`
	Footer FooterConfig  `toml:"footer"`
	Format FormatConfig  `toml:"format"`
	Tables []TableConfig `toml:"tables"`
}

// PathsConfig holds the directory names relative to the working directory.
type PathsConfig struct {
	LayoutDir string `toml:"layout_dir"`
	OutputDir string `toml:"output_dir"`
}

// FooterConfig drives the copyright and stamp rewrite.
type FooterConfig struct {
	CopyrightHolder string `toml:"copyright_holder"`
	AsOfMarker      string `toml:"as_of_marker"`
}

// FormatConfig drives value classification and number formatting.
type FormatConfig struct {
	Placeholders   []string `toml:"placeholders"`
	FootnoteMarker string   `toml:"footnote_marker"`
}

// TableConfig describes one table number: where its raw data sits, which
// layouts it fills, and how the copy aligns.
type TableConfig struct {
	Number            int     `toml:"number"`
	RawSheet          string  `toml:"raw_sheet"`
	LayoutExternal    string  `toml:"layout_external"`
	LayoutInternal    string  `toml:"layout_internal"`
	Mode              string  `toml:"mode"`
	ProbeColumn       int     `toml:"probe_column"`
	CopyFromColumn    int     `toml:"copy_from_column"`
	MonthCellExternal string  `toml:"month_cell_external"`
	MonthCellInternal string  `toml:"month_cell_internal"`
	SkipFormatColumns []int   `toml:"number_format_skip_columns"`
	ColumnMap         [][]int `toml:"column_map"`
	BlockLabelColumn  int     `toml:"block_label_column"`
	BlockLabelPattern string  `toml:"block_label_pattern"`
	BlockTrimColumns  int     `toml:"block_trim_columns"`
}

// DefaultConfig returns the built-in setup for the four monthly tables.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Paths: PathsConfig{
			LayoutDir: "Layouts",
			OutputDir: "Ausgabedateien",
		},
		Footer: FooterConfig{
			CopyrightHolder: "Bayerisches Landesamt für Statistik",
			AsOfMarker:      "Stand:",
		},
		Format: FormatConfig{
			Placeholders:   []string{"-", "X"},
			FootnoteMarker: "-",
		},
		Tables: []TableConfig{
			{
				Number:            1,
				RawSheet:          "XML-Tab1-Land",
				LayoutExternal:    "Tabelle-1-Layout_g.xlsx",
				LayoutInternal:    "Tabelle-1-Layout_INTERN.xlsx",
				Mode:              ModeFull,
				ProbeColumn:       2,
				CopyFromColumn:    2,
				MonthCellExternal: "A3",
				MonthCellInternal: "A6",
			},
			{
				Number:            2,
				RawSheet:          "XML-Tab2-Land",
				LayoutExternal:    "Tabelle-2-Layout_g.xlsx",
				LayoutInternal:    "Tabelle-2-Layout_INTERN.xlsx",
				Mode:              ModeWindow,
				ProbeColumn:       2,
				CopyFromColumn:    2,
				MonthCellExternal: "A3",
				MonthCellInternal: "A6",
			},
			{
				Number:            3,
				RawSheet:          "XML-Tab3-Land",
				LayoutExternal:    "Tabelle-3-Layout_g.xlsx",
				LayoutInternal:    "Tabelle-3-Layout_INTERN.xlsx",
				Mode:              ModeWindow,
				ProbeColumn:       2,
				CopyFromColumn:    2,
				MonthCellExternal: "A3",
				MonthCellInternal: "A6",
			},
			{
				Number:            5,
				RawSheet:          "XML-Tab5-Land",
				LayoutExternal:    "Tabelle-5-Layout_g.xlsx",
				LayoutInternal:    "Tabelle-5-Layout_INTERN.xlsx",
				Mode:              ModeBlocks,
				ProbeColumn:       2,
				CopyFromColumn:    2,
				MonthCellExternal: "A3",
				MonthCellInternal: "A6",
				BlockLabelColumn:  1,
				BlockLabelPattern: "^Regierungsbezirk",
				BlockTrimColumns:  10,
			},
		},
	}
}

// LoadConfig reads <dir>/config.toml over the defaults. A missing file
// yields the defaults; a present but broken file is an error. Only keys the
// file sets override their default, except tables, which replace the
// default set wholesale when present.
func LoadConfig(dir string) (*AppConfig, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}
	// array tables append on decode, so the defaults step aside and come
	// back only when the file defines no tables of its own
	defaultTables := cfg.Tables
	cfg.Tables = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = defaultTables
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as <dir>/config.toml.
func SaveConfig(dir string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0o644)
}

// EnsureOutputDir creates the output directory under dir and returns its
// path.
func EnsureOutputDir(dir string, cfg *AppConfig) (string, error) {
	out := filepath.Join(dir, cfg.Paths.OutputDir)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", err
	}
	return out, nil
}

// Validate checks the parts a run relies on. It runs on every load so a
// broken config.toml fails before any workbook is touched.
func (c *AppConfig) Validate() error {
	if c.Paths.LayoutDir == "" {
		return errors.New("paths.layout_dir must not be empty")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must not be empty")
	}
	if c.Footer.CopyrightHolder == "" {
		return errors.New("footer.copyright_holder must not be empty")
	}
	if c.Footer.AsOfMarker == "" {
		return errors.New("footer.as_of_marker must not be empty")
	}
	if c.Format.FootnoteMarker == "" {
		return errors.New("format.footnote_marker must not be empty")
	}

	seen := make(map[int]bool, len(c.Tables))
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Number <= 0 {
			return fmt.Errorf("tables[%d]: number must be positive", i)
		}
		if seen[t.Number] {
			return fmt.Errorf("tables[%d]: duplicate table number %d", i, t.Number)
		}
		seen[t.Number] = true
		if t.RawSheet == "" {
			return fmt.Errorf("table %d: raw_sheet must not be empty", t.Number)
		}
		switch t.Mode {
		case ModeFull:
		case ModeWindow, ModeBlocks:
			if t.ProbeColumn < 1 {
				return fmt.Errorf("table %d: probe_column must be at least 1", t.Number)
			}
		default:
			return fmt.Errorf("table %d: unknown mode %q", t.Number, t.Mode)
		}
		if t.CopyFromColumn < 1 {
			return fmt.Errorf("table %d: copy_from_column must be at least 1", t.Number)
		}
		if t.Mode == ModeBlocks {
			if t.BlockLabelColumn < 1 {
				return fmt.Errorf("table %d: block_label_column must be at least 1", t.Number)
			}
			if t.BlockTrimColumns < 1 {
				return fmt.Errorf("table %d: block_trim_columns must be at least 1", t.Number)
			}
			if t.BlockLabelPattern == "" {
				return fmt.Errorf("table %d: block_label_pattern must not be empty", t.Number)
			}
			if _, err := t.CompiledBlockPattern(); err != nil {
				return fmt.Errorf("table %d: %w", t.Number, err)
			}
		}
		if _, err := t.ColumnMapping(); err != nil {
			return fmt.Errorf("table %d: %w", t.Number, err)
		}
	}
	return nil
}

// TableByNumber returns the configuration of one table number.
func (c *AppConfig) TableByNumber(n int) (TableConfig, bool) {
	for _, t := range c.Tables {
		if t.Number == n {
			return t, true
		}
	}
	return TableConfig{}, false
}

// LayoutFile returns the layout file name of the given variant.
func (t TableConfig) LayoutFile(v model.Variant) string {
	if v == model.VariantInternal {
		return t.LayoutInternal
	}
	return t.LayoutExternal
}

// MonthCell returns the period label cell of the given variant.
func (t TableConfig) MonthCell(v model.Variant) string {
	if v == model.VariantInternal {
		return t.MonthCellInternal
	}
	return t.MonthCellExternal
}

// CompiledBlockPattern compiles the block label pattern.
func (t TableConfig) CompiledBlockPattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(t.BlockLabelPattern)
	if err != nil {
		return nil, fmt.Errorf("block_label_pattern: %w", err)
	}
	return re, nil
}

// ColumnMapping converts the configured (raw, dest) column pairs into the
// destination-keyed map the filler consumes.
func (t TableConfig) ColumnMapping() (model.ColumnMap, error) {
	if len(t.ColumnMap) == 0 {
		return nil, nil
	}
	m := make(model.ColumnMap, len(t.ColumnMap))
	for _, pair := range t.ColumnMap {
		if len(pair) != 2 {
			return nil, fmt.Errorf("column_map entry %v: want [raw, dest]", pair)
		}
		rawCol, destCol := pair[0], pair[1]
		if rawCol < 1 || destCol < 1 {
			return nil, fmt.Errorf("column_map entry %v: columns start at 1", pair)
		}
		m[destCol] = rawCol
	}
	return m, nil
}
