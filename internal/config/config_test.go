package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"tabfmt/internal/config"
	"tabfmt/internal/model"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	wantNumbers := []int{1, 2, 3, 5}
	if len(cfg.Tables) != len(wantNumbers) {
		t.Fatalf("table count=%d, want %d", len(cfg.Tables), len(wantNumbers))
	}
	for i, n := range wantNumbers {
		if cfg.Tables[i].Number != n {
			t.Fatalf("tables[%d].Number=%d, want %d", i, cfg.Tables[i].Number, n)
		}
	}

	tab5, ok := cfg.TableByNumber(5)
	if !ok {
		t.Fatalf("TableByNumber(5) not found")
	}
	if tab5.Mode != config.ModeBlocks {
		t.Fatalf("table 5 mode=%q, want %q", tab5.Mode, config.ModeBlocks)
	}
	if _, err := tab5.CompiledBlockPattern(); err != nil {
		t.Fatalf("CompiledBlockPattern failed: %v", err)
	}
	if _, ok := cfg.TableByNumber(4); ok {
		t.Fatalf("TableByNumber(4) found, want absent")
	}
}

func TestLoadConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Paths.LayoutDir != "Layouts" {
		t.Fatalf("LayoutDir=%q, want default %q", cfg.Paths.LayoutDir, "Layouts")
	}
	if cfg.Footer.AsOfMarker != "Stand:" {
		t.Fatalf("AsOfMarker=%q, want default %q", cfg.Footer.AsOfMarker, "Stand:")
	}
}

func TestLoadConfig_PartialOverrideKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "[paths]\nlayout_dir = \"Vorlagen\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Paths.LayoutDir != "Vorlagen" {
		t.Fatalf("LayoutDir=%q, want override %q", cfg.Paths.LayoutDir, "Vorlagen")
	}
	if cfg.Paths.OutputDir != "Ausgabedateien" {
		t.Fatalf("OutputDir=%q, want default kept", cfg.Paths.OutputDir)
	}
	if len(cfg.Tables) != 4 {
		t.Fatalf("table count=%d, want default tables kept", len(cfg.Tables))
	}
}

func TestLoadConfig_RejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	content := `
[[tables]]
number = 1
raw_sheet = "XML-Tab1-Land"
mode = "diagonal"
copy_from_column = 2
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.LoadConfig(dir); err == nil {
		t.Fatalf("LoadConfig accepted unknown mode")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Paths.OutputDir = "Fertig"

	if err := config.SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Paths.OutputDir != "Fertig" {
		t.Fatalf("OutputDir=%q, want %q", loaded.Paths.OutputDir, "Fertig")
	}
	if len(loaded.Tables) != len(cfg.Tables) {
		t.Fatalf("table count=%d, want %d", len(loaded.Tables), len(cfg.Tables))
	}
}

func TestColumnMapping(t *testing.T) {
	tab := config.TableConfig{ColumnMap: [][]int{{4, 2}, {5, 3}}}
	m, err := tab.ColumnMapping()
	if err != nil {
		t.Fatalf("ColumnMapping failed: %v", err)
	}
	if got := m.Source(2); got != 4 {
		t.Fatalf("Source(2)=%d, want 4", got)
	}
	if got := m.Source(3); got != 5 {
		t.Fatalf("Source(3)=%d, want 5", got)
	}
	if got := m.Source(9); got != 9 {
		t.Fatalf("Source(9)=%d, want identity for unmapped columns", got)
	}

	var none model.ColumnMap
	if got := none.Source(7); got != 7 {
		t.Fatalf("nil map Source(7)=%d, want 7", got)
	}

	bad := config.TableConfig{ColumnMap: [][]int{{4}}}
	if _, err := bad.ColumnMapping(); err == nil {
		t.Fatalf("ColumnMapping accepted a one-element pair")
	}
}

func TestEnsureOutputDir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()

	out, err := config.EnsureOutputDir(dir, cfg)
	if err != nil {
		t.Fatalf("EnsureOutputDir failed: %v", err)
	}
	if out != filepath.Join(dir, "Ausgabedateien") {
		t.Fatalf("out=%q, want %q", out, filepath.Join(dir, "Ausgabedateien"))
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("output path is not a directory")
	}
}
