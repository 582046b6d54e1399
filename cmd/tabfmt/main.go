package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tabfmt/internal/config"
	"tabfmt/internal/model"
	"tabfmt/internal/pipeline"
)

var (
	workDir    string
	reportPath string
)

func main() {
	fmt.Println("==========================================")
	fmt.Println("  tabfmt - Tabellenaufbereitung")
	fmt.Println("==========================================")

	root := &cobra.Command{
		Use:           "tabfmt",
		Short:         "Fills styled table layouts from raw statistical extracts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&workDir, "dir", ".",
		"working directory holding the raw extracts, the layout directory, and config.toml")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Fill the layouts for every raw extract in the working directory",
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVar(&reportPath, "report", "", "write the run report as JSON to this path")

	collectCmd := &cobra.Command{
		Use:   "collect",
		Short: "Combine the produced tables into one workbook per period and variant",
		RunE:  runCollect,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config.toml into the working directory",
		RunE:  runInit,
	}

	root.AddCommand(buildCmd, collectCmd, initCmd)

	if err := root.Execute(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig falls back to the defaults when config.toml is unusable, the
// way a clean working directory runs without any setup.
func loadConfig() *config.AppConfig {
	cfg, err := config.LoadConfig(workDir)
	if err != nil {
		slog.Warn("config.toml unusable, falling back to defaults", "error", err)
		return config.DefaultConfig()
	}
	return cfg
}

func progressPrinter() pipeline.ProgressFunc {
	return func(ev pipeline.ProgressEvent) {
		switch ev.Type {
		case "error":
			slog.Error(ev.Message)
		case "warning":
			slog.Warn(ev.Message)
		default:
			slog.Info(ev.Message)
		}
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if _, err := config.EnsureOutputDir(workDir, cfg); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	report, err := pipeline.NewCoordinator(cfg, progressPrinter()).Run(workDir)
	if err != nil {
		return err
	}
	printSummary(report)

	if reportPath != "" {
		if err := writeReport(reportPath, report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		slog.Info("report written", "path", reportPath)
	}
	fmt.Println("Fertig.")
	return nil
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	report, err := pipeline.NewCoordinator(cfg, progressPrinter()).Collect(workDir)
	if err != nil {
		return err
	}
	printSummary(report)
	fmt.Println("Fertig.")
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := config.SaveConfig(workDir, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println("config.toml geschrieben.")
	return nil
}

func printSummary(report *model.RunReport) {
	fmt.Printf("\nErgebnis: %d gefüllt, %d übersprungen, %d Fehler (%.2fs)\n",
		report.Filled, report.Skipped, report.Errors, report.Duration.Seconds())
}

func writeReport(path string, report *model.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
