package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"tabfmt/internal/config"
	"tabfmt/internal/model"
)

// ProgressEvent is one visible step of a run. Type is one of start,
// file_start, file_done, info, warning, error, done.
type ProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ProgressFunc receives progress events synchronously, in run order. A nil
// func drops them.
type ProgressFunc func(ProgressEvent)

// Coordinator drives batch runs over one working directory.
type Coordinator struct {
	cfg      *config.AppConfig
	progress ProgressFunc
}

// NewCoordinator builds a coordinator from a validated configuration.
func NewCoordinator(cfg *config.AppConfig, progress ProgressFunc) *Coordinator {
	return &Coordinator{cfg: cfg, progress: progress}
}

func (c *Coordinator) emit(eventType, message string, data interface{}) {
	if c.progress == nil {
		return
	}
	c.progress(ProgressEvent{
		Type:      eventType,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Run discovers the raw extracts under dir and builds both variants of each
// one. A single file's failure is recorded in the report and never stops
// the others; only discovery itself can abort the run.
func (c *Coordinator) Run(dir string) (*model.RunReport, error) {
	report := &model.RunReport{RunID: uuid.New().String(), StartedAt: time.Now()}
	c.emit("start", "scanning for raw extracts", map[string]string{"dir": dir})

	files, err := FindRawFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		c.emit("info", "no raw extracts found (Tabelle-*-Land_*.xlsx)", nil)
	}

	outDir := filepath.Join(dir, c.cfg.Paths.OutputDir)
	for _, raw := range files {
		tcfg, ok := c.cfg.TableByNumber(raw.Table)
		if !ok {
			res := model.FileResult{
				File:    raw.Name,
				Table:   raw.Table,
				Status:  model.StatusSkipped,
				Message: fmt.Sprintf("no configuration for table %d", raw.Table),
			}
			report.Add(res)
			c.emit("warning", fmt.Sprintf("%s: %s", raw.Name, res.Message), nil)
			continue
		}

		c.emit("file_start", fmt.Sprintf("processing %s (table %d)", raw.Name, raw.Table),
			map[string]interface{}{"file": raw.Name, "table": raw.Table})
		for _, res := range c.buildFile(dir, outDir, raw, tcfg) {
			report.Add(res)
			switch res.Status {
			case model.StatusError:
				c.emit("error", fmt.Sprintf("%s [%s]: %s", raw.Name, res.Variant, res.Message), nil)
			case model.StatusSkipped:
				c.emit("warning", fmt.Sprintf("%s [%s]: %s", raw.Name, res.Variant, res.Message), nil)
			default:
				c.emit("file_done", fmt.Sprintf("%s [%s] -> %s", raw.Name, res.Variant, res.Output), nil)
			}
		}
	}

	report.Duration = time.Since(report.StartedAt)
	c.emit("done", "done", report)
	return report, nil
}
