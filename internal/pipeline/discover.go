package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tabfmt/internal/model"
)

// rawFileRe matches raw extract names like "Tabelle-2-Land_2025-12.xlsx".
var rawFileRe = regexp.MustCompile(`^Tabelle-(\d+)-Land_(.+)\.xlsx$`)

// RawFile is one discovered raw extract.
type RawFile struct {
	Path   string
	Name   string
	Table  int
	Period string
}

// OutputName derives the output file name of one variant from the raw name.
func (r RawFile) OutputName(v model.Variant) string {
	return strings.TrimSuffix(r.Name, ".xlsx") + v.Suffix() + ".xlsx"
}

// FindRawFiles lists the raw extracts in dir, excluding the files a
// previous run produced. The result is sorted by name so runs are
// deterministic.
func FindRawFiles(dir string) ([]RawFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read working directory: %w", err)
	}
	var files []RawFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if isOutputName(name) {
			continue
		}
		m := rawFileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		table, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, RawFile{
			Path:   filepath.Join(dir, name),
			Name:   name,
			Table:  table,
			Period: m[2],
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func isOutputName(name string) bool {
	for _, v := range model.Variants() {
		if strings.HasSuffix(name, v.Suffix()+".xlsx") {
			return true
		}
	}
	return false
}
