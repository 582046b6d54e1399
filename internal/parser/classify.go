package parser

import (
	"strconv"
	"strings"
)

// groupSeparators are the thousands separators tolerated inside numeric
// text: dot, plain space, and non-breaking space.
var groupSeparators = []string{".", " ", " "}

// Classifier decides whether raw cell content counts as table data. The
// region scans use it to tell the data body apart from header and footnote
// text.
type Classifier struct {
	placeholders []string
	emptyIsData  bool
}

// NewClassifier builds a classifier. placeholders are the textual stand-ins
// the office prints for suppressed or absent values, typically "-" and "X";
// they count as data because they occupy data cells.
func NewClassifier(placeholders []string) Classifier {
	return Classifier{placeholders: placeholders}
}

// WithEmptyAsData returns a copy that also accepts empty cells as data, for
// call sites probing sparse columns.
func (c Classifier) WithEmptyAsData() Classifier {
	c.emptyIsData = true
	return c
}

// IsDataLike reports whether the trimmed cell content belongs to the data
// region: any parseable number, a configured placeholder, or digit text
// with grouping separators. Text with a decimal comma does not qualify;
// the extracts store true decimals in machine form.
func (c Classifier) IsDataLike(value string) bool {
	s := strings.TrimSpace(value)
	if s == "" {
		return c.emptyIsData
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	for _, p := range c.placeholders {
		if s == p {
			return true
		}
	}
	return isGroupedDigits(s)
}

// isGroupedDigits accepts digit runs broken by grouping separators, such as
// "1.234.567" or "1 234 567".
func isGroupedDigits(s string) bool {
	for _, sep := range groupSeparators {
		s = strings.ReplaceAll(s, sep, "")
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
