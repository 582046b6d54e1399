package model

// Variant selects one of the two published forms of every table. The
// external form is the public one; the internal form carries a restriction
// header and may expose columns the public form suppresses.
type Variant string

const (
	VariantExternal Variant = "extern"
	VariantInternal Variant = "intern"
)

// Variants returns both variants in build order, external first.
func Variants() []Variant {
	return []Variant{VariantExternal, VariantInternal}
}

// Suffix returns the file name suffix that marks outputs of this variant.
func (v Variant) Suffix() string {
	if v == VariantInternal {
		return "_INTERN"
	}
	return "_g"
}

// ColumnMap maps destination columns to raw source columns for tables whose
// extract and layout disagree on column order. A nil map or a missing entry
// means the same index on both sides.
type ColumnMap map[int]int

// Source returns the raw column feeding the given destination column.
func (m ColumnMap) Source(destCol int) int {
	if src, ok := m[destCol]; ok {
		return src
	}
	return destCol
}
