package analysis

import (
	"strings"

	"github.com/musedata/tracklab/internal/core/domain"
)

// ColumnProfile reports the missing-value situation of one column.
type ColumnProfile struct {
	Name       string
	Missing    int
	MissingPct float64
}

// TableProfile is a data-quality snapshot of one dataset: missing values per
// column, duplicate full rows, and duplicate identifiers. Duplicate ids are
// counted, not rejected — upstream data does not guarantee uniqueness.
type TableProfile struct {
	Rows          int
	Columns       int
	ColumnMissing []ColumnProfile
	DuplicateRows int
	DuplicateIDs  int
}

// BuildProfile profiles a table. idColumn names the identifier column to
// check for duplicates; pass "" to skip that count.
func BuildProfile(t *domain.Table, idColumn string) TableProfile {
	p := TableProfile{
		Rows:    t.Len(),
		Columns: len(t.Header),
	}

	for ci, name := range t.Header {
		missing := 0
		for _, row := range t.Rows {
			if strings.TrimSpace(row[ci]) == "" {
				missing++
			}
		}
		cp := ColumnProfile{Name: name, Missing: missing}
		if p.Rows > 0 {
			cp.MissingPct = float64(missing) / float64(p.Rows) * 100
		}
		p.ColumnMissing = append(p.ColumnMissing, cp)
	}

	seenRows := make(map[string]bool, t.Len())
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if seenRows[key] {
			p.DuplicateRows++
		}
		seenRows[key] = true
	}

	if idColumn != "" {
		if _, ok := t.ColumnIndex(idColumn); ok {
			seenIDs := make(map[string]bool, t.Len())
			for i := 0; i < t.Len(); i++ {
				id := t.Get(i, idColumn)
				if seenIDs[id] {
					p.DuplicateIDs++
				}
				seenIDs[id] = true
			}
		}
	}

	return p
}
