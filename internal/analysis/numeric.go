// Package analysis feeds the correlation report: numeric coercion of declared
// columns, pairwise Pearson correlation, and a data-quality profile. Nothing
// in this package mutates a source table; the -1 sentinel for missing values
// exists only inside the views built here and is never persisted.
package analysis

import (
	"strconv"
	"strings"

	"github.com/musedata/tracklab/internal/core/domain"
)

// MissingSentinel replaces unparseable or absent numeric cells inside a view.
const MissingSentinel = -1

// NumericView is a column-major numeric copy of a table, restricted to the
// columns a schema declares as numeric.
type NumericView struct {
	Columns []string
	Data    [][]float64
}

// BuildNumericView coerces the schema's declared numeric columns to floats.
// Columns absent from the table are skipped; cells that do not parse get the
// missing sentinel. The source table is left untouched.
func BuildNumericView(t *domain.Table, s domain.Schema, extraColumns ...string) *NumericView {
	view := &NumericView{}
	for _, name := range append(s.Numeric(), extraColumns...) {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			continue
		}
		col := make([]float64, t.Len())
		for r := 0; r < t.Len(); r++ {
			col[r] = coerce(t.Rows[r][idx])
		}
		view.Columns = append(view.Columns, name)
		view.Data = append(view.Data, col)
	}
	return view
}

func coerce(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MissingSentinel
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return MissingSentinel
	}
	return v
}

// Derived artist columns added by PrepareArtists.
const (
	ColActiveStartYear = "active_start_year"
	ColGenderNumeric   = "gender_numeric"
)

// PrepareArtists returns a copy of the artists table shaped for correlation:
// active_end dropped (always missing upstream), active_start reduced to its
// year, and gender mapped to 0/1. The input table is not modified.
func PrepareArtists(artists *domain.Table) *domain.Table {
	t := artists.Clone()
	t.DropColumn(domain.ColActiveEnd)

	t.EnsureColumns(ColActiveStartYear, ColGenderNumeric)
	for i := 0; i < t.Len(); i++ {
		_ = t.Set(i, ColActiveStartYear, yearOf(t.Get(i, domain.ColActiveStart)))
		_ = t.Set(i, ColGenderNumeric, genderNumeric(t.Get(i, domain.ColGender)))
	}
	return t
}

func yearOf(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return ""
	}
	return date[:4]
}

func genderNumeric(gender string) string {
	switch strings.TrimSpace(gender) {
	case "M":
		return "0"
	case "F":
		return "1"
	default:
		return ""
	}
}
