// Package csvtable loads and saves delimited tabular files as domain tables.
// Cells stay raw strings end to end, so columns a run never touches are
// written back byte-identical.
package csvtable

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/musedata/tracklab/internal/core/domain"
)

// Delimiters used by the source datasets.
const (
	CommaDelimiter     = ','
	SemicolonDelimiter = ';'
)

// Read loads a delimited file into a table. The first record is the header.
// Ragged rows are tolerated and padded to the header width.
func Read(path string, delimiter rune) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvtable: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvtable: read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csvtable: %s: empty file, expected a header row", path)
	}

	return domain.NewTable(records[0], records[1:]), nil
}

// Write saves a table to a delimited file: header first, one record per row,
// no synthetic index column. The write is whole-table.
func Write(path string, table *domain.Table, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvtable: create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = delimiter

	if err := w.Write(table.Header); err != nil {
		f.Close()
		return fmt.Errorf("csvtable: write %s: %w", path, err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("csvtable: write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csvtable: flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csvtable: close %s: %w", path, err)
	}
	return nil
}
