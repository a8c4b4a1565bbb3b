package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/musedata/tracklab/internal/core/domain"
)

// MergeSupplement overlays a manually curated supplement onto the artists
// table. Rows are matched on id_author; every non-empty supplement cell in a
// column both tables share overwrites the corresponding artist cell. The
// artists table keeps its row count, row order and column order. Supplement
// rows for unknown artists are logged and ignored.
//
// Returns the number of artist rows that had at least one cell changed.
func MergeSupplement(artists, supplement *domain.Table, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if _, ok := artists.ColumnIndex(domain.ColAuthorID); !ok {
		return 0, fmt.Errorf("services: artists table: %w: %q", domain.ErrMissingColumn, domain.ColAuthorID)
	}
	if _, ok := supplement.ColumnIndex(domain.ColAuthorID); !ok {
		return 0, fmt.Errorf("services: supplement table: %w: %q", domain.ErrMissingColumn, domain.ColAuthorID)
	}

	// First occurrence wins; duplicate artist ids are tolerated upstream.
	byID := make(map[string]int, artists.Len())
	for row := 0; row < artists.Len(); row++ {
		id := artists.Get(row, domain.ColAuthorID)
		if _, seen := byID[id]; !seen {
			byID[id] = row
		}
	}

	shared := sharedColumns(artists, supplement)

	updated := 0
	for srow := 0; srow < supplement.Len(); srow++ {
		id := supplement.Get(srow, domain.ColAuthorID)
		arow, ok := byID[id]
		if !ok {
			log.Warn("supplement row for unknown artist", zap.String("id_author", id))
			continue
		}

		changed := false
		for _, col := range shared {
			value := supplement.Get(srow, col)
			if value == "" || value == artists.Get(arow, col) {
				continue
			}
			if err := artists.Set(arow, col, value); err != nil {
				return updated, err
			}
			changed = true
		}
		if changed {
			updated++
		}
	}

	return updated, nil
}

func sharedColumns(artists, supplement *domain.Table) []string {
	var shared []string
	for _, name := range supplement.Header {
		if name == domain.ColAuthorID {
			continue
		}
		if _, ok := artists.ColumnIndex(name); ok {
			shared = append(shared, name)
		}
	}
	return shared
}
