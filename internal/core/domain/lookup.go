package domain

import "fmt"

// LookupResult carries the fields extracted from the best catalog match for a
// track. It is ephemeral: merged into a table row and then discarded.
type LookupResult struct {
	// ReleaseDateRaw is the release date exactly as the catalog returned it.
	ReleaseDateRaw string
	// ReleaseDate is ReleaseDateRaw parsed at its native granularity.
	ReleaseDate ReleaseDate
	// Popularity is the catalog popularity score (0-100 by convention),
	// nil when the response omitted it.
	Popularity *int
}

// FieldSet selects which enrichment columns a run writes back. The two
// variants target disjoint column sets and read different artist columns.
type FieldSet int

const (
	// FieldsPopularity writes album_release_date and popularity, matching
	// on the primary_artist column.
	FieldsPopularity FieldSet = iota
	// FieldsRelease writes year, month and day, matching on name_artist.
	FieldsRelease
)

// Columns returns the target columns the field set overwrites.
func (f FieldSet) Columns() []string {
	switch f {
	case FieldsRelease:
		return []string{ColYear, ColMonth, ColDay}
	default:
		return []string{ColAlbumReleaseDate, ColPopularity}
	}
}

// ArtistColumn returns the column the field set reads the artist name from.
func (f FieldSet) ArtistColumn() string {
	if f == FieldsRelease {
		return ColNameArtist
	}
	return ColPrimaryArtist
}

func (f FieldSet) String() string {
	if f == FieldsRelease {
		return "release"
	}
	return "popularity"
}

// ParseFieldSet maps the CLI flag value to a FieldSet.
func ParseFieldSet(s string) (FieldSet, error) {
	switch s {
	case "popularity":
		return FieldsPopularity, nil
	case "release":
		return FieldsRelease, nil
	default:
		return 0, fmt.Errorf("domain: unknown field set %q (want popularity or release)", s)
	}
}
