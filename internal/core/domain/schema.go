package domain

// ColumnType declares the semantic type of a dataset column. Types are
// declared up front rather than sniffed from cell contents at runtime.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeFloat
	TypeDate
)

// Column is one declared column of a dataset schema.
type Column struct {
	Name     string
	Type     ColumnType
	Required bool
}

// Schema names the columns of a dataset and their semantic types.
// CheckSchema on a loaded table verifies every required column is present.
type Schema struct {
	Name    string
	Columns []Column
}

// Numeric returns the names of all int and float columns, in declared order.
func (s Schema) Numeric() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Type == TypeInt || c.Type == TypeFloat {
			names = append(names, c.Name)
		}
	}
	return names
}

// Required returns the names of all required columns.
func (s Schema) Required() []string {
	var names []string
	for _, c := range s.Columns {
		if c.Required {
			names = append(names, c.Name)
		}
	}
	return names
}

// Tracks dataset column names used across the pipeline.
const (
	ColTrackID          = "id"
	ColArtistID         = "id_artist"
	ColTitle            = "title"
	ColNameArtist       = "name_artist"
	ColPrimaryArtist    = "primary_artist"
	ColAlbumReleaseDate = "album_release_date"
	ColPopularity       = "popularity"
	ColYear             = "year"
	ColMonth            = "month"
	ColDay              = "day"
)

// Artists dataset column names.
const (
	ColAuthorID    = "id_author"
	ColGender      = "gender"
	ColBirthDate   = "birth_date"
	ColActiveStart = "active_start"
	ColActiveEnd   = "active_end"
	ColLatitude    = "latitude"
	ColLongitude   = "longitude"
)

// TrackSchema declares the tracks dataset. Track ids are expected unique but
// upstream data does not guarantee it, so uniqueness is never enforced here.
var TrackSchema = Schema{
	Name: "tracks",
	Columns: []Column{
		{Name: ColTrackID, Type: TypeString, Required: true},
		{Name: ColArtistID, Type: TypeString},
		{Name: ColTitle, Type: TypeString, Required: true},
		{Name: ColNameArtist, Type: TypeString},
		{Name: ColPrimaryArtist, Type: TypeString},
		{Name: ColAlbumReleaseDate, Type: TypeDate},
		{Name: ColPopularity, Type: TypeInt},
		{Name: ColYear, Type: TypeInt},
		{Name: ColMonth, Type: TypeInt},
		{Name: ColDay, Type: TypeInt},

		// Linguistic features.
		{Name: "n_tokens", Type: TypeInt},
		{Name: "n_sentences", Type: TypeInt},
		{Name: "tokens_per_sent", Type: TypeFloat},
		{Name: "avg_token_per_clause", Type: TypeFloat},
		{Name: "swear_IT", Type: TypeInt},
		{Name: "swear_EN", Type: TypeInt},

		// Acoustic features.
		{Name: "zcr", Type: TypeFloat},
		{Name: "rolloff", Type: TypeFloat},
		{Name: "flux", Type: TypeFloat},
		{Name: "pitch", Type: TypeFloat},
		{Name: "rms", Type: TypeFloat},
		{Name: "loudness", Type: TypeFloat},
		{Name: "spectral_complexity", Type: TypeFloat},
		{Name: "centroid", Type: TypeFloat},
		{Name: "flatness", Type: TypeFloat},
		{Name: "bpm", Type: TypeFloat},
	},
}

// ArtistSchema declares the artists dataset.
var ArtistSchema = Schema{
	Name: "artists",
	Columns: []Column{
		{Name: ColAuthorID, Type: TypeString, Required: true},
		{Name: ColGender, Type: TypeString},
		{Name: ColBirthDate, Type: TypeDate},
		{Name: "birth_place", Type: TypeString},
		{Name: "nationality", Type: TypeString},
		{Name: "province", Type: TypeString},
		{Name: "region", Type: TypeString},
		{Name: "country", Type: TypeString},
		{Name: ColLatitude, Type: TypeFloat},
		{Name: ColLongitude, Type: TypeFloat},
		{Name: ColActiveStart, Type: TypeDate},
		{Name: ColActiveEnd, Type: TypeDate},
	},
}
