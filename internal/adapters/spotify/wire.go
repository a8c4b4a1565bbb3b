package spotify

import "github.com/musedata/tracklab/internal/core/domain"

// searchResponse mirrors the /search payload shape, trimmed to the fields the
// enrichment passes extract.
type searchResponse struct {
	Tracks struct {
		Items []wireTrack `json:"items"`
	} `json:"tracks"`
}

type wireTrack struct {
	Name  string `json:"name"`
	Album struct {
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
	// Popularity is a pointer so an omitted field is distinguishable from 0.
	Popularity *int `json:"popularity"`
}

// toResult maps a wire track to the domain result. Returns nil when the item
// carries none of the fields any enrichment pass could use, which callers
// treat the same as "no match".
func (w wireTrack) toResult() *domain.LookupResult {
	rd, ok := domain.ParseReleaseDate(w.Album.ReleaseDate)
	if !ok && w.Popularity == nil {
		return nil
	}

	res := &domain.LookupResult{
		ReleaseDateRaw: w.Album.ReleaseDate,
		Popularity:     w.Popularity,
	}
	if ok {
		res.ReleaseDate = rd
	}
	return res
}
