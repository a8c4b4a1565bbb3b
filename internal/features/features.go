// Package features derives numeric columns from the enriched tracks table.
// Every transform is pure at the table level: it adds (or recomputes) exactly
// one column and leaves everything else untouched. Undefined arithmetic for a
// row — division by zero, missing operand — yields an empty cell for that row
// only and never aborts the batch.
package features

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/musedata/tracklab/internal/core/domain"
)

// Transform derives one named column from a tracks table.
type Transform struct {
	Name  string
	Apply func(*domain.Table) error
}

// Pipeline is the fixed order the umbrella builder applies. Transforms not
// listed here are still exported and composable individually.
var Pipeline = []Transform{
	{Name: "swear_ratio", Apply: SwearRatio},
	{Name: "syntactic_complexity", Apply: SyntacticComplexity},
	{Name: "energy_index", Apply: EnergyIndex},
	{Name: "timbre_brightness", Apply: TimbreBrightness},
	{Name: "noise_ratio", Apply: NoiseRatio},
	{Name: "rythmic_complexity", Apply: RythmicComplexity},
	{Name: "relative_popularity", Apply: RelativePopularity},
}

// Build applies the pipeline transforms in order.
func Build(table *domain.Table) error {
	for _, tr := range Pipeline {
		if err := tr.Apply(table); err != nil {
			return err
		}
	}
	return nil
}

// SwearRatio derives swear_ratio = (swear_IT + swear_EN) / n_tokens.
func SwearRatio(t *domain.Table) error {
	return derive(t, "swear_ratio", func(r row) float64 {
		return (r.f("swear_IT") + r.f("swear_EN")) / r.f("n_tokens")
	})
}

// SyntacticComplexity derives tokens_per_sent * avg_token_per_clause.
func SyntacticComplexity(t *domain.Table) error {
	return derive(t, "syntactic_complexity", func(r row) float64 {
		return r.f("tokens_per_sent") * r.f("avg_token_per_clause")
	})
}

// TextDensity derives n_tokens / n_sentences.
func TextDensity(t *domain.Table) error {
	return derive(t, "text_density", func(r row) float64 {
		return r.f("n_tokens") / r.f("n_sentences")
	})
}

// Percussivness derives zcr * rolloff.
func Percussivness(t *domain.Table) error {
	return derive(t, "percussivness", func(r row) float64 {
		return r.f("zcr") * r.f("rolloff")
	})
}

// ModulationIndex derives flux / pitch.
func ModulationIndex(t *domain.Table) error {
	return derive(t, "modulation_index", func(r row) float64 {
		return r.f("flux") / r.f("pitch")
	})
}

// EnergyIndex derives (rms + loudness) / 2.
func EnergyIndex(t *domain.Table) error {
	return derive(t, "energy_index", func(r row) float64 {
		return (r.f("rms") + r.f("loudness")) / 2
	})
}

// NormEnergyIndex derives (rms + loudness) / (spectral_complexity * rms).
func NormEnergyIndex(t *domain.Table) error {
	return derive(t, "norm_energy_index", func(r row) float64 {
		return (r.f("rms") + r.f("loudness")) / (r.f("spectral_complexity") * r.f("rms"))
	})
}

// TimbreBrightness derives (centroid + rolloff) / 2.
func TimbreBrightness(t *domain.Table) error {
	return derive(t, "timbre_brightness", func(r row) float64 {
		return (r.f("centroid") + r.f("rolloff")) / 2
	})
}

// NoiseRatio derives zcr * flatness.
func NoiseRatio(t *domain.Table) error {
	return derive(t, "noise_ratio", func(r row) float64 {
		return r.f("zcr") * r.f("flatness")
	})
}

// RythmicComplexity derives bpm * flux.
func RythmicComplexity(t *domain.Table) error {
	return derive(t, "rythmic_complexity", func(r row) float64 {
		return r.f("bpm") * r.f("flux")
	})
}

// RelativePopularity derives popularity / mean(popularity) over all tracks of
// the same id_artist. The mean is computed once per distinct artist across
// the full table.
func RelativePopularity(t *domain.Table) error {
	byArtist := make(map[string][]float64)
	for i := 0; i < t.Len(); i++ {
		pop, ok := cellFloat(t, i, domain.ColPopularity)
		if !ok {
			continue
		}
		id := t.Get(i, domain.ColArtistID)
		byArtist[id] = append(byArtist[id], pop)
	}

	means := make(map[string]float64, len(byArtist))
	for id, pops := range byArtist {
		mean, err := stats.Mean(pops)
		if err != nil {
			continue
		}
		means[id] = mean
	}

	return derive(t, "relative_popularity", func(r row) float64 {
		pop, ok := cellFloat(r.t, r.i, domain.ColPopularity)
		if !ok {
			return math.NaN()
		}
		mean, ok := means[r.t.Get(r.i, domain.ColArtistID)]
		if !ok {
			return math.NaN()
		}
		return pop / mean
	})
}

// row gives a transform formula access to one row's numeric cells.
type row struct {
	t *domain.Table
	i int
}

// f reads a cell as a float. Missing or unparseable cells become NaN so the
// formula's result degrades to an empty output cell instead of raising.
func (r row) f(column string) float64 {
	v, ok := cellFloat(r.t, r.i, column)
	if !ok {
		return math.NaN()
	}
	return v
}

func cellFloat(t *domain.Table, i int, column string) (float64, bool) {
	raw := t.Get(i, column)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// derive fills one column from a per-row formula. NaN and infinite results
// are written as empty cells, the table's representation of a missing value.
func derive(t *domain.Table, name string, formula func(row) float64) error {
	t.EnsureColumns(name)
	for i := 0; i < t.Len(); i++ {
		if err := t.Set(i, name, formatValue(formula(row{t: t, i: i}))); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
