package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musedata/tracklab/internal/core/domain"
)

func trackRows(header []string, rows ...[]string) *domain.Table {
	return domain.NewTable(header, rows)
}

func TestSwearRatio(t *testing.T) {
	table := trackRows(
		[]string{"id", "swear_IT", "swear_EN", "n_tokens"},
		[]string{"t1", "3", "1", "100"},
		[]string{"t2", "3", "1", "0"},
		[]string{"t3", "", "1", "100"},
	)

	require.NoError(t, SwearRatio(table))

	assert.Equal(t, "0.04", table.Get(0, "swear_ratio"))
	assert.Equal(t, "", table.Get(1, "swear_ratio"), "n_tokens=0 yields a missing value, not a panic")
	assert.Equal(t, "", table.Get(2, "swear_ratio"), "missing operand propagates as missing")
}

func TestRelativePopularity(t *testing.T) {
	table := trackRows(
		[]string{"id", "id_artist", "popularity"},
		[]string{"t1", "a1", "40"},
		[]string{"t2", "a1", "60"},
		[]string{"t3", "a2", "80"},
		[]string{"t4", "a3", ""},
	)

	require.NoError(t, RelativePopularity(table))

	// Artist a1 mean is 50.
	assert.Equal(t, "0.8", table.Get(0, "relative_popularity"))
	assert.Equal(t, "1.2", table.Get(1, "relative_popularity"))
	// Single-track artist is exactly average.
	assert.Equal(t, "1", table.Get(2, "relative_popularity"))
	// No popularity, no ratio.
	assert.Equal(t, "", table.Get(3, "relative_popularity"))
}

func TestModulationIndexZeroPitch(t *testing.T) {
	table := trackRows(
		[]string{"id", "flux", "pitch"},
		[]string{"t1", "2.5", "0"},
		[]string{"t2", "2.5", "5"},
	)

	require.NoError(t, ModulationIndex(table))

	assert.Equal(t, "", table.Get(0, "modulation_index"))
	assert.Equal(t, "0.5", table.Get(1, "modulation_index"))
}

func TestNormEnergyIndexZeroDenominator(t *testing.T) {
	table := trackRows(
		[]string{"id", "rms", "loudness", "spectral_complexity"},
		[]string{"t1", "0", "3", "7"},
		[]string{"t2", "2", "4", "3"},
	)

	require.NoError(t, NormEnergyIndex(table))

	assert.Equal(t, "", table.Get(0, "norm_energy_index"))
	assert.Equal(t, "1", table.Get(1, "norm_energy_index"))
}

func TestBuildAppliesPipelineOrder(t *testing.T) {
	table := trackRows(
		[]string{
			"id", "id_artist", "title",
			"swear_IT", "swear_EN", "n_tokens",
			"tokens_per_sent", "avg_token_per_clause",
			"rms", "loudness", "centroid", "rolloff",
			"zcr", "flatness", "bpm", "flux", "popularity",
		},
		[]string{
			"t1", "a1", "Song",
			"2", "0", "50",
			"10", "2",
			"0.5", "-6", "1500", "3000",
			"0.1", "0.4", "120", "1.5", "40",
		},
	)
	before := len(table.Header)

	require.NoError(t, Build(table))

	wantOrder := []string{
		"swear_ratio", "syntactic_complexity", "energy_index",
		"timbre_brightness", "noise_ratio", "rythmic_complexity",
		"relative_popularity",
	}
	assert.Equal(t, wantOrder, table.Header[before:], "umbrella builder appends in its fixed order")

	assert.Equal(t, "0.04", table.Get(0, "swear_ratio"))
	assert.Equal(t, "20", table.Get(0, "syntactic_complexity"))
	assert.Equal(t, "-2.75", table.Get(0, "energy_index"))
	assert.Equal(t, "2250", table.Get(0, "timbre_brightness"))
	assert.Equal(t, "180", table.Get(0, "rythmic_complexity"))
	assert.Equal(t, "1", table.Get(0, "relative_popularity"))
}

func TestTransformsTouchOnlyTheirColumn(t *testing.T) {
	table := trackRows(
		[]string{"id", "zcr", "rolloff", "lyrics"},
		[]string{"t1", "0.2", "4000", "raw , text ; kept"},
	)
	before := table.Clone()

	require.NoError(t, Percussivness(table))

	assert.Equal(t, "800", table.Get(0, "percussivness"))
	for _, col := range before.Header {
		assert.Equal(t, before.Get(0, col), table.Get(0, col), "column %s drifted", col)
	}
}
