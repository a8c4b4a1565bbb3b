// Command tracklab prepares the music-catalog research datasets: enrichment
// against the external catalog API, artist supplement merging, feature
// engineering, and correlation/profile reports over the delimited files.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/musedata/tracklab/internal/adapters/csvtable"
	"github.com/musedata/tracklab/internal/adapters/spotify"
	"github.com/musedata/tracklab/internal/analysis"
	"github.com/musedata/tracklab/internal/config"
	"github.com/musedata/tracklab/internal/core/domain"
	"github.com/musedata/tracklab/internal/core/services"
	"github.com/musedata/tracklab/internal/features"
)

const usage = `usage: tracklab <command> [flags]

commands:
  enrich     look up tracks in the external catalog and write the enriched tracks file
  artists    overlay the curated supplement onto the artists file
  features   derive engineered feature columns from the enriched tracks file
  correlate  report strongly correlated numeric columns
  profile    report missing values and duplicates per dataset
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger, err := buildLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	switch os.Args[1] {
	case "enrich":
		err = runEnrich(cfg, logger, os.Args[2:])
	case "artists":
		err = runArtists(cfg, logger, os.Args[2:])
	case "features":
		err = runFeatures(cfg, logger, os.Args[2:])
	case "correlate":
		err = runCorrelate(cfg, logger, os.Args[2:])
	case "profile":
		err = runProfile(cfg, os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "tracklab: unknown command %q\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	// Per-row skips never reach here; only configuration, auth and IO
	// failures set the exit status.
	if err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func buildLogger() (*zap.Logger, error) {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return logCfg.Build()
}

func runEnrich(cfg *config.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("enrich", flag.ExitOnError)
	fieldsFlag := fs.String("fields", "popularity", "target field set: popularity or release")
	inPath := fs.String("in", cfg.Datasets.TracksPath, "input tracks file")
	outPath := fs.String("out", filepath.Join(cfg.Datasets.OutputDir, "tracks_enriched.csv"), "output tracks file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fields, err := domain.ParseFieldSet(*fieldsFlag)
	if err != nil {
		return err
	}
	if err := cfg.ValidateSpotify(); err != nil {
		return err
	}

	table, err := csvtable.Read(*inPath, csvtable.CommaDelimiter)
	if err != nil {
		return err
	}
	if err := table.CheckSchema(domain.TrackSchema); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.Spotify.RequestTimeout}
	tokens := spotify.NewTokenProvider(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.TokenURL, httpClient, logger)
	client := spotify.NewClient(httpClient, cfg.Spotify.APIBaseURL, logger)
	retrier := services.NewRetryController(tokens, services.RetryPolicy{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: cfg.Retry.InitialDelay,
		CallDelay:    cfg.Retry.CallDelay,
	}, logger)
	enricher := services.NewEnricher(client, tokens, retrier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := enricher.Run(ctx, table, fields)
	if err != nil {
		return err
	}

	if err := writeTable(*outPath, table, csvtable.CommaDelimiter); err != nil {
		return err
	}

	fmt.Printf("run %s: %d rows in, %d matched, %d missed, %d skipped blank -> %s\n",
		summary.RunID, summary.Rows, summary.Matched, summary.Missed, summary.SkippedBlank, *outPath)
	return nil
}

func runArtists(cfg *config.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("artists", flag.ExitOnError)
	inPath := fs.String("in", cfg.Datasets.ArtistsPath, "input artists file (';' delimited)")
	suppPath := fs.String("supplement", cfg.Datasets.SupplementPath, "curated missing-values file keyed by id_author")
	outPath := fs.String("out", filepath.Join(cfg.Datasets.OutputDir, "artists.csv"), "output artists file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *suppPath == "" {
		return fmt.Errorf("artists: a supplement file is required (-supplement or DATASET_SUPPLEMENT)")
	}

	artists, err := csvtable.Read(*inPath, csvtable.SemicolonDelimiter)
	if err != nil {
		return err
	}
	if err := artists.CheckSchema(domain.ArtistSchema); err != nil {
		return err
	}
	supplement, err := csvtable.Read(*suppPath, csvtable.SemicolonDelimiter)
	if err != nil {
		return err
	}

	updated, err := services.MergeSupplement(artists, supplement, logger)
	if err != nil {
		return err
	}

	if err := writeTable(*outPath, artists, csvtable.SemicolonDelimiter); err != nil {
		return err
	}

	fmt.Printf("%d artist rows in, %d updated from supplement -> %s\n", artists.Len(), updated, *outPath)
	return nil
}

func runFeatures(cfg *config.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("features", flag.ExitOnError)
	inPath := fs.String("in", filepath.Join(cfg.Datasets.OutputDir, "tracks_enriched.csv"), "enriched tracks file")
	outPath := fs.String("out", filepath.Join(cfg.Datasets.OutputDir, "tracks_features_enriched.csv"), "feature-engineered output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := csvtable.Read(*inPath, csvtable.CommaDelimiter)
	if err != nil {
		return err
	}
	if err := table.CheckSchema(domain.TrackSchema); err != nil {
		return err
	}

	if err := features.Build(table); err != nil {
		return err
	}
	logger.Info("feature columns derived", zap.Int("rows", table.Len()), zap.Int("transforms", len(features.Pipeline)))

	if err := writeTable(*outPath, table, csvtable.CommaDelimiter); err != nil {
		return err
	}

	fmt.Printf("%d rows in, %d rows out -> %s\n", table.Len(), table.Len(), *outPath)
	return nil
}

func runCorrelate(cfg *config.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("correlate", flag.ExitOnError)
	tracksPath := fs.String("tracks", filepath.Join(cfg.Datasets.OutputDir, "tracks_enriched.csv"), "enriched tracks file")
	artistsPath := fs.String("artists", "", "optional enriched artists file (';' delimited)")
	threshold := fs.Float64("threshold", 0.30, "absolute correlation worth reporting")
	matrixPath := fs.String("matrix", "", "optional path to save the correlation matrix as CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tracks, err := csvtable.Read(*tracksPath, csvtable.CommaDelimiter)
	if err != nil {
		return err
	}
	view := analysis.BuildNumericView(tracks, domain.TrackSchema)
	reportCorrelations("tracks", view, *threshold)

	if *artistsPath != "" {
		artists, err := csvtable.Read(*artistsPath, csvtable.SemicolonDelimiter)
		if err != nil {
			return err
		}
		prepared := analysis.PrepareArtists(artists)
		artistView := analysis.BuildNumericView(prepared, domain.ArtistSchema,
			analysis.ColActiveStartYear, analysis.ColGenderNumeric)
		reportCorrelations("artists", artistView, *threshold)
	}

	if *matrixPath != "" {
		if err := writeMatrix(*matrixPath, view); err != nil {
			return err
		}
		logger.Info("correlation matrix saved", zap.String("path", *matrixPath))
	}
	return nil
}

func reportCorrelations(name string, view *analysis.NumericView, threshold float64) {
	matrix := analysis.Correlate(view)
	pairs := analysis.HighPairs(view, matrix, threshold)

	fmt.Printf("%s: column pairs with |r| > %.2f:\n", name, threshold)
	if len(pairs) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, p := range pairs {
		fmt.Printf("  %s, %s = %.2f\n", p.A, p.B, p.R)
	}
}

func writeMatrix(path string, view *analysis.NumericView) error {
	matrix := analysis.Correlate(view)

	header := append([]string{""}, view.Columns...)
	rows := make([][]string, len(view.Columns))
	for i, name := range view.Columns {
		row := make([]string, 0, len(header))
		row = append(row, name)
		for j := range view.Columns {
			if math.IsNaN(matrix[i][j]) {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(matrix[i][j], 'f', 4, 64))
		}
		rows[i] = row
	}
	return writeTable(path, domain.NewTable(header, rows), csvtable.CommaDelimiter)
}

func runProfile(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	tracksPath := fs.String("tracks", cfg.Datasets.TracksPath, "tracks file")
	artistsPath := fs.String("artists", cfg.Datasets.ArtistsPath, "artists file (';' delimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tracks, err := csvtable.Read(*tracksPath, csvtable.CommaDelimiter)
	if err != nil {
		return err
	}
	printProfile("tracks", analysis.BuildProfile(tracks, domain.ColTrackID))

	artists, err := csvtable.Read(*artistsPath, csvtable.SemicolonDelimiter)
	if err != nil {
		return err
	}
	printProfile("artists", analysis.BuildProfile(artists, domain.ColAuthorID))
	return nil
}

func printProfile(name string, p analysis.TableProfile) {
	fmt.Printf("%s: %d rows, %d columns, %d duplicate rows, %d duplicate ids\n",
		name, p.Rows, p.Columns, p.DuplicateRows, p.DuplicateIDs)
	for _, c := range p.ColumnMissing {
		if c.Missing == 0 {
			continue
		}
		fmt.Printf("  %-24s %6d missing (%.1f%%)\n", c.Name, c.Missing, c.MissingPct)
	}
}

func writeTable(path string, table *domain.Table, delimiter rune) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	return csvtable.Write(path, table, delimiter)
}
