package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/musedata/tracklab/internal/core/domain"
	"github.com/musedata/tracklab/internal/core/ports"
)

// progressEvery is how many rows pass between progress log lines.
const progressEvery = 100

// Summary reports the outcome of one enrichment run.
type Summary struct {
	RunID        string
	Fields       domain.FieldSet
	Rows         int
	Matched      int
	Missed       int
	SkippedBlank int
}

// Enricher walks a tracks table row by row, looks each row up in the external
// catalog and writes the returned fields back into that exact row. Processing
// is strictly sequential in original row order: each row's lookup, retries
// and rate-limit pause complete before the next row starts, which keeps
// failure attribution unambiguous.
type Enricher struct {
	resolver ports.TrackResolver
	tokens   ports.TokenSource
	retrier  *RetryController
	log      *zap.Logger
}

// NewEnricher constructs an enricher.
func NewEnricher(resolver ports.TrackResolver, tokens ports.TokenSource, retrier *RetryController, log *zap.Logger) *Enricher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Enricher{
		resolver: resolver,
		tokens:   tokens,
		retrier:  retrier,
		log:      log,
	}
}

// Run enriches the table in place with the given field set. The table keeps
// its row count and row order; only the target columns of matched rows
// change. The caller persists the table afterwards — a crash mid-run loses
// the run's progress, which is an accepted limitation of the whole-table
// write.
//
// An error is returned only for failures that make the whole run impossible:
// the initial token exchange and context cancellation.
func (e *Enricher) Run(ctx context.Context, table *domain.Table, fields domain.FieldSet) (Summary, error) {
	summary := Summary{
		RunID:  uuid.NewString(),
		Fields: fields,
		Rows:   table.Len(),
	}
	log := e.log.With(zap.String("run_id", summary.RunID), zap.Stringer("fields", fields))

	token, err := e.tokens.Acquire(ctx)
	if err != nil {
		return summary, err
	}

	table.EnsureColumns(fields.Columns()...)
	artistColumn := fields.ArtistColumn()

	log.Info("enrichment started", zap.Int("rows", summary.Rows))

	for row := 0; row < table.Len(); row++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		title := strings.TrimSpace(table.Get(row, domain.ColTitle))
		artist := strings.TrimSpace(table.Get(row, artistColumn))
		if title == "" || artist == "" {
			summary.SkippedBlank++
			continue
		}

		res, nextToken, err := e.retrier.Do(ctx, token, func(ctx context.Context, tok string) (*domain.LookupResult, error) {
			return e.resolver.Lookup(ctx, tok, title, artist)
		})
		if err != nil {
			return summary, err
		}
		token = nextToken

		if res != nil && applyResult(table, row, fields, res) {
			summary.Matched++
		} else {
			summary.Missed++
		}

		if processed := row + 1; processed%progressEvery == 0 {
			log.Info("enrichment progress",
				zap.Int("processed", processed),
				zap.Int("rows", summary.Rows))
		}
	}

	log.Info("enrichment finished",
		zap.Int("matched", summary.Matched),
		zap.Int("missed", summary.Missed),
		zap.Int("skipped_blank", summary.SkippedBlank))
	return summary, nil
}

// applyResult overwrites the target cells of one row. Returns false when the
// result carries nothing usable for the field set, leaving the row untouched.
func applyResult(table *domain.Table, row int, fields domain.FieldSet, res *domain.LookupResult) bool {
	switch fields {
	case domain.FieldsRelease:
		rd := res.ReleaseDate
		if rd.Year == nil {
			return false
		}
		_ = table.Set(row, domain.ColYear, formatIntPtr(rd.Year))
		_ = table.Set(row, domain.ColMonth, formatIntPtr(rd.Month))
		_ = table.Set(row, domain.ColDay, formatIntPtr(rd.Day))
		return true

	default: // FieldsPopularity
		_ = table.Set(row, domain.ColAlbumReleaseDate, res.ReleaseDateRaw)
		_ = table.Set(row, domain.ColPopularity, formatIntPtr(res.Popularity))
		return true
	}
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
