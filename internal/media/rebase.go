package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"flipr/internal/store"
)

// RecordSource is the slice of the data store the rebase job reads and
// rewrites.
type RecordSource interface {
	ImageRows(ctx context.Context, collection string) ([]store.ImageRow, error)
	SetImageURL(ctx context.Context, collection, id, url string) error
}

// RebaseResult records one rewritten URL, for the operator audit trail.
type RebaseResult struct {
	Collection string
	ID         string
	OldURL     string
	NewURL     string
}

// RebaseFailure records a record the job could not rewrite. ID is empty
// when an entire collection could not be listed.
type RebaseFailure struct {
	Collection string
	ID         string
	Err        error
}

// RebaseReport summarizes one run of the rebase job.
type RebaseReport struct {
	Rewritten []RebaseResult
	Skipped   int
	Failures  []RebaseFailure
}

// Failed reports whether any record could not be processed.
func (r RebaseReport) Failed() bool {
	return len(r.Failures) > 0
}

// rebaseCollections lists every collection/field pair carrying an asset
// URL.
var rebaseCollections = []string{store.CollectionProjects, store.CollectionClients}

// Rebase rewrites every stored relative image URL to the new base.
// Values already starting with an absolute-URL scheme are left alone,
// which makes a second run with the same base a no-op. A failure on one
// record does not stop the rest; failures are collected into the
// report.
//
// Running two rebases concurrently against the same records is not
// safe; this is an operator-invoked maintenance task, run it once.
func Rebase(ctx context.Context, src RecordSource, newBase string, log *zap.Logger) (RebaseReport, error) {
	if strings.TrimSpace(newBase) == "" {
		return RebaseReport{}, errors.New("new base URL is required")
	}

	var report RebaseReport
	for _, collection := range rebaseCollections {
		rows, err := src.ImageRows(ctx, collection)
		if err != nil {
			report.Failures = append(report.Failures, RebaseFailure{
				Collection: collection,
				Err:        fmt.Errorf("list records: %w", err),
			})
			continue
		}
		for _, row := range rows {
			if row.URL == "" || IsAbsoluteURL(row.URL) {
				report.Skipped++
				continue
			}
			newURL := ResolveURL(newBase, row.URL)
			if err := src.SetImageURL(ctx, collection, row.ID, newURL); err != nil {
				report.Failures = append(report.Failures, RebaseFailure{
					Collection: collection,
					ID:         row.ID,
					Err:        err,
				})
				continue
			}
			report.Rewritten = append(report.Rewritten, RebaseResult{
				Collection: collection,
				ID:         row.ID,
				OldURL:     row.URL,
				NewURL:     newURL,
			})
			log.Info("rewrote image url",
				zap.String("collection", collection),
				zap.String("id", row.ID),
				zap.String("old", row.URL),
				zap.String("new", newURL))
		}
	}
	return report, nil
}
