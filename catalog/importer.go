package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/poiesic/rightsdesk/storage"
)

const defaultBatchSize = 50

// Stats summarizes an import.
type Stats struct {
	Rights    int
	Templates int
	Batches   int
}

// Importer writes catalogs into a content repository.
type Importer struct {
	repo      storage.ContentRepository
	batchSize int
	retry     RetryPolicy
	progress  *ProgressTracker
	logger    *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithBatchSize sets how many entries are written per transaction.
// Default is 50, with a minimum of 1.
func WithBatchSize(size int) Option {
	return func(i *Importer) error {
		i.batchSize = max(size, 1)
		return nil
	}
}

// WithRetryPolicy sets the retry policy for batch writes.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(i *Importer) error {
		if policy.MaxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		i.retry = policy
		return nil
	}
}

// WithProgress reports progress to w. Default is no output.
func WithProgress(w io.Writer) Option {
	return func(i *Importer) error {
		i.progress = NewProgressTracker(w)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger.With("component", "catalog-importer")
		return nil
	}
}

// NewImporter creates a new importer.
func NewImporter(repo storage.ContentRepository, opts ...Option) (*Importer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	i := &Importer{
		repo:      repo,
		batchSize: defaultBatchSize,
		retry:     DefaultRetryPolicy,
		progress:  NewProgressTracker(nil),
		logger:    slog.Default().With("component", "catalog-importer"),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// classifyWriteError marks batch write failures that another attempt cannot fix.
func classifyWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrStorageClosed),
		errors.Is(err, storage.ErrSerializationFailed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return Permanent(err)
	}
	return err
}

// Import validates cat, assigns missing IDs and writes every entry.
// Nothing is written when validation fails. Entries replace stored entries
// with the same ID.
func (i *Importer) Import(ctx context.Context, cat *Catalog) (*Stats, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	cat.AssignIDs()

	stats := &Stats{}

	i.progress.Start("rights", len(cat.Rights))
	for batch := range slices.Chunk(cat.Rights, i.batchSize) {
		err := RetryWithBackoff(ctx, i.retry, func(ctx context.Context) error {
			_, err := i.repo.AddRights(ctx, batch...)
			return classifyWriteError(err)
		})
		if err != nil {
			i.logger.Error("error writing rights batch", "size", len(batch), "err", err)
			return stats, fmt.Errorf("failed to import rights: %w", err)
		}
		stats.Rights += len(batch)
		stats.Batches++
		i.progress.Increment(len(batch))
	}
	i.progress.Finish()

	i.progress.Start("templates", len(cat.Templates))
	for batch := range slices.Chunk(cat.Templates, i.batchSize) {
		err := RetryWithBackoff(ctx, i.retry, func(ctx context.Context) error {
			_, err := i.repo.AddTemplates(ctx, batch...)
			return classifyWriteError(err)
		})
		if err != nil {
			i.logger.Error("error writing template batch", "size", len(batch), "err", err)
			return stats, fmt.Errorf("failed to import templates: %w", err)
		}
		stats.Templates += len(batch)
		stats.Batches++
		i.progress.Increment(len(batch))
	}
	i.progress.Finish()

	i.logger.Info("catalog imported", "rights", stats.Rights, "templates", stats.Templates, "batches", stats.Batches)
	return stats, nil
}

// ImportFile loads and imports a catalog file.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Stats, error) {
	cat, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, cat)
}
