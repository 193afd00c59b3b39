package scenario

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/rightsdesk/storage"
)

// Tracker loads and saves checklists.
// Toggle and SetPhase are serialized so concurrent updates are not lost.
type Tracker struct {
	repo   storage.ProgressRepository
	logger *slog.Logger
	mu     sync.Mutex // Guards load-modify-save in Toggle and SetPhase
}

// Option configures a Tracker.
type Option func(*Tracker) error

// WithLogger sets the tracker's logger. Nil falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger.With("component", "scenario-tracker")
		return nil
	}
}

// NewTracker creates a tracker over repo.
func NewTracker(repo storage.ProgressRepository, opts ...Option) (*Tracker, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	t := &Tracker{
		repo:   repo,
		logger: slog.Default().With("component", "scenario-tracker"),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Load returns the saved checklist for a guide, or a fresh one.
// Unknown names resolve to the tenant dispute guide.
func (t *Tracker) Load(ctx context.Context, name string) (*Checklist, error) {
	guide := Lookup(name)
	progress, err := t.repo.LoadProgress(ctx, guide.Name)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return NewChecklist(guide.Name), nil
	}
	return Restore(progress), nil
}

// Save persists a checklist.
func (t *Tracker) Save(ctx context.Context, checklist *Checklist) error {
	return t.repo.SaveProgress(ctx, checklist.Snapshot())
}

// Toggle loads a checklist, flips a step and saves it.
func (t *Tracker) Toggle(ctx context.Context, name, stepID string) (*Checklist, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	checklist, err := t.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	done, err := checklist.Toggle(stepID)
	if err != nil {
		return nil, err
	}
	if err := t.Save(ctx, checklist); err != nil {
		return nil, err
	}
	t.logger.Debug("step toggled", "scenario", checklist.Guide.Name, "step", stepID, "completed", done)
	return checklist, nil
}

// SetPhase loads a checklist, selects a phase and saves it.
func (t *Tracker) SetPhase(ctx context.Context, name string, index int) (*Checklist, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	checklist, err := t.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := checklist.SetPhase(index); err != nil {
		return nil, err
	}
	if err := t.Save(ctx, checklist); err != nil {
		return nil, err
	}
	return checklist, nil
}
