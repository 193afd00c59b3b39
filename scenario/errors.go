package scenario

import "errors"

var (
	// ErrUnknownStep is returned when toggling a step the guide doesn't define.
	ErrUnknownStep = errors.New("unknown step")

	// ErrPhaseOutOfRange is returned when selecting a phase the guide doesn't have.
	ErrPhaseOutOfRange = errors.New("phase out of range")

	// ErrRepositoryRequired is returned when a tracker is created without a repository.
	ErrRepositoryRequired = errors.New("progress repository required")
)
