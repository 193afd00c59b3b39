package catalog

import "errors"

var (
	// ErrInvalidCatalog is returned when a catalog fails to parse or validate.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrDuplicateID is returned when two entries of the same kind share an ID.
	ErrDuplicateID = errors.New("duplicate entry id")

	// ErrRepositoryRequired is returned when an importer is created without a repository.
	ErrRepositoryRequired = errors.New("content repository required")

	// ErrInvalidMaxAttempts is returned when a retry policy allows no attempts.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")
)
