package article

import "errors"

var (
	// ErrSlugEmpty is returned when an operation is called without a slug.
	ErrSlugEmpty = errors.New("article slug cannot be empty")

	// ErrMissingRequiredFields is returned when an insert lacks title, date or
	// a truthy published flag.
	ErrMissingRequiredFields = errors.New("insert requires title, date and published")

	// ErrNoChanges is returned when an update carries no field besides the
	// forced modify time refresh.
	ErrNoChanges = errors.New("no fields to update")

	// ErrNotDirectory is returned when the rename source exists but is not a
	// directory.
	ErrNotDirectory = errors.New("rename source is not a directory")

	// ErrNotFound is returned when no row or directory matches the request.
	ErrNotFound = errors.New("article not found")

	// ErrPathOutsideBase is returned when a slug would escape the content
	// base directory.
	ErrPathOutsideBase = errors.New("path is outside the content base directory")
)
