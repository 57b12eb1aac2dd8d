package ditaml

import "errors"

// Validation errors. All are recoverable at the point of user input;
// callers surface them for correction, nothing here is fatal.
var (
	ErrEmptyTitle      = errors.New("title is empty after normalization")
	ErrMissingTemplate = errors.New("no template for content type")
	ErrMissingField    = errors.New("missing template field")
	ErrDuplicateTitle  = errors.New("duplicate title for content type")
	ErrNoTopics        = errors.New("no generated topics found")
)
