package services

import "fmt"

// The generate flow distinguishes four failure classes because each has a
// different recovery story: validation blocks before any I/O, fetch failures
// degrade to defaults, a render failure persists nothing, and a persistence
// failure leaves the rendered artifact usable for manual download.

// ValidationError reports a draft that cannot be generated. No collaborator
// is contacted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// FetchError wraps a failed collaborator lookup. Callers degrade to safe
// defaults where possible (empty lists, the fallback bill number) instead of
// failing the whole flow.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RenderError wraps a document renderer failure; generation aborts and
// nothing is persisted.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("invoice render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PersistenceError wraps an invoice store rejection. The rendered artifact
// survives the failure and stays downloadable; only the record is unsaved.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("booking could not be saved: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
