// Package repository implements the entity store over database/sql.
// Sentinel errors let handlers translate storage outcomes into the
// HTTP error taxonomy without inspecting driver details.
package repository

import "errors"

// ErrNotFound is returned when an identifier does not resolve to a
// row. Handlers translate it into a 404 with the entity's *_NOT_FOUND
// code.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique
// constraint (email or firebase uid).
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when a conditional write applies to zero
// rows, meaning the record changed underneath the caller, or when a
// delete is blocked by dependent records. Handlers translate it into
// a 409 response.
var ErrConflict = errors.New("conflict")
