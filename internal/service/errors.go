package service

import (
	"errors"
	"fmt"
)

// Failure conditions surfaced to the transport layer. All of them are
// recoverable by the caller; anything else coming out of a service is an
// internal error and must not leak detail.
var (
	// ErrConflict means a write was based on a stale version. Callers are
	// expected to re-read and retry.
	ErrConflict = errors.New("version conflict: entity was modified concurrently")

	// ErrImmutableField is returned when an update tries to change a
	// write-once field (the connection secret).
	ErrImmutableField = errors.New("value field cannot be modified once set; delete and recreate the connection instead")
)

// NotFoundError names the entity type and id that failed to resolve.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func notFound(entity string, id uint64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateNameError reports a uniqueness-by-name violation.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s with name %q already exists", e.Entity, e.Name)
}

// DuplicateAssociationError reports an attempt to attach the same fund
// twice to one planner.
type DuplicateAssociationError struct {
	PlannerID uint64
	FundID    uint64
}

func (e *DuplicateAssociationError) Error() string {
	return fmt.Sprintf("fund %d is already attached to planner %d", e.FundID, e.PlannerID)
}

// InvalidInputError reports a malformed request the storage layer never saw.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string {
	return e.Msg
}

func invalidInput(format string, args ...any) error {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}
