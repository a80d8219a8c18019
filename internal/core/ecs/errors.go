package ecs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDeadEntity       = errors.New("entity is dead")
	ErrMissingComponent = errors.New("missing component")
	ErrBorrowConflict   = errors.New("borrow conflict")
	ErrHierarchyCycle   = errors.New("hierarchy cycle")
	ErrNotChild         = errors.New("entity is not a child of the parent")
	ErrNoMatch          = errors.New("query matched no entity")
)

// MissingComponentError is raised by infallible accessors when the entity
// does not own the requested component.
type MissingComponentError struct {
	Component string
	Entity    Entity
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: %s has no component %s", e.Entity, e.Component)
}

func (e *MissingComponentError) Unwrap() error { return ErrMissingComponent }

// BorrowError reports an access that conflicts with live borrows of the same storage.
type BorrowError struct {
	Component string
	Mutable   bool
	Site      string
	Live      []string
}

func (e *BorrowError) Error() string {
	kind := "immutably"
	if e.Mutable {
		kind = "mutably"
	}
	return fmt.Sprintf("ecs: cannot borrow storage of %s %s at %s; live borrows: [%s]",
		e.Component, kind, e.Site, strings.Join(e.Live, ", "))
}

func (e *BorrowError) Unwrap() error { return ErrBorrowConflict }
