package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUsernameNotFound indicates no user carries the requested username.
	ErrUsernameNotFound = errors.New("model: username not found")
	// ErrUsernameTaken indicates a user with the canonical username already exists.
	ErrUsernameTaken = errors.New("model: username taken")
	// ErrUsernameInvalid indicates the username is empty after canonicalization.
	ErrUsernameInvalid = errors.New("model: username invalid")
)

// EntityNotFoundError is returned when a row addressed by id does not exist.
type EntityNotFoundError struct {
	Entity string `json:"entity"`
	ID     int64  `json:"id"`
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("model: %s %d not found", e.Entity, e.ID)
}

// Kind identifies the error in server-side records.
func (e *EntityNotFoundError) Kind() string {
	return "EntityNotFound"
}

// StoreError wraps a failure of the underlying storage.
type StoreError struct {
	Op     string
	Entity string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("model: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Kind identifies the error in server-side records.
func (e *StoreError) Kind() string {
	return "Store"
}

func storeErr(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Entity: entity, Err: err}
}
