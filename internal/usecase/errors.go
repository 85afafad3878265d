package usecase

import "fmt"

// DomainError is a business rule violation: safe to show to the user,
// never retried.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// PersistenceError wraps any storage-layer failure during find, create
// or update. The caller surfaces it and does not retry; the previously
// displayed value stays as-is.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("échec de persistance (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
