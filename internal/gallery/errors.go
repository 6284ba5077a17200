// File: internal/gallery/errors.go
package gallery

import (
	"errors"
)

// ErrInvalidFileType rejects a selection whose media type is not image/*. It is raised before any network call
var ErrInvalidFileType = errors.New("invalid file type: only images can be uploaded")

// CollaboratorError is any failed storage call. Every one is terminal for the action that triggered it
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func collaboratorFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Op: op, Err: err}
}

// userMessage picks the text shown for a failed action: the storage error's own message when there is one
func userMessage(err error, fallback string) string {
	var ce *CollaboratorError
	if errors.As(err, &ce) && ce.Err != nil && ce.Err.Error() != "" {
		return ce.Err.Error()
	}
	return fallback
}

// Unit is the empty success value of operations that only succeed or fail
type Unit struct{}

// Result carries the outcome of a storage call back into the event loop
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// resultOf turns a (value, error) pair into a Result
func resultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}
