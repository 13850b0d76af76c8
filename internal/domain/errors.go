package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError: bad task id, missing field, empty filename и т.п.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(msg string) error {
	return &NotFoundError{Msg: msg}
}

// StorageError wraps IO/parse failures of the file stores.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// CollaboratorError keeps the underlying message verbatim.
type CollaboratorError struct {
	Source string
	Err    error
}

func (e *CollaboratorError) Error() string {
	if e.Err == nil {
		return e.Source + " failed"
	}
	return e.Err.Error()
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func Collaborator(source string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return err
	}
	return &CollaboratorError{Source: source, Err: err}
}

// UnavailableError: внешний инструмент не установлен (ffmpeg).
type UnavailableError struct {
	Msg string
}

func (e *UnavailableError) Error() string { return e.Msg }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }
