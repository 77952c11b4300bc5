// Package common defines shared constants and errors used across the
// secrets vault layers. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrorUnauthorized means no caller identity is available.
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// FileAlreadyExistsError is returned when an owner already has a file with
// the given name.
type FileAlreadyExistsError struct {
	Name string
}

func (e *FileAlreadyExistsError) Error() string {
	return fmt.Sprintf("file %s already exists", e.Name)
}

// FileNotFoundError is returned for missing files, files owned by someone
// else and invalid share credentials alike.
type FileNotFoundError struct {
	ID string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file with id or code: %s not found", e.ID)
}

// IsFileNotFound reports whether err is, or wraps, a *FileNotFoundError.
func IsFileNotFound(err error) bool {
	var nf *FileNotFoundError
	return errors.As(err, &nf)
}

// IsFileAlreadyExists reports whether err is, or wraps, a *FileAlreadyExistsError.
func IsFileAlreadyExists(err error) bool {
	var ae *FileAlreadyExistsError
	return errors.As(err, &ae)
}
