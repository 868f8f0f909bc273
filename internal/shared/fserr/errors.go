// Package fserr defines the failure taxonomy shared by the sandbox and the
// filesystem operations.
//
// Every failure carries a stable Kind so callers can branch on the cause
// (access denied vs. not found vs. too large) instead of parsing messages:
//
//	if errors.Is(err, fserr.ErrDenied) { ... }
//	switch fserr.KindOf(err) { ... }
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// Kind identifies the class of a failure
type Kind string

const (
	KindInvalid   Kind = "invalid"
	KindDenied    Kind = "denied"
	KindNotFound  Kind = "not_found"
	KindWrongType Kind = "wrong_type"
	KindTooLarge  Kind = "too_large"
	KindDecode    Kind = "decode_error"
	KindNotEmpty  Kind = "directory_not_empty"
	KindIO        Kind = "io_error"
)

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrInvalid   = &Error{Kind: KindInvalid}
	ErrDenied    = &Error{Kind: KindDenied}
	ErrNotFound  = &Error{Kind: KindNotFound}
	ErrWrongType = &Error{Kind: KindWrongType}
	ErrTooLarge  = &Error{Kind: KindTooLarge}
	ErrDecode    = &Error{Kind: KindDecode}
	ErrNotEmpty  = &Error{Kind: KindNotEmpty}
	ErrIO        = &Error{Kind: KindIO}
)

// Error is a classified filesystem failure
type Error struct {
	Kind   Kind
	Op     string
	Path   string
	Detail string

	// Roots is set for KindDenied
	Roots []string
	// Limit is set for KindTooLarge
	Limit int64

	Err error
}

// Error implements error
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	if e.Detail != "" {
		sb.WriteString(e.Detail)
	} else {
		sb.WriteString(string(e.Kind))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a classified error
func New(kind Kind, op, path, detail string) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Detail: detail}
}

// Wrap creates a classified error around a cause
func Wrap(kind Kind, op, path, detail string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Detail: detail, Err: err}
}

// Denied creates an access-denied error listing the allowed roots
func Denied(op, path string, roots []string) *Error {
	return &Error{
		Kind:   KindDenied,
		Op:     op,
		Path:   path,
		Detail: fmt.Sprintf("Access denied. Path must be within: %s", strings.Join(roots, ", ")),
		Roots:  append([]string(nil), roots...),
	}
}

// TooLarge creates a size-limit error
func TooLarge(op, path string, limit int64) *Error {
	return &Error{
		Kind:   KindTooLarge,
		Op:     op,
		Path:   path,
		Detail: fmt.Sprintf("File too large. Max size: %d bytes", limit),
		Limit:  limit,
	}
}

// KindOf returns the Kind of err, or KindIO for unclassified errors
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}

// FromOS classifies an error returned by an OS filesystem call
func FromOS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Wrap(KindNotFound, op, path, "path not found", err)
	case errors.Is(err, syscall.ENOTEMPTY), errors.Is(err, syscall.EEXIST) && op == "delete":
		return Wrap(KindNotEmpty, op, path, "directory not empty", err)
	case errors.Is(err, syscall.EISDIR):
		return Wrap(KindWrongType, op, path, "path is a directory", err)
	case errors.Is(err, syscall.ENOTDIR):
		return Wrap(KindWrongType, op, path, "path is not a directory", err)
	default:
		return Wrap(KindIO, op, path, "I/O error", err)
	}
}
