// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pokemon

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/store"
)

// Kind classifies a service error for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is returned by every Service operation. Message is safe to show to
// callers; Err holds the underlying cause and is never exposed.
type Error struct {
	Kind    Kind
	Message string
	Fields  []models.FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ValidationError wraps field errors produced at the request boundary.
func ValidationError(fields []models.FieldError) *Error {
	msg := "invalid request"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// normalizeStoreError maps a storage failure to Conflict when the store
// reported a unique index violation, and to Internal otherwise. Internal
// causes are logged here and hidden from the caller.
func normalizeStoreError(err error, action string) *Error {
	var dup *store.DuplicateKeyError
	if errors.As(err, &dup) {
		return &Error{
			Kind:    KindConflict,
			Message: "pokemon already exists in db " + dup.KeyValueJSON(),
			Err:     err,
		}
	}

	slog.Error("pokemon store failure", "action", action, "error", err)
	return &Error{
		Kind:    KindInternal,
		Message: fmt.Sprintf("failed to %s pokemon - check server logs", action),
		Err:     err,
	}
}

// NormalizeStoreError is exported for callers outside the service, such as
// the seed importer, that talk to the store directly.
func NormalizeStoreError(err error, action string) error {
	if err == nil {
		return nil
	}
	return normalizeStoreError(err, action)
}
