package domain

import "errors"

// ErrNotFound is returned when the requested record, day, activity, category
// or item does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when user input is malformed
// (missing field, bad format, out-of-range count, duplicate name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPolicy is returned when a business rule forbids the operation
// (weak password, duplicate email, day/activity caps, removing the last day).
// The operation is aborted and state is left unchanged.
// Handlers should map this to HTTP 409 Conflict.
var ErrPolicy = errors.New("policy violation")

// ErrInvalidCredentials is returned by login when no user matches the
// email/password pair. Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrConfirmationRequired is returned by destructive operations that need an
// explicit confirm flag (removing a day with activities, clearing all
// activities, resetting an active trip).
// Handlers should map this to HTTP 428 Precondition Required.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrNothingToDo is returned when an operation has no effect and the caller
// should show an informational notice rather than an error.
var ErrNothingToDo = errors.New("nothing to do")

// ErrStorage marks a persisted value that could not be decoded.
// Services recover from it locally by discarding the value; it never reaches
// a handler.
var ErrStorage = errors.New("storage error")
