package domain

import "errors"

var (
	// ErrDuplicateConnection: the transport handed us an id that is already
	// registered. The transport must generate a fresh one.
	ErrDuplicateConnection = errors.New("connection id already registered")

	// ErrUnknownConnection: an event referenced a connection that is not in
	// the registry. Expected during churn; callers drop the event silently.
	ErrUnknownConnection = errors.New("unknown connection")

	// ErrInvariantViolation: an internal contract breach, e.g. deleting a
	// room that still has members. Programmer error, not a runtime condition.
	ErrInvariantViolation = errors.New("invariant violation")
)
