package domain

import "errors"

// Sentinel errors services and handlers translate into HTTP responses.
// Repositories map driver-level not-found conditions onto ErrNotFound so the
// layers above never import database/sql.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyJoined      = errors.New("challenge already joined")
)
