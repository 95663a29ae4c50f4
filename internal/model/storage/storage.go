package storage

import "github.com/pkg/errors"

// ErrNotFound is returned when a record id or key does not exist.
var ErrNotFound = errors.New("record not found")

// ErrEmailTaken is returned when the users.email unique key is violated.
var ErrEmailTaken = errors.New("email already taken")
