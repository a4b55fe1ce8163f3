package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup by id, login, email or edge
	// pair matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEdge is returned when a relationship edge for an ordered
	// user pair already exists.
	ErrDuplicateEdge = errors.New("relationship edge already exists")
)
