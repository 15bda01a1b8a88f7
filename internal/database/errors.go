package database

import "errors"

var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("database: not found")
	// ErrNoConnection is returned by repositories built without an open database.
	ErrNoConnection = errors.New("database: no open connection")
)
