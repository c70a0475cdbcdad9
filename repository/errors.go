package repository

import "errors"

// ErrDuplicateName reports a write that would break the case-insensitive
// uniqueness of movie names. It covers both the explicit pre-write check and
// the unique-index violation the store raises when two writers race.
var ErrDuplicateName = errors.New("a movie with this name already exists")
