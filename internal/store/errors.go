package store

import "errors"

var (
	ErrNotFound        = errors.New("fact overlay not found")
	ErrNoFacts         = errors.New("fact overlay has no facts")
	ErrIndexOutOfRange = errors.New("fact index out of range")
)
