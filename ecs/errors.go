package ecs

import "errors"

var (
	// ErrEntityNotFound is returned when an operation targets an entity that is not alive.
	ErrEntityNotFound = errors.New("ecs: entity not found")
)
