package repository

import "errors"

var (
	// ErrCapacityReached is returned when a conditional enrollment insert finds the course full.
	ErrCapacityReached = errors.New("course capacity reached")
	// ErrDuplicate is returned when a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)
