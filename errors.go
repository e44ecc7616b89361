package kmtree

import (
	"errors"
	"fmt"
)

// ErrNotBuilt is returned by operations that require a built tree
// (FindNeighbors, Save, GetClusterCenters) when called before Build.
var ErrNotBuilt = errors.New("kmtree: index has not been built")

// ErrInvalidBranching is returned by New and Build when the configured
// branching factor is too small to form a tree.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidBranching struct {
	Branching int
	cause     error
}

func (e *ErrInvalidBranching) Error() string {
	return fmt.Sprintf("kmtree: branching factor must be at least 2, got %d", e.Branching)
}

func (e *ErrInvalidBranching) Unwrap() error { return e.cause }

// ErrDimensionMismatch is returned when a dataset or query vector's
// dimensionality does not match the tree it is used with.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("kmtree: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidClusterCount is returned by GetClusterCenters when asked for
// fewer than one cluster.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidClusterCount struct {
	Requested int
	cause     error
}

func (e *ErrInvalidClusterCount) Error() string {
	return fmt.Sprintf("kmtree: requested cluster count must be at least 1, got %d", e.Requested)
}

func (e *ErrInvalidClusterCount) Unwrap() error { return e.cause }
