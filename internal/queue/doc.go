// Package queue implements the min-heap of deferred branches used by
// best-bin-first search.
package queue
