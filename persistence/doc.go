// Package persistence implements the binary structural dump/load format
// for a built tree: a fixed header carrying the scalar index parameters,
// followed by a pre-order walk of the tree writing each node's pivot, then
// its radius, variance, size and child count, then its leaf indices if the
// child count is zero.
package persistence
