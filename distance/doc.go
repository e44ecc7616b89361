// Package distance provides the distance-function contract the tree builder
// and search engine are written against.
//
// The tree never invents a metric on its own: callers supply a Func, and the
// only requirement the tree places on it is that it behave like a true
// vector-space distance (centroids obtained by averaging member points must
// stay meaningful under it). SquaredL2 satisfies this for dense float32
// vectors. Dot is also provided; it ranks by negative dot product, which
// can be negative and is not zero for identical vectors, so it is not a
// true distance.
package distance
