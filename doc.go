// Package kmtree implements a hierarchical k-means tree for approximate
// nearest-neighbor search over dense float32 vectors.
//
// A Tree recursively partitions a dataset with balanced k-means clustering,
// producing a branching tree of cluster centroids. Queries are answered
// either by an exact traversal of the whole tree or by a bounded
// best-bin-first (BBF) search that trades search work for accuracy.
//
// # Quick start
//
//	ds := kmtree.NewDataset(n, dim, data)
//	tree, err := kmtree.New(ds, distance.SquaredL2,
//	    kmtree.WithBranching(32),
//	    kmtree.WithCentersInit(kmtree.SeedKMeansPP),
//	)
//	if err != nil {
//	    panic(err)
//	}
//	if err := tree.Build(); err != nil {
//	    panic(err)
//	}
//
//	result := kmtree.NewBoundedResult(10)
//	if err := tree.FindNeighbors(result, query, 128); err != nil {
//	    panic(err)
//	}
//
// The distance function, the dataset's storage, and the byte-level
// persistence sink/source are all treated as external collaborators: the
// tree never picks a metric or a storage layer on its own.
package kmtree
