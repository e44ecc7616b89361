package kmtree

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/kmtree-go/kmtree/distance"
	"github.com/kmtree-go/kmtree/persistence"
)

// Save writes a structural snapshot of the tree to w: its shape, pivots,
// radii, variances and leaf indices, plus a trailing CRC32 checksum. It
// does not write the dataset itself, which Load expects the caller to
// supply back unchanged.
//
// If the tree was constructed with WithCompression(true), the structural
// stream is wrapped in zstd; Load must be called with the same setting to
// read it back.
func (t *Tree) Save(w io.Writer) error {
	if t.root == nil {
		return ErrNotBuilt
	}

	sink := w
	var enc io.WriteCloser
	if t.opts.Compression {
		var err error
		enc, err = persistence.CompressWriter(w)
		if err != nil {
			err = fmt.Errorf("kmtree: save: %w", err)
			t.logger.LogSave(err)
			return err
		}
		sink = enc
	}

	bw := persistence.NewWriter(sink)
	err := bw.WriteHeader(&persistence.FileHeader{
		Dimension:     uint32(t.dataset.Cols),
		Size:          uint64(t.dataset.Rows),
		SizeAtBuild:   uint64(t.sizeAtBuild),
		Branching:     int32(t.opts.Branching),
		Iterations:    int32(t.opts.Iterations),
		MemoryCounter: t.memoryCounter,
		CBIndex:       t.opts.CBIndex,
	})
	if err == nil {
		err = t.saveNode(bw, t.root)
	}
	if err == nil {
		err = bw.Finish()
	}
	if err == nil && enc != nil {
		err = enc.Close()
	}
	if err != nil {
		err = fmt.Errorf("kmtree: save: %w", err)
	}
	t.logger.LogSave(err)
	return err
}

func (t *Tree) saveNode(bw *persistence.Writer, node *Node) error {
	if err := bw.WriteFloat32Slice(node.Pivot); err != nil {
		return err
	}
	if err := bw.WriteNodeHeader(&persistence.NodeHeader{
		Radius:     node.Radius,
		Variance:   node.Variance,
		Size:       uint64(node.Size),
		ChildCount: uint32(len(node.Children)),
	}); err != nil {
		return err
	}
	if node.IsLeaf() {
		return bw.WriteIndices(node.Indices)
	}
	for _, child := range node.Children {
		if err := t.saveNode(bw, child); err != nil {
			return err
		}
	}
	return nil
}

// Load reconstructs a Tree previously written by Save. dataset must be the
// same data Save was called against (Load does not verify this); distFn
// is the metric to search with, which need not be the one the tree was
// built with. optFns may override logging/metrics and other options that
// are not part of the persisted shape (Branching, Iterations and CBIndex
// come from the snapshot and take precedence over conflicting options).
//
// If the snapshot was written with WithCompression(true), optFns must
// include WithCompression(true) here too.
func Load(r io.Reader, dataset Dataset, distFn distance.Func, optFns ...func(*Options)) (*Tree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	source := r
	if opts.Compression {
		dec, err := persistence.DecompressReader(r)
		if err != nil {
			return nil, fmt.Errorf("kmtree: load: %w", err)
		}
		defer dec.Close()
		source = dec
	}

	br := persistence.NewReader(source)
	h, err := br.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("kmtree: load: %w", err)
	}
	if h.Dimension != uint32(dataset.Cols) {
		return nil, &ErrDimensionMismatch{Expected: int(h.Dimension), Actual: dataset.Cols}
	}

	opts.Branching = int(h.Branching)
	opts.Iterations = int(h.Iterations)
	opts.CBIndex = h.CBIndex

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	var seed int64
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	} else {
		seed = time.Now().UnixNano()
	}

	t := &Tree{
		dataset:       dataset,
		opts:          opts,
		distFn:        distFn,
		rng:           rand.New(rand.NewSource(seed)),
		logger:        logger,
		metrics:       metrics,
		memoryCounter: h.MemoryCounter,
		sizeAtBuild:   int(h.SizeAtBuild),
	}

	root, err := t.loadNode(br)
	if err != nil {
		t.logger.LogLoad(0, err)
		return nil, fmt.Errorf("kmtree: load: %w", err)
	}
	if err := br.VerifyChecksum(); err != nil {
		t.logger.LogLoad(0, err)
		return nil, err
	}
	t.root = root

	t.logger.LogLoad(t.dataset.Rows, nil)
	return t, nil
}

func (t *Tree) loadNode(br *persistence.Reader) (*Node, error) {
	pivot, err := br.ReadFloat32Slice()
	if err != nil {
		return nil, err
	}
	nh, err := br.ReadNodeHeader()
	if err != nil {
		return nil, err
	}

	node := &Node{Pivot: pivot, Radius: nh.Radius, Variance: nh.Variance, Size: int(nh.Size)}
	if nh.ChildCount == 0 {
		idx, err := br.ReadIndices()
		if err != nil {
			return nil, err
		}
		node.Indices = idx
		return node, nil
	}

	node.Children = make([]*Node, nh.ChildCount)
	for i := range node.Children {
		child, err := t.loadNode(br)
		if err != nil {
			return nil, err
		}
		node.Children[i] = child
	}
	return node, nil
}
