package kmtree

// SeedStrategy selects how initial cluster centers are chosen at each
// level of the tree.
type SeedStrategy int

const (
	// SeedRandom draws centers uniformly at random, rejecting near-duplicates.
	SeedRandom SeedStrategy = iota
	// SeedGonzales picks each center as the point farthest from all
	// previously chosen centers (farthest-point / "Gonzales" seeding).
	SeedGonzales
	// SeedKMeansPP draws centers with probability proportional to their
	// squared distance from the closest center already chosen.
	SeedKMeansPP
)

func (s SeedStrategy) String() string {
	switch s {
	case SeedGonzales:
		return "gonzales"
	case SeedKMeansPP:
		return "kmeans++"
	default:
		return "random"
	}
}

// Options configures a Tree. Use the With* functions with New rather than
// constructing Options directly; DefaultOptions documents the baseline
// every With* function starts from.
type Options struct {
	// Branching is the number of children per internal node. Must be >= 2.
	Branching int
	// Iterations bounds the number of Lloyd refinement passes per node.
	// A negative value means unbounded (iterate to convergence).
	Iterations int
	// CentersInit selects the seeding strategy used to pick initial centers.
	CentersInit SeedStrategy
	// CBIndex trades search speed for accuracy in best-bin-first search:
	// higher values favor branches with higher variance (more promising
	// to explore further) when ordering the priority queue.
	CBIndex float32
	// CopyDataset makes the tree take an owned copy of the dataset instead
	// of referencing the caller's backing array.
	CopyDataset bool
	// RandomSeed fixes the seeding PRNG for reproducible builds. If nil,
	// New derives a seed from the current time.
	RandomSeed *int64
	// Logger receives structured build/insert/search/persistence events.
	// Defaults to a no-op logger.
	Logger *Logger
	// Metrics receives build/search/rebuild counters. Defaults to a no-op
	// collector.
	Metrics MetricsCollector
	// Compression wraps Save/Load's structural byte stream in zstd. Save
	// and Load must agree on this setting for a given snapshot; it is not
	// recorded in the snapshot itself.
	Compression bool
}

// DefaultOptions is the baseline every New call starts from before With*
// functions are applied.
var DefaultOptions = Options{
	Branching:   32,
	Iterations:  11,
	CentersInit: SeedRandom,
	// 0.4 rather than a separate "default" that a constructor then
	// silently overwrites; see DESIGN.md for the rationale.
	CBIndex:     0.4,
	CopyDataset: false,
}

// WithBranching sets the number of children per internal node.
func WithBranching(b int) func(*Options) {
	return func(o *Options) { o.Branching = b }
}

// WithIterations bounds the number of Lloyd refinement passes per node.
func WithIterations(i int) func(*Options) {
	return func(o *Options) { o.Iterations = i }
}

// WithCentersInit selects the seeding strategy.
func WithCentersInit(s SeedStrategy) func(*Options) {
	return func(o *Options) { o.CentersInit = s }
}

// WithCBIndex sets the cluster-boundary index used by best-bin-first search.
func WithCBIndex(cb float32) func(*Options) {
	return func(o *Options) { o.CBIndex = cb }
}

// WithCopyDataset makes the tree own a private copy of the dataset.
func WithCopyDataset(v bool) func(*Options) {
	return func(o *Options) { o.CopyDataset = v }
}

// WithRandomSeed fixes the seeding PRNG for reproducible builds.
func WithRandomSeed(seed int64) func(*Options) {
	return func(o *Options) { o.RandomSeed = &seed }
}

// WithLogger sets the structured logger used for build/insert/search events.
func WithLogger(l *Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics sets the metrics collector used for build/search/rebuild counters.
func WithMetrics(m MetricsCollector) func(*Options) {
	return func(o *Options) { o.Metrics = m }
}

// WithCompression enables zstd compression of the structural byte stream
// Save writes and Load reads. Both sides of a given snapshot must set this
// the same way.
func WithCompression(v bool) func(*Options) {
	return func(o *Options) { o.Compression = v }
}
