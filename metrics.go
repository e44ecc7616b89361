package kmtree

import "time"

// MetricsCollector receives counters for the operations a Tree performs.
// Implementations must be safe to call from a single goroutine at a time;
// the tree itself makes no concurrency guarantees.
type MetricsCollector interface {
	// RecordBuild is called once per Build, with the wall-clock duration
	// and the dataset size at the time of the build.
	RecordBuild(duration time.Duration, size int)
	// RecordSearch is called once per FindNeighbors, with the number of
	// leaf points examined and the number of results returned. For an
	// exact (Unlimited) search checks is the dataset size, and found is 0
	// unless the result is a *BoundedResult.
	RecordSearch(checks int, found int)
	// RecordRebuild is called once whenever AddPoints triggers a full
	// rebuild instead of incremental insertion.
	RecordRebuild()
}

// NoopMetricsCollector discards everything recorded through it. This is
// the default used when Options.Metrics is unset.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(time.Duration, int) {}
func (NoopMetricsCollector) RecordSearch(int, int)          {}
func (NoopMetricsCollector) RecordRebuild()                 {}

// CountingMetricsCollector is a simple in-memory MetricsCollector useful in
// tests and examples.
type CountingMetricsCollector struct {
	Builds      int
	Rebuilds    int
	Searches    int
	ChecksTotal int
	FoundTotal  int
}

func (c *CountingMetricsCollector) RecordBuild(time.Duration, int) { c.Builds++ }

func (c *CountingMetricsCollector) RecordSearch(checks, found int) {
	c.Searches++
	c.ChecksTotal += checks
	c.FoundTotal += found
}

func (c *CountingMetricsCollector) RecordRebuild() { c.Rebuilds++ }
