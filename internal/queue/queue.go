package queue

import "container/heap"

// item is one entry in a Branch queue: a deferred value paired with the key
// it was ranked by when it was pushed (child-to-query distance minus the
// variance bonus, for best-bin-first search).
type item[T any] struct {
	value T
	key   float32
	index int
}

// Branch is a min-heap of deferred search branches, ordered ascending by
// key. It implements heap.Interface directly, the way container/heap
// expects, rather than hiding the heap behind its own reimplementation.
type Branch[T any] struct {
	items []*item[T]
}

// Compile-time check to ensure Branch satisfies the heap interface.
var _ heap.Interface = (*Branch[struct{}])(nil)

// New creates an empty branch queue with the given initial capacity.
func New[T any](capacity int) *Branch[T] {
	return &Branch[T]{items: make([]*item[T], 0, capacity)}
}

// Len returns the number of elements in the queue.
func (q *Branch[T]) Len() int { return len(q.items) }

// Less reports whether the element with index i should sort before j.
func (q *Branch[T]) Less(i, j int) bool { return q.items[i].key < q.items[j].key }

// Swap swaps the elements with indexes i and j.
func (q *Branch[T]) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index, q.items[j].index = i, j
}

// Push adds x to the queue. Required by heap.Interface; use Insert instead.
func (q *Branch[T]) Push(x any) {
	it := x.(*item[T])
	it.index = len(q.items)
	q.items = append(q.items, it)
}

// Pop removes and returns the last element. Required by heap.Interface;
// use PopMin instead.
func (q *Branch[T]) Pop() any {
	n := len(q.items)
	it := q.items[n-1]
	q.items[n-1] = nil
	it.index = -1
	q.items = q.items[:n-1]
	return it
}

// Insert pushes value with the given key, maintaining the heap invariant.
func (q *Branch[T]) Insert(value T, key float32) {
	heap.Push(q, &item[T]{value: value, key: key})
}

// PopMin removes and returns the value with the smallest key.
func (q *Branch[T]) PopMin() (value T, key float32, ok bool) {
	if len(q.items) == 0 {
		return value, 0, false
	}
	it := heap.Pop(q).(*item[T])
	return it.value, it.key, true
}

// Reset clears the queue for reuse, keeping its backing array.
func (q *Branch[T]) Reset() {
	for i := range q.items {
		q.items[i] = nil
	}
	q.items = q.items[:0]
}
