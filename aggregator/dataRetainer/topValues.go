// Package dataretainer keeps the N best entries of a stream without sorting
// the whole stream.
package dataretainer

import (
	"cmp"
	"container/heap"
	"sort"
)

// Entry pairs a key with the value it is ranked by.
type Entry[V cmp.Ordered] struct {
	Key   string
	Value V
}

// better reports whether x ranks ahead of y. Equal values rank by key so the
// outcome does not depend on insertion order.
func better[V cmp.Ordered](x, y Entry[V], largest bool) bool {
	if x.Value != y.Value {
		if largest {
			return x.Value > y.Value
		}
		return x.Value < y.Value
	}
	return x.Key < y.Key
}

type entryHeap[V cmp.Ordered] struct {
	items   []Entry[V]
	largest bool
}

// The root is the worst retained entry.
func (h entryHeap[V]) Len() int           { return len(h.items) }
func (h entryHeap[V]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h entryHeap[V]) Less(i, j int) bool { return better(h.items[j], h.items[i], h.largest) }
func (h *entryHeap[V]) Push(x interface{}) {
	h.items = append(h.items, x.(Entry[V]))
}
func (h *entryHeap[V]) Pop() interface{} {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

type TopN[V cmp.Ordered] struct {
	h        *entryHeap[V]
	capacity int
}

// NewTopN retains the capacity largest (or smallest) entries. A capacity of
// zero or less retains everything.
func NewTopN[V cmp.Ordered](capacity int, largest bool) *TopN[V] {
	h := &entryHeap[V]{items: make([]Entry[V], 0), largest: largest}
	heap.Init(h)
	return &TopN[V]{h: h, capacity: capacity}
}

func (t *TopN[V]) Insert(e Entry[V]) {
	if t.capacity <= 0 || t.h.Len() < t.capacity {
		heap.Push(t.h, e)
		return
	}
	if better(e, t.h.items[0], t.h.largest) {
		t.h.items[0] = e
		heap.Fix(t.h, 0)
	}
}

func (t *TopN[V]) Len() int {
	return t.h.Len()
}

// Values returns the retained entries, best first.
func (t *TopN[V]) Values() []Entry[V] {
	out := make([]Entry[V], len(t.h.items))
	copy(out, t.h.items)
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j], t.h.largest) })
	return out
}
