package search

import (
	"container/heap"

	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// item is a frontier entry.
type item struct {
	id       visgraph.NodeID
	priority float64
	seq      int // insertion order, breaks priority ties
	index    int // index in the heap
}

// priorityQueue implements heap.Interface as a min-heap on priority.
type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[0 : n-1]
	return it
}

// frontier is the set of discovered but not yet expanded nodes: a heap for
// ordering paired with a map for constant-time membership.
type frontier struct {
	queue   priorityQueue
	members map[visgraph.NodeID]*item
	seq     int
}

func newFrontier() *frontier {
	return &frontier{members: make(map[visgraph.NodeID]*item)}
}

func (f *frontier) Len() int {
	return f.queue.Len()
}

func (f *frontier) Contains(id visgraph.NodeID) bool {
	_, ok := f.members[id]
	return ok
}

func (f *frontier) Push(id visgraph.NodeID, priority float64) {
	it := &item{id: id, priority: priority, seq: f.seq}
	f.seq++
	heap.Push(&f.queue, it)
	f.members[id] = it
}

// Pop removes and returns the pending node with the lowest priority.
func (f *frontier) Pop() visgraph.NodeID {
	it := heap.Pop(&f.queue).(*item)
	delete(f.members, it.id)
	return it.id
}

// Update changes the priority of a pending node.
func (f *frontier) Update(id visgraph.NodeID, priority float64) {
	it, ok := f.members[id]
	if !ok || it.priority == priority {
		return
	}
	it.priority = priority
	heap.Fix(&f.queue, it.index)
}

// Clear drains the queue and empties the membership set.
func (f *frontier) Clear() {
	for i := range f.queue {
		f.queue[i] = nil
	}
	f.queue = f.queue[:0]
	clear(f.members)
	f.seq = 0
}
