package queue

import (
	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"

	"github.com/scusemua/containers/common/configuration"
	"github.com/scusemua/containers/common/types"
)

// Item is an element of a PriorityQueue.
type Item[T any] struct {
	Payload  T
	Priority int
}

// PriorityQueue is a bounded queue that keeps its elements in non-increasing priority
// order from front to back. Elements of equal priority leave in insertion order.
//
// Enqueue is an insertion-sort step and Dequeue shifts like Queue; both are O(n).
//
// PriorityQueue is not safe for concurrent use.
type PriorityQueue[T any] struct {
	slots     []*Item[T]
	capacity  int
	currentsz int
	release   types.ReleaseFunc[T]

	destroyed bool

	log logger.Logger
}

// NewPriority creates a PriorityQueue that holds at most capacity elements.
func NewPriority[T any](capacity int, release types.ReleaseFunc[T]) (*PriorityQueue[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "priority queue capacity must be positive (got %d)", capacity)
	}

	pq := &PriorityQueue[T]{
		slots:    make([]*Item[T], capacity),
		capacity: capacity,
		release:  types.ReleaseOrDefault(release),
	}
	config.InitLogger(&pq.log, "PriorityQueue ")

	return pq, nil
}

// NewPriorityFromOptions creates a PriorityQueue whose capacity is taken from opts.
func NewPriorityFromOptions[T any](opts *configuration.ContainerOptions, release types.ReleaseFunc[T]) (*PriorityQueue[T], error) {
	if opts == nil {
		return nil, types.ErrNullPointer
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return NewPriority[T](opts.Capacity, release)
}

func (pq *PriorityQueue[T]) valid() error {
	if pq == nil {
		return types.ErrNullPointer
	}

	if pq.destroyed {
		return types.ErrDestroyed
	}

	return nil
}

// Enqueue appends payload and moves it toward the front past every element of strictly
// lower priority.
func (pq *PriorityQueue[T]) Enqueue(payload T, priority int) error {
	if err := pq.valid(); err != nil {
		return err
	}

	if pq.IsFull() {
		pq.log.Debug("Rejecting enqueue with priority %d: queue is at capacity (%d).", priority, pq.capacity)
		return errors.Wrapf(types.ErrOverflow, "priority queue at capacity %d", pq.capacity)
	}

	if types.IsNil(payload) {
		return types.ErrNullData
	}

	idx := pq.currentsz
	pq.slots[idx] = &Item[T]{Payload: payload, Priority: priority}
	pq.currentsz++

	for ; idx > 0 && pq.slots[idx].Priority > pq.slots[idx-1].Priority; idx-- {
		pq.slots[idx], pq.slots[idx-1] = pq.slots[idx-1], pq.slots[idx]
	}

	return nil
}

// Dequeue removes and returns the highest-priority element.
func (pq *PriorityQueue[T]) Dequeue() (item Item[T], ok bool) {
	if pq.IsEmpty() {
		return item, false
	}

	front := pq.slots[0]
	copy(pq.slots, pq.slots[1:pq.currentsz])
	pq.slots[pq.currentsz-1] = nil
	pq.currentsz--

	return *front, true
}

// Peek returns but does not remove the highest-priority element.
func (pq *PriorityQueue[T]) Peek() (item Item[T], ok bool) {
	if pq.IsEmpty() {
		return item, false
	}

	return *pq.slots[0], true
}

func (pq *PriorityQueue[T]) IsFull() bool {
	if pq.valid() != nil {
		return false
	}

	return pq.currentsz >= pq.capacity
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return pq.Len() == 0
}

// Clear dequeues every element and invokes the release hook on each payload.
func (pq *PriorityQueue[T]) Clear() error {
	if err := pq.valid(); err != nil {
		return err
	}

	if pq.IsEmpty() {
		return types.ErrUnderflow
	}

	pq.drain()
	return nil
}

func (pq *PriorityQueue[T]) drain() int {
	released := 0
	for !pq.IsEmpty() {
		item, _ := pq.Dequeue()
		pq.release(item.Payload)
		released++
	}
	return released
}

// Destroy drains the queue, releasing every resident payload, and invalidates it.
func (pq *PriorityQueue[T]) Destroy() error {
	if err := pq.valid(); err != nil {
		return err
	}

	released := pq.drain()
	pq.slots = nil
	pq.destroyed = true

	pq.log.Debug("Destroyed priority queue with capacity %d; released %d payload(s).", pq.capacity, released)
	return nil
}

func (pq *PriorityQueue[T]) Len() int {
	if pq.valid() != nil {
		return 0
	}

	return pq.currentsz
}

func (pq *PriorityQueue[T]) Cap() int {
	if pq == nil {
		return 0
	}

	return pq.capacity
}
