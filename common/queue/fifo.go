package queue

import (
	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"

	"github.com/scusemua/containers/common/configuration"
	"github.com/scusemua/containers/common/types"
)

type node[T any] struct {
	payload T
}

// Queue implements a bounded first-in first-out (FIFO) queue backed by a dense array.
//
// The front of the queue is always slots[0]. Dequeue shifts the remaining entries one slot
// toward the front, so it is O(n) in the number of queued elements.
//
// Queue is not safe for concurrent use.
type Queue[T any] struct {
	slots     []*node[T]
	capacity  int
	currentsz int
	release   types.ReleaseFunc[T]

	destroyed bool

	log logger.Logger
}

// New creates a new Queue that holds at most capacity elements and returns a pointer to it.
//
// If release is nil, payloads are dropped without further cleanup on Clear and Destroy.
func New[T any](capacity int, release types.ReleaseFunc[T]) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "queue capacity must be positive (got %d)", capacity)
	}

	q := &Queue[T]{
		slots:    make([]*node[T], capacity),
		capacity: capacity,
		release:  types.ReleaseOrDefault(release),
	}
	config.InitLogger(&q.log, "Queue ")

	return q, nil
}

// NewFromOptions creates a new Queue whose capacity is taken from opts.
func NewFromOptions[T any](opts *configuration.ContainerOptions, release types.ReleaseFunc[T]) (*Queue[T], error) {
	if opts == nil {
		return nil, types.ErrNullPointer
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return New[T](opts.Capacity, release)
}

func (q *Queue[T]) valid() error {
	if q == nil {
		return types.ErrNullPointer
	}

	if q.destroyed {
		return types.ErrDestroyed
	}

	return nil
}

// Enqueue adds the specified element to the back of the queue.
func (q *Queue[T]) Enqueue(payload T) error {
	if err := q.valid(); err != nil {
		return err
	}

	if q.IsFull() {
		q.log.Debug("Rejecting enqueue: queue is at capacity (%d).", q.capacity)
		return errors.Wrapf(types.ErrOverflow, "queue at capacity %d", q.capacity)
	}

	if types.IsNil(payload) {
		return types.ErrNullData
	}

	q.slots[q.currentsz] = &node[T]{payload: payload}
	q.currentsz++

	return nil
}

// Dequeue removes and returns the element at the front of the queue.
//
// If the queue is empty, then Dequeue returns the zero value and false.
func (q *Queue[T]) Dequeue() (payload T, ok bool) {
	if q.IsEmpty() {
		return payload, false
	}

	front := q.slots[0]
	copy(q.slots, q.slots[1:q.currentsz])
	q.slots[q.currentsz-1] = nil
	q.currentsz--

	return front.payload, true
}

// Peek returns but does not remove the element at the front of the queue.
func (q *Queue[T]) Peek() (payload T, ok bool) {
	if q.IsEmpty() {
		return payload, false
	}

	return q.slots[0].payload, true
}

// IsFull returns true if the queue holds capacity elements. A nil or destroyed queue is never full.
func (q *Queue[T]) IsFull() bool {
	if q.valid() != nil {
		return false
	}

	return q.currentsz >= q.capacity
}

// IsEmpty returns true if the queue holds no elements. A nil or destroyed queue is always empty.
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Clear dequeues every element and invokes the release hook on each payload.
func (q *Queue[T]) Clear() error {
	if err := q.valid(); err != nil {
		return err
	}

	if q.IsEmpty() {
		return types.ErrUnderflow
	}

	q.drain()
	return nil
}

func (q *Queue[T]) drain() int {
	released := 0
	for !q.IsEmpty() {
		payload, _ := q.Dequeue()
		q.release(payload)
		released++
	}
	return released
}

// Destroy drains the queue, releasing every resident payload, then drops the slot storage
// and invalidates the queue.
func (q *Queue[T]) Destroy() error {
	if err := q.valid(); err != nil {
		return err
	}

	released := q.drain()
	q.slots = nil
	q.destroyed = true

	q.log.Debug("Destroyed queue with capacity %d; released %d payload(s).", q.capacity, released)
	return nil
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int {
	if q.valid() != nil {
		return 0
	}

	return q.currentsz
}

// Cap returns the maximum number of elements the queue can hold.
func (q *Queue[T]) Cap() int {
	if q == nil {
		return 0
	}

	return q.capacity
}
