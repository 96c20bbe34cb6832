package stack

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

// Stack represents a bounded stack data structure backed by a dense array.
// The top of the stack is always slots[currentsz-1].
//
// Stack is not safe for concurrent use.
type Stack[T any] struct {
	slots     []*node[T]
	capacity  int
	currentsz int
	release   types.ReleaseFunc[T]

	destroyed bool

	log logger.Logger
}

// New creates a Stack that holds at most capacity elements.
//
// If release is nil, payloads are dropped without further cleanup on Clear and Destroy.
func New[T any](capacity int, release types.ReleaseFunc[T]) (*Stack[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "stack capacity must be positive (got %d)", capacity)
	}

	s := &Stack[T]{
		slots:    make([]*node[T], capacity),
		capacity: capacity,
		release:  types.ReleaseOrDefault(release),
	}
	config.InitLogger(&s.log, "Stack ")

	return s, nil
}

// NewFromOptions creates a Stack whose capacity is taken from opts.
func NewFromOptions[T any](opts *configuration.ContainerOptions, release types.ReleaseFunc[T]) (*Stack[T], error) {
	if opts == nil {
		return nil, types.ErrNullPointer
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return New[T](opts.Capacity, release)
}

func (s *Stack[T]) valid() error {
	if s == nil {
		return types.ErrNullPointer
	}

	if s.destroyed {
		return types.ErrDestroyed
	}

	return nil
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(payload T) error {
	if err := s.valid(); err != nil {
		return err
	}

	if types.IsNil(payload) {
		return types.ErrNullData
	}

	if s.IsFull() {
		s.log.Debug("Rejecting push: stack is at capacity (%d).", s.capacity)
		return errors.Wrapf(types.ErrOverflow, "stack at capacity %d", s.capacity)
	}

	s.slots[s.currentsz] = &node[T]{payload: payload}
	s.currentsz++

	return nil
}

// Pop removes and returns the top element of the stack. It returns an error if the stack is empty.
func (s *Stack[T]) Pop() (payload T, err error) {
	if err = s.valid(); err != nil {
		return payload, err
	}

	if s.currentsz == 0 {
		return payload, errors.Wrap(types.ErrUnderflow, "stack is empty")
	}

	top := s.slots[s.currentsz-1]
	s.slots[s.currentsz-1] = nil
	s.currentsz--

	return top.payload, nil
}

// Peek returns the top element of the stack without removing it. It returns an error if the stack is empty.
func (s *Stack[T]) Peek() (payload T, err error) {
	if err = s.valid(); err != nil {
		return payload, err
	}

	if s.currentsz == 0 {
		return payload, errors.Wrap(types.ErrUnderflow, "stack is empty")
	}

	return s.slots[s.currentsz-1].payload, nil
}

// Clear pops every element and invokes the release hook on each payload.
func (s *Stack[T]) Clear() error {
	if err := s.valid(); err != nil {
		return err
	}

	if s.IsEmpty() {
		return types.ErrUnderflow
	}

	s.drain()
	return nil
}

func (s *Stack[T]) drain() int {
	released := 0
	for s.currentsz > 0 {
		payload, _ := s.Pop()
		s.release(payload)
		released++
	}
	return released
}

// Destroy drains the stack, releasing every resident payload, and invalidates it.
func (s *Stack[T]) Destroy() error {
	if err := s.valid(); err != nil {
		return err
	}

	released := s.drain()
	s.slots = nil
	s.destroyed = true

	s.log.Debug("Destroyed stack with capacity %d; released %d payload(s).", s.capacity, released)
	return nil
}

// IsFull checks if the stack holds capacity elements
func (s *Stack[T]) IsFull() bool {
	if s.valid() != nil {
		return false
	}

	return s.currentsz >= s.capacity
}

// IsEmpty checks if the stack is empty
func (s *Stack[T]) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of elements in the stack
func (s *Stack[T]) Len() int {
	if s.valid() != nil {
		return 0
	}

	return s.currentsz
}

func (s *Stack[T]) Cap() int {
	if s == nil {
		return 0
	}

	return s.capacity
}
