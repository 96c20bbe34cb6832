package list

import (
	"reflect"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/scusemua/containers/common/types"
)

// CompareFunc reports whether a stored payload matches the search value.
type CompareFunc[T any] func(search, payload T) bool

// LessFunc orders payloads for Sort.
type LessFunc[T any] func(a, b T) bool

// DefaultCompare matches two payloads when their dynamic values are comparable and equal.
// For pointer payloads that is reference equality. Payloads of non-comparable types never match.
func DefaultCompare[T any](search, payload T) bool {
	a, b := any(search), any(payload)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}

	return a == b
}

// Node is one element of a List. The list owns the node; the payload belongs to the caller.
type Node[T any] struct {
	position int
	payload  T
	next     *Node[T]
}

// Position returns the node's 0-based index from the head of its list.
func (n *Node[T]) Position() int {
	return n.position
}

func (n *Node[T]) Payload() T {
	return n.payload
}

// Next returns the following node, or nil at the tail or once the node has been popped.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// List is a singly-linked list with head and tail references, positional indexing,
// search, and an in-place bubble sort.
//
// List is not safe for concurrent use.
type List[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int

	release types.ReleaseFunc[T]
	compare CompareFunc[T]
	less    LessFunc[T]

	deleted bool

	log logger.Logger
}

// New creates an empty list. A nil release drops payloads on Delete; a nil compare
// falls back to DefaultCompare. Sort requires an ordering installed with SetLess.
func New[T any](release types.ReleaseFunc[T], compare CompareFunc[T]) *List[T] {
	if compare == nil {
		compare = DefaultCompare[T]
	}

	list := &List[T]{
		release: types.ReleaseOrDefault(release),
		compare: compare,
	}
	config.InitLogger(&list.log, "List ")

	return list
}

// NewOrdered creates a list of ordered payloads that compares with == and sorts ascending.
func NewOrdered[T constraints.Ordered](release types.ReleaseFunc[T]) *List[T] {
	list := New[T](release, func(search, payload T) bool { return search == payload })
	list.less = func(a, b T) bool { return a < b }
	return list
}

// SetLess installs the ordering used by Sort.
func (l *List[T]) SetLess(less LessFunc[T]) {
	if l == nil {
		return
	}
	l.less = less
}

func (l *List[T]) valid() error {
	if l == nil {
		return types.ErrNullPointer
	}

	if l.deleted {
		return types.ErrDestroyed
	}

	return nil
}

func (l *List[T]) renumber() {
	pos := 0
	for current := l.head; current != nil; current = current.next {
		current.position = pos
		pos++
	}
}

// PushHead inserts payload at the head of the list and renumbers every node.
func (l *List[T]) PushHead(payload T) error {
	if err := l.valid(); err != nil {
		return err
	}

	l.pushHead(payload)
	return nil
}

func (l *List[T]) pushHead(payload T) {
	node := &Node[T]{payload: payload, next: l.head}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.size++

	l.renumber()
}

// PushTail appends payload at the tail of the list.
func (l *List[T]) PushTail(payload T) error {
	if err := l.valid(); err != nil {
		return err
	}

	node := &Node[T]{position: l.size, payload: payload}
	if l.tail != nil {
		l.tail.next = node
	}
	l.tail = node
	if l.head == nil {
		l.head = node
	}
	l.size++

	return nil
}

// PopHead unlinks and returns the head node, or nil if the list is empty.
func (l *List[T]) PopHead() *Node[T] {
	if l.valid() != nil || l.head == nil {
		return nil
	}

	popped := l.head
	l.head = popped.next
	popped.next = nil
	l.size--

	if l.size == 0 {
		l.head, l.tail = nil, nil
	}

	l.renumber()
	return popped
}

// PopTail unlinks and returns the tail node, or nil if the list is empty.
// It walks from the head to find the new tail.
func (l *List[T]) PopTail() *Node[T] {
	if l.valid() != nil || l.head == nil {
		return nil
	}

	popped := l.tail
	if l.size == 1 {
		l.head, l.tail = nil, nil
	} else {
		current := l.head
		for current.next != nil && current.next != l.tail {
			current = current.next
		}
		current.next = nil
		l.tail = current
	}
	l.size--

	return popped
}

func (l *List[T]) PeekHead() *Node[T] {
	if l.valid() != nil {
		return nil
	}
	return l.head
}

func (l *List[T]) PeekTail() *Node[T] {
	if l.valid() != nil {
		return nil
	}
	return l.tail
}

// At returns the node at position, or nil if position is out of range.
func (l *List[T]) At(position int) *Node[T] {
	if l.valid() != nil || position < 0 || position >= l.size {
		return nil
	}

	if position == l.size-1 {
		return l.tail
	}

	current := l.head
	for current.position != position {
		current = current.next
	}
	return current
}

// Remove unlinks the first node whose payload matches payload. The payload is not released.
func (l *List[T]) Remove(payload T) error {
	if err := l.valid(); err != nil {
		return err
	}

	if l.head == nil {
		return types.ErrEmptyList
	}

	if types.IsNil(payload) {
		return types.ErrNullData
	}

	var previous *Node[T]
	current := l.head
	for current != nil && !l.compare(payload, current.payload) {
		previous = current
		current = current.next
	}

	if current == nil {
		l.log.Debug("Cannot remove payload %v: no matching node among %d.", payload, l.size)
		return errors.Wrapf(types.ErrItemNotFound, "no node matches %v", payload)
	}

	switch {
	case current == l.head && current == l.tail:
		l.head, l.tail = nil, nil
	case current == l.head:
		l.head = current.next
	case current == l.tail:
		previous.next = nil
		l.tail = previous
	default:
		previous.next = current.next
	}

	current.next = nil
	l.size--

	l.renumber()
	return nil
}

// ForEach applies action to every node from head to tail.
func (l *List[T]) ForEach(action func(*Node[T])) error {
	if err := l.valid(); err != nil {
		return err
	}

	if action == nil {
		return errors.Wrap(types.ErrNullData, "nil action")
	}

	if l.head == nil {
		return types.ErrEmptyList
	}

	for current := l.head; current != nil; current = current.next {
		action(current)
	}

	return nil
}

// FindFirst returns the first node whose payload matches search.
func (l *List[T]) FindFirst(search T) *Node[T] {
	if l.valid() != nil || l.head == nil || types.IsNil(search) {
		return nil
	}

	for current := l.head; current != nil; current = current.next {
		if l.compare(search, current.payload) {
			return current
		}
	}

	return nil
}

// FindAll returns a new list holding every payload that matches search. Each match is
// pushed onto the head of the result, so matches appear in reverse order.
//
// The payloads are shared with l. The result does not release them on Delete.
func (l *List[T]) FindAll(search T) *List[T] {
	if l.valid() != nil || l.head == nil || types.IsNil(search) {
		return nil
	}

	found := New[T](nil, l.compare)
	found.less = l.less

	for current := l.head; current != nil; current = current.next {
		if l.compare(search, current.payload) {
			found.pushHead(current.payload)
		}
	}

	return found
}

// Sort orders the payloads in place with a bubble sort. Nodes keep their positions;
// only payloads move between them.
func (l *List[T]) Sort() error {
	if err := l.valid(); err != nil {
		return err
	}

	if l.head == nil {
		return types.ErrEmptyList
	}

	if l.less == nil {
		return errors.Wrap(types.ErrInvalidArgument, "no ordering installed")
	}

	var lastSorted *Node[T]
	for swapped := true; swapped; {
		swapped = false

		current := l.head
		for current.next != lastSorted {
			if l.less(current.next.payload, current.payload) {
				current.payload, current.next.payload = current.next.payload, current.payload
				swapped = true
			}
			current = current.next
		}
		lastSorted = current
	}

	return nil
}

// Clear drops every node. Payloads are not released.
func (l *List[T]) Clear() error {
	if err := l.valid(); err != nil {
		return err
	}

	if l.head == nil {
		return types.ErrEmptyList
	}

	l.unlinkAll(nil)
	return nil
}

func (l *List[T]) unlinkAll(release types.ReleaseFunc[T]) int {
	n := 0
	current := l.head
	for current != nil {
		next := current.next
		if release != nil {
			release(current.payload)
		}
		current.next = nil
		current = next
		n++
	}

	l.head, l.tail = nil, nil
	l.size = 0
	return n
}

// Delete releases every resident payload, drops the nodes, and invalidates the list.
func (l *List[T]) Delete() error {
	if err := l.valid(); err != nil {
		return err
	}

	released := l.unlinkAll(l.release)
	l.deleted = true

	l.log.Debug("Deleted list; released %d payload(s).", released)
	return nil
}

// Values returns the payloads from head to tail.
func (l *List[T]) Values() []T {
	if l.valid() != nil {
		return nil
	}

	values := make([]T, 0, l.size)
	for current := l.head; current != nil; current = current.next {
		values = append(values, current.payload)
	}
	return values
}

func (l *List[T]) Len() int {
	if l.valid() != nil {
		return 0
	}
	return l.size
}

func (l *List[T]) IsEmpty() bool {
	return l.Len() == 0
}
