package hashmap

import (
	"math"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"

	"github.com/scusemua/containers/common/configuration"
	"github.com/scusemua/containers/common/types"
)

type entry[T any] struct {
	key     string
	payload T
	next    *entry[T]
}

// TableOption configures a Table at construction time.
type TableOption func(*tableOptions)

type tableOptions struct {
	hash HashFunc
}

// WithHashFunc replaces the default Polynomial bucket hash.
func WithHashFunc(hash HashFunc) TableOption {
	return func(o *tableOptions) {
		if hash != nil {
			o.hash = hash
		}
	}
}

// Table is a fixed-size hash table with string keys and separate chaining.
//
// Keys are not unique. Adding a key that is already present creates a second entry, and
// Lookup and Remove act on the earliest one. The bucket count never changes.
//
// Table is not safe for concurrent use.
type Table[T any] struct {
	buckets []*entry[T]
	size    uint32
	count   int
	hash    HashFunc
	release types.ReleaseFunc[T]

	destroyed bool

	log logger.Logger
}

// New creates a Table with bucketCount empty chains.
// If release is nil, cleared payloads are simply dropped.
func New[T any](bucketCount int, release types.ReleaseFunc[T], opts ...TableOption) (*Table[T], error) {
	if bucketCount <= 0 {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "bucket count must be positive (got %d)", bucketCount)
	}

	if uint64(bucketCount) > math.MaxUint32 {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "bucket count %d exceeds %d", bucketCount, uint64(math.MaxUint32))
	}

	o := &tableOptions{hash: Polynomial}
	for _, opt := range opts {
		opt(o)
	}

	table := &Table[T]{
		buckets: make([]*entry[T], bucketCount),
		size:    uint32(bucketCount),
		hash:    o.hash,
		release: types.ReleaseOrDefault(release),
	}
	config.InitLogger(&table.log, "HashTable ")

	return table, nil
}

// NewFromOptions creates a Table using the BucketCount and HashFunction of opts.
func NewFromOptions[T any](opts *configuration.ContainerOptions, release types.ReleaseFunc[T]) (*Table[T], error) {
	if opts == nil {
		return nil, types.ErrNullPointer
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hash := Polynomial
	if opts.HashFunction == configuration.HashFunctionSHA3 {
		hash = SHA3Hash
	}

	return New[T](opts.BucketCount, release, WithHashFunc(hash))
}

func (t *Table[T]) valid() error {
	if t == nil {
		return types.ErrNullPointer
	}

	if t.destroyed {
		return types.ErrDestroyed
	}

	return nil
}

func (t *Table[T]) index(key string) uint32 {
	return t.hash(key, t.size) % t.size
}

// Add appends payload under key to the end of the key's bucket chain.
func (t *Table[T]) Add(payload T, key string) error {
	if err := t.valid(); err != nil {
		return err
	}

	if types.IsNil(payload) {
		return errors.Wrapf(types.ErrNullData, "cannot add absent payload under key \"%s\"", key)
	}

	idx := t.index(key)
	e := &entry[T]{key: key, payload: payload}

	if t.buckets[idx] == nil {
		t.buckets[idx] = e
	} else {
		current := t.buckets[idx]
		for current.next != nil {
			current = current.next
		}
		current.next = e
	}

	t.count++
	return nil
}

// Lookup returns the payload of the first entry stored under key.
func (t *Table[T]) Lookup(key string) (payload T, ok bool) {
	if t.valid() != nil {
		return payload, false
	}

	for current := t.buckets[t.index(key)]; current != nil; current = current.next {
		if current.key == key {
			return current.payload, true
		}
	}

	return payload, false
}

// Remove unlinks the first entry stored under key and hands its payload back to the
// caller. The release hook is not invoked.
func (t *Table[T]) Remove(key string) (payload T, err error) {
	if err = t.valid(); err != nil {
		return payload, err
	}

	idx := t.index(key)

	var previous *entry[T]
	current := t.buckets[idx]
	for current != nil && current.key != key {
		previous = current
		current = current.next
	}

	if current == nil {
		t.log.Debug("Cannot remove key \"%s\": no entry in bucket %d.", key, idx)
		return payload, errors.Wrapf(types.ErrItemNotFound, "key \"%s\"", key)
	}

	if previous == nil {
		t.buckets[idx] = current.next
	} else {
		previous.next = current.next
	}

	t.count--
	return current.payload, nil
}

// Clear removes every entry and invokes the release hook on each payload.
func (t *Table[T]) Clear() error {
	if err := t.valid(); err != nil {
		return err
	}

	t.clear()
	return nil
}

func (t *Table[T]) clear() int {
	released := 0
	for i, current := range t.buckets {
		for current != nil {
			next := current.next
			t.release(current.payload)
			current.next = nil
			current = next
			released++
		}
		t.buckets[i] = nil
	}

	t.count = 0
	return released
}

// Destroy clears the table, drops its bucket storage, and invalidates it.
func (t *Table[T]) Destroy() error {
	if err := t.valid(); err != nil {
		return err
	}

	released := t.clear()
	t.buckets = nil
	t.destroyed = true

	t.log.Debug("Destroyed hash table with %d bucket(s); released %d payload(s).", t.size, released)
	return nil
}

// Range calls cb for each entry in bucket order, then chain order, until cb returns false.
func (t *Table[T]) Range(cb func(key string, payload T) bool) {
	if t.valid() != nil || cb == nil {
		return
	}

	for _, current := range t.buckets {
		for ; current != nil; current = current.next {
			if !cb(current.key, current.payload) {
				return
			}
		}
	}
}

// BucketLen returns the length of chain i, or 0 if i is out of range.
func (t *Table[T]) BucketLen(i int) int {
	if t.valid() != nil || i < 0 || i >= len(t.buckets) {
		return 0
	}

	n := 0
	for current := t.buckets[i]; current != nil; current = current.next {
		n++
	}
	return n
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	if t.valid() != nil {
		return 0
	}
	return t.count
}

// Size returns the bucket count.
func (t *Table[T]) Size() int {
	if t == nil {
		return 0
	}
	return int(t.size)
}

func (t *Table[T]) IsEmpty() bool {
	return t.Len() == 0
}
