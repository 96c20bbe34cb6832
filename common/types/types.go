package types

import "reflect"

// ReleaseFunc is invoked on a payload when a container gives up its last reference to it
// during Clear or Destroy.
type ReleaseFunc[T any] func(T)

// NoRelease is the default ReleaseFunc. The garbage collector reclaims the payload once
// the caller drops it too.
func NoRelease[T any](T) {}

// ReleaseOrDefault returns release, or NoRelease if release is nil.
func ReleaseOrDefault[T any](release ReleaseFunc[T]) ReleaseFunc[T] {
	if release == nil {
		return NoRelease[T]
	}
	return release
}

// IsNil reports whether v is an absent payload. That covers a nil interface and a nil
// pointer, map, slice, channel, func, or unsafe pointer.
func IsNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
