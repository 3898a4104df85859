// Package attr implements attributed values: configuration values that remember the scope defining them.
//
// Whether a scope defined a value itself or inherited it is decided by the value's revision stamp,
// never by comparing the values. An inheriting scope copies the value with its stamp, an overriding
// scope creates a new value with a fresh stamp, even when the text is the same.
package attr

// Sequence hands out revision stamps. One Sequence belongs to one tree build; it is not safe for concurrent use.
type Sequence struct {
	last uint64
}

// Next returns a stamp never returned before by this sequence. Stamps start at 1.
func (seq *Sequence) Next() uint64 {
	seq.last++
	return seq.last
}

// Value is a configuration value defined at Origin. The zero Value is unset.
type Value[T any] struct {
	Value    T
	Origin   string
	Revision uint64
}

// New creates a value defined at origin, stamped with the next revision of seq.
func New[T any](seq *Sequence, value T, origin string) Value[T] {
	return Value[T]{
		Value:    value,
		Origin:   origin,
		Revision: seq.Next(),
	}
}

// IsSet reports whether the value was ever defined.
func (val Value[T]) IsSet() bool {
	return val.Revision != 0
}

// SameDefinition reports whether val and other come from the same definition.
func (val Value[T]) SameDefinition(other Value[T]) bool {
	return val.Revision == other.Revision
}
