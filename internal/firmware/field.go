package firmware

import (
	"hash"
	"strconv"
)

const (
	unsetTag byte = 0x00
	setTag   byte = 0x01
)

// Field is an optional text field. Unset is a state of its own, distinct from the empty string.
type Field struct {
	text string
	set  bool
}

// Set returns a field holding text.
func Set(text string) Field {
	return Field{text: text, set: true}
}

// Unset returns a field holding no value.
func Unset() Field {
	return Field{}
}

// FieldFrom returns Set(*text), or Unset() for a nil pointer.
func FieldFrom(text *string) Field {
	if text == nil {
		return Unset()
	}

	return Set(*text)
}

// IsSet reports whether the field holds a value.
func (field Field) IsSet() bool {
	return field.set
}

// Text returns the field's value, or "" when unset.
func (field Field) Text() string {
	return field.text
}

// Equal reports whether both fields are unset, or both set to the same text.
func (field Field) Equal(other Field) bool {
	return field.set == other.set && field.text == other.text
}

func (field Field) String() string {
	if !field.set {
		return "<unset>"
	}

	return strconv.Quote(field.text)
}

// writeTo feeds the field's digest encoding to h: a single unset tag byte, or the set tag
// followed by `<len>:<text>`.
func (field Field) writeTo(h hash.Hash) {
	if !field.set {
		h.Write([]byte{unsetTag})
		return
	}

	h.Write([]byte{setTag})
	h.Write([]byte(strconv.Itoa(len(field.text))))
	h.Write([]byte{':'})
	h.Write([]byte(field.text))
}
