package bencode

import (
	"bytes"
	"strconv"
)

// String is a byte-string value. The content is an owned buffer; two
// Strings with equal content are interchangeable as dictionary keys.
type String struct {
	value []byte
}

// NewString returns a String holding a copy of b.
func NewString(b []byte) *String {
	return &String{value: bytes.Clone(nonNil(b))}
}

// NewStringFromText returns a String holding the bytes of s.
func NewStringFromText(s string) *String {
	return &String{value: []byte(s)}
}

// Value returns the owned content. The slice is shared with the String,
// not copied; callers must not modify it. Use SetValue to replace content.
func (s *String) Value() []byte { return s.value }

// SetValue replaces the content with a copy of b.
func (s *String) SetValue(b []byte) {
	s.value = bytes.Clone(nonNil(b))
}

// Len returns the number of bytes.
func (s *String) Len() int { return len(s.value) }

// Text returns the content as a Go string.
func (s *String) Text() string { return string(s.value) }

// Key returns the content as a dictionary key.
func (s *String) Key() string { return string(s.value) }

// Compare compares content byte-wise. The result is 0 if s == o,
// -1 if s < o and +1 if s > o.
func (s *String) Compare(o *String) int {
	return bytes.Compare(s.value, o.value)
}

// Equal reports whether s and o hold the same bytes.
func (s *String) Equal(o *String) bool {
	return bytes.Equal(s.value, o.value)
}

// Kind returns KindString.
func (*String) Kind() Kind { return KindString }

// Accept calls v.VisitString.
func (s *String) Accept(v Visitor) { v.VisitString(s) }

func (s *String) String() string { return strconv.Quote(string(s.value)) }

func (*String) bencodeValue() {}

// nonNil maps nil to an empty slice so Value never returns nil.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
