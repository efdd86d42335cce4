package bencode

import "strconv"

// Integer is a signed integer value. The wire format allows arbitrary
// precision; this model holds the int64 range.
type Integer struct {
	value int64
}

// NewInteger returns a new integer handle.
func NewInteger(v int64) *Integer {
	return &Integer{value: v}
}

// Value returns the integer.
func (i *Integer) Value() int64 { return i.value }

// SetValue replaces the integer.
func (i *Integer) SetValue(v int64) { i.value = v }

// Kind returns KindInteger.
func (*Integer) Kind() Kind { return KindInteger }

// Accept calls v.VisitInteger.
func (i *Integer) Accept(v Visitor) { v.VisitInteger(i) }

func (i *Integer) String() string { return strconv.FormatInt(i.value, 10) }

func (*Integer) bencodeValue() {}
