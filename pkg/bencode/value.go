package bencode

import "fmt"

// Kind identifies one of the four bencode value kinds.
type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindString
	KindList
	KindDictionary
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a bencode value. The set of implementations is closed:
// *Integer, *String, *List and *Dictionary.
type Value interface {
	// Kind returns the concrete kind of the value.
	Kind() Kind

	// Accept calls the visitor handler matching the concrete kind.
	Accept(v Visitor)

	bencodeValue()
}

// Visitor traverses a value tree without type assertions. Adding a kind
// to the model means adding a handler here.
type Visitor interface {
	VisitInteger(i *Integer)
	VisitString(s *String)
	VisitList(l *List)
	VisitDictionary(d *Dictionary)
}

// As narrows v to the concrete handle type T. It reports false when v is
// nil or holds a different kind.
func As[T Value](v Value) (T, bool) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return t, true
}

// Compile-time interface satisfaction checks.
var (
	_ Value = (*Integer)(nil)
	_ Value = (*String)(nil)
	_ Value = (*List)(nil)
	_ Value = (*Dictionary)(nil)
)
