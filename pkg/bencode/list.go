package bencode

import (
	"iter"
	"slices"
	"strings"
)

// List is an ordered sequence of value handles.
type List struct {
	items []Value
}

// NewList returns a list holding the given handles. It panics if any item
// is nil.
func NewList(items ...Value) *List {
	for i, item := range items {
		if item == nil {
			violation("NewList", ErrNilValue, "item %d", i)
		}
	}
	return &List{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Empty reports whether the list has no elements.
func (l *List) Empty() bool { return len(l.items) == 0 }

// Clear removes all elements.
func (l *List) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

// PushBack appends v. A list element must reference a value, so a nil v
// panics.
func (l *List) PushBack(v Value) {
	if v == nil {
		violation("PushBack", ErrNilValue, "cannot add a nil item to the list")
	}
	l.items = append(l.items, v)
}

// PopBack removes the last element. It panics on an empty list.
func (l *List) PopBack() {
	if len(l.items) == 0 {
		violation("PopBack", ErrEmptyList, "")
	}
	last := len(l.items) - 1
	l.items[last] = nil
	l.items = l.items[:last]
}

// Front returns the first element. It panics on an empty list.
func (l *List) Front() Value {
	if len(l.items) == 0 {
		violation("Front", ErrEmptyList, "")
	}
	return l.items[0]
}

// Back returns the last element. It panics on an empty list.
func (l *List) Back() Value {
	if len(l.items) == 0 {
		violation("Back", ErrEmptyList, "")
	}
	return l.items[len(l.items)-1]
}

// At returns the element at index i, which must be in [0, Len()).
func (l *List) At(i int) Value {
	l.checkIndex("At", i)
	return l.items[i]
}

// Set replaces the element at index i with v.
func (l *List) Set(i int, v Value) {
	l.checkIndex("Set", i)
	if v == nil {
		violation("Set", ErrNilValue, "index %d", i)
	}
	l.items[i] = v
}

func (l *List) checkIndex(op string, i int) {
	if i < 0 || i >= len(l.items) {
		violation(op, ErrIndexOutOfRange, "index %d, length %d", i, len(l.items))
	}
}

// Item returns the element at index i narrowed to T. It reports false
// when the element has a different kind. The index is bounds-checked
// like At.
func Item[T Value](l *List, i int) (T, bool) {
	return As[T](l.At(i))
}

// Shuffler produces random permutations. *math/rand/v2.Rand and
// *math/rand.Rand satisfy it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Shuffle permutes the elements in place using r.
func (l *List) Shuffle(r Shuffler) {
	r.Shuffle(len(l.items), func(i, j int) {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	})
}

// Extend appends the handles of other to l. The elements are shared, not
// copied, and other is left unchanged. Extending a list with itself
// doubles it.
func (l *List) Extend(other *List) {
	src := other.items
	l.items = slices.Grow(l.items, len(src))
	l.items = append(l.items, src...)
}

// Normalize converts a possibly negative index into a position:
// negative values count back from length, so -1 is length-1.
// Non-negative values are returned unchanged.
func Normalize(index, length int) int {
	if index < 0 {
		return length + index
	}
	return index
}

// bounds normalizes [start, end) against the current length and panics
// unless 0 <= start <= end <= length.
func (l *List) bounds(op string, start, end int) (int, int) {
	n := len(l.items)
	s, e := Normalize(start, n), Normalize(end, n)
	if s < 0 || s > n || e > n || s > e {
		violation(op, ErrInvalidRange, "[%d:%d] normalized to [%d:%d], length %d", start, end, s, e, n)
	}
	return s, e
}

// Range returns a new list holding the elements from start to the end.
// See RangeTo.
func (l *List) Range(start int) *List {
	return l.RangeTo(start, len(l.items))
}

// RangeTo returns a new list holding the elements in [start, end).
// Negative bounds are normalized with Normalize before slicing. An empty
// list yields an empty list for any bounds; otherwise the normalized
// bounds must satisfy 0 <= start <= end <= Len().
func (l *List) RangeTo(start, end int) *List {
	if len(l.items) == 0 {
		return NewList()
	}
	s, e := l.bounds("Range", start, end)
	return &List{items: slices.Clone(l.items[s:e])}
}

// EraseRange removes the elements from start to the end. See
// EraseRangeTo.
func (l *List) EraseRange(start int) {
	l.EraseRangeTo(start, len(l.items))
}

// EraseRangeTo removes the elements in [start, end) in place. It accepts
// and validates bounds exactly like RangeTo, and is a no-op on an empty
// list.
func (l *List) EraseRangeTo(start, end int) {
	if len(l.items) == 0 {
		return
	}
	s, e := l.bounds("EraseRange", start, end)
	l.items = slices.Delete(l.items, s, e)
}

// Items returns a copy of the element handles.
func (l *List) Items() []Value {
	return slices.Clone(l.items)
}

// All iterates over index/element pairs in order.
func (l *List) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Kind returns KindList.
func (*List) Kind() Kind { return KindList }

// Accept calls v.VisitList.
func (l *List) Accept(v Visitor) { v.VisitList(l) }

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(stringOf(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (*List) bencodeValue() {}
