package bencode

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewList(t *testing.T) {
	l := NewList()
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())

	items := strs("a", "b")
	l = NewList(items...)
	assert.Equal(t, 2, l.Len())
	assert.Same(t, items[0], l.Front())

	// Later changes to the argument slice do not affect the list.
	items[0] = NewInteger(1)
	assert.IsType(t, &String{}, l.Front())
}

func TestNewListRejectsNil(t *testing.T) {
	requireViolation(t, ErrNilValue, func() {
		NewList(NewInteger(1), nil)
	})
}

func TestPushBack(t *testing.T) {
	l := NewList()
	a := NewInteger(1)
	b := NewStringFromText("b")
	l.PushBack(a)
	l.PushBack(b)

	assert.Equal(t, 2, l.Len())
	assert.Same(t, a, l.Front())
	assert.Same(t, b, l.Back())
}

func TestPushBackNilPanics(t *testing.T) {
	l := NewList()
	requireViolation(t, ErrNilValue, func() { l.PushBack(nil) })
	assert.Equal(t, 0, l.Len())
}

func TestPopBack(t *testing.T) {
	l := NewList(strs("a", "b", "c")...)
	l.PopBack()
	assert.Equal(t, []string{"a", "b"}, texts(l))
	l.PopBack()
	l.PopBack()
	assert.True(t, l.Empty())
}

func TestEmptyListAccessPanics(t *testing.T) {
	l := NewList()
	requireViolation(t, ErrEmptyList, func() { l.PopBack() })
	requireViolation(t, ErrEmptyList, func() { l.Front() })
	requireViolation(t, ErrEmptyList, func() { l.Back() })
}

func TestAt(t *testing.T) {
	l := NewList(strs("a", "b", "c")...)
	assert.Equal(t, "b", l.At(1).(*String).Text())

	requireViolation(t, ErrIndexOutOfRange, func() { l.At(3) })
	requireViolation(t, ErrIndexOutOfRange, func() { l.At(-1) })
}

func TestSet(t *testing.T) {
	l := NewList(strs("a", "b")...)
	n := NewInteger(5)
	l.Set(1, n)
	assert.Same(t, n, l.At(1))

	requireViolation(t, ErrIndexOutOfRange, func() { l.Set(2, n) })
	requireViolation(t, ErrNilValue, func() { l.Set(0, nil) })
}

func TestItem(t *testing.T) {
	l := NewList(NewInteger(4), NewStringFromText("x"))

	i, ok := Item[*Integer](l, 0)
	require.True(t, ok)
	assert.Equal(t, int64(4), i.Value())

	_, ok = Item[*Integer](l, 1)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	l := NewList(strs("a", "b")...)
	l.Clear()
	assert.True(t, l.Empty())
	l.PushBack(NewInteger(1))
	assert.Equal(t, 1, l.Len())
}

func TestElementsAreShared(t *testing.T) {
	shared := NewInteger(1)
	l1 := NewList(shared)
	l2 := NewList(shared)

	l1.At(0).(*Integer).SetValue(99)
	assert.Equal(t, int64(99), l2.At(0).(*Integer).Value())
}

func TestExtend(t *testing.T) {
	l1 := NewList(strs("a", "b")...)
	l2 := NewList(strs("c", "d", "e")...)
	first := l1.Front()

	l1.Extend(l2)

	assert.Equal(t, 5, l1.Len())
	assert.Same(t, first, l1.At(0))
	for i := 0; i < l2.Len(); i++ {
		assert.Same(t, l2.At(i), l1.At(2+i))
	}
	assert.Equal(t, []string{"c", "d", "e"}, texts(l2))
}

func TestExtendTwiceAndSelf(t *testing.T) {
	l := NewList(strs("abcd", "1234", "xxx", "yyy")...)
	other := NewList(strs("zzzabcd", "zzz1234")...)
	l.Extend(other)
	l.Extend(other)
	assert.Equal(t, 8, l.Len())

	self := NewList(strs("a", "b")...)
	self.Extend(self)
	assert.Equal(t, []string{"a", "b", "a", "b"}, texts(self))
}

func TestShufflePreservesElements(t *testing.T) {
	items := strs("a", "b", "c", "d", "e", "f", "g", "h")
	l := NewList(items...)

	l.Shuffle(rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, len(items), l.Len())
	assert.ElementsMatch(t, items, l.Items())
}

func TestShuffleIsReproducibleWithSeed(t *testing.T) {
	a := NewList(strs("a", "b", "c", "d", "e", "f", "g", "h")...)
	b := NewList(a.Items()...)

	a.Shuffle(rand.New(rand.NewPCG(42, 7)))
	b.Shuffle(rand.New(rand.NewPCG(42, 7)))

	assert.Equal(t, a.Items(), b.Items())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		index, length, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 4},
		{-1, 4, 3},
		{-4, 4, 0},
		{-5, 4, -1},
		{-1, 0, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.index, tt.length), "Normalize(%d, %d)", tt.index, tt.length)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       []string
	}{
		{"drop last", 0, -1, []string{"a", "b", "c"}},
		{"whole list", 0, 4, []string{"a", "b", "c", "d"}},
		{"middle", 1, 3, []string{"b", "c"}},
		{"negative both", -3, -1, []string{"b", "c"}},
		{"empty interval", 2, 2, []string{}},
		{"start at end", 4, 4, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList(strs("a", "b", "c", "d")...)
			got := l.RangeTo(tt.start, tt.end)
			assert.Equal(t, tt.want, texts(got))
			assert.Equal(t, 4, l.Len())
		})
	}
}

func TestRangeFromStart(t *testing.T) {
	l := NewList(strs("a", "b", "c", "d")...)
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts(l.Range(-4)))
	assert.Equal(t, []string{"c", "d"}, texts(l.Range(2)))
	assert.Equal(t, []string{"d"}, texts(l.Range(-1)))
}

func TestRangeIsIndependent(t *testing.T) {
	l := NewList(strs("a", "b", "c")...)
	sub := l.Range(0)
	sub.PopBack()
	l.PushBack(NewInteger(1))

	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, 4, l.Len())
	assert.Same(t, l.At(0), sub.At(0))
}

func TestRangeOnEmptyList(t *testing.T) {
	l := NewList()
	assert.True(t, l.RangeTo(5, -7).Empty())
	assert.True(t, l.Range(-3).Empty())
}

func TestRangeInvalidBounds(t *testing.T) {
	l := NewList(strs("a", "b", "c", "d")...)
	requireViolation(t, ErrInvalidRange, func() { l.Range(5) })
	requireViolation(t, ErrInvalidRange, func() { l.RangeTo(3, 1) })
	requireViolation(t, ErrInvalidRange, func() { l.RangeTo(-1, -2) })
	requireViolation(t, ErrInvalidRange, func() { l.RangeTo(0, 9) })
	requireViolation(t, ErrInvalidRange, func() { l.Range(-5) })
}

func TestEraseRange(t *testing.T) {
	l := NewList(strs("a", "b", "c", "d")...)
	l.EraseRangeTo(-3, -1)
	assert.Equal(t, []string{"a", "d"}, texts(l))
	assert.Equal(t, 2, l.Len())
}

func TestEraseRangeToEnd(t *testing.T) {
	l := NewList(strs("a", "b", "c", "d")...)
	l.EraseRange(1)
	assert.Equal(t, []string{"a"}, texts(l))

	l = NewList(strs("a", "b", "c", "d")...)
	l.EraseRange(-2)
	assert.Equal(t, []string{"a", "b"}, texts(l))
}

func TestEraseRangeEmptyIsNoop(t *testing.T) {
	l := NewList()
	l.EraseRangeTo(3, 1)
	l.EraseRange(-1)
	assert.True(t, l.Empty())
}

func TestEraseRangeInvalidBounds(t *testing.T) {
	l := NewList(strs("a", "b", "c", "d")...)
	requireViolation(t, ErrInvalidRange, func() { l.EraseRange(5) })
	requireViolation(t, ErrInvalidRange, func() { l.EraseRangeTo(3, 1) })
	requireViolation(t, ErrInvalidRange, func() { l.EraseRangeTo(0, 10) })
	assert.Equal(t, 4, l.Len())
}

func TestListAllStopsEarly(t *testing.T) {
	l := NewList(strs("a", "b", "c")...)
	var seen []int
	for i := range l.All() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestListString(t *testing.T) {
	l := NewList(NewInteger(1), NewStringFromText("x"), NewList())
	assert.Equal(t, `[1, "x", []]`, l.String())
}
