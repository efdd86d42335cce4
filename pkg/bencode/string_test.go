package bencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStringCopiesInput(t *testing.T) {
	buf := []byte("spam")
	s := NewString(buf)
	buf[0] = 'x'

	assert.Equal(t, []byte("spam"), s.Value())
	assert.Equal(t, 4, s.Len())
}

func TestStringSetValue(t *testing.T) {
	s := NewStringFromText("spam")
	next := []byte("eggs and ham")
	s.SetValue(next)
	next[0] = 'x'

	assert.Equal(t, "eggs and ham", s.Text())
	assert.Equal(t, 12, s.Len())
}

func TestStringValueIsShared(t *testing.T) {
	s := NewStringFromText("abc")
	first := s.Value()
	second := s.Value()
	assert.Same(t, &first[0], &second[0])
}

func TestStringEmpty(t *testing.T) {
	s := NewString(nil)
	assert.NotNil(t, s.Value())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Key())
}

func TestStringCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"abc", "abc", 0},
		{"ab", "abc", -1},
		{"", "a", -1},
		{"\xff", "\x00", 1},
	}
	for _, tt := range tests {
		got := NewStringFromText(tt.a).Compare(NewStringFromText(tt.b))
		assert.Equal(t, tt.want, got, "%q vs %q", tt.a, tt.b)
	}
}

func TestStringEqualByContent(t *testing.T) {
	a := NewStringFromText("key")
	b := NewString([]byte("key"))
	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
}

func TestStringBinaryContent(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x10, 'e'}
	s := NewString(raw)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, string(raw), s.Key())
}
