package bencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireViolation runs fn and checks that it panics with a
// *ContractError wrapping want.
func requireViolation(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a contract violation")
		ce, ok := r.(*ContractError)
		require.True(t, ok, "panic value %T is not *ContractError", r)
		assert.ErrorIs(t, ce, want)
	}()
	fn()
}

func strs(vals ...string) []Value {
	out := make([]Value, len(vals))
	for i, v := range vals {
		out[i] = NewStringFromText(v)
	}
	return out
}

func texts(l *List) []string {
	out := make([]string, 0, l.Len())
	for _, v := range l.All() {
		out = append(out, v.(*String).Text())
	}
	return out
}
