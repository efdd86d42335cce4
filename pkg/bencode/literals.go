package bencode

import "fmt"

// Int returns a new Integer.
func Int(v int64) *Integer { return NewInteger(v) }

// Str returns a new String holding s.
func Str(s string) *String { return NewStringFromText(s) }

// Bytes returns a new String holding a copy of b.
func Bytes(b []byte) *String { return NewString(b) }

// L returns a new List of the given items.
func L(items ...Value) *List { return NewList(items...) }

// D returns a new Dictionary from alternating keys and values:
//
//	D("announce", Str("http://tracker"), "info", D("length", Int(42)))
//
// Keys may be string, []byte or *String. It panics on an odd argument
// count, an unsupported key type or a nil value.
func D(kv ...any) *Dictionary {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("bencode: D: odd argument count %d", len(kv)))
	}
	d := NewDictionary()
	for i := 0; i < len(kv); i += 2 {
		var key string
		switch k := kv[i].(type) {
		case string:
			key = k
		case []byte:
			key = string(k)
		case *String:
			key = k.Key()
		default:
			panic(fmt.Sprintf("bencode: D: argument %d: unsupported key type %T", i, kv[i]))
		}
		v, ok := kv[i+1].(Value)
		if !ok || v == nil {
			violation("D", ErrNilValue, "value for key %q", key)
		}
		d.SetValue(key, v)
	}
	return d
}
