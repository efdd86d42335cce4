// Package export renders value trees as JSON and YAML, and reads YAML
// (and therefore JSON) documents back into trees.
package export

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bencoding/bencoding-go/pkg/bencode"
)

// Export errors.
var (
	ErrCycle       = errors.New("value tree contains a cycle")
	ErrUnsupported = errors.New("unsupported node")
	ErrInvalidKey  = errors.New("mapping key is not a string")
	ErrDuplicate   = errors.New("duplicate mapping key")
	ErrTooLarge    = errors.New("document exceeds expansion limit")
)

// Binary is a string value that is not valid UTF-8. It renders as "0x"
// followed by lowercase hex.
type Binary []byte

// String returns the hex form.
func (b Binary) String() string {
	return "0x" + hex.EncodeToString(b)
}

// MarshalJSON encodes b as a JSON string holding its hex form.
func (b Binary) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// Pair is one dictionary entry.
type Pair struct {
	Key   string
	Value any
}

// Map is a dictionary rendering that keeps key order.
type Map []Pair

// MarshalJSON encodes m as a JSON object in slice order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Plain converts v into generic Go values: int64 for integers, string for
// UTF-8 strings, Binary for other strings, []any for lists, Map for
// dictionaries and nil for placeholders. Binary dictionary keys use the
// Binary hex form.
func Plain(v bencode.Value) (any, error) {
	return plain(v, make(map[bencode.Value]struct{}))
}

func plain(v bencode.Value, active map[bencode.Value]struct{}) (any, error) {
	switch v.(type) {
	case *bencode.List, *bencode.Dictionary:
		if _, ok := active[v]; ok {
			return nil, ErrCycle
		}
		active[v] = struct{}{}
		defer delete(active, v)
	}

	switch v := v.(type) {
	case nil:
		return nil, nil
	case *bencode.Integer:
		return v.Value(), nil
	case *bencode.String:
		if utf8.Valid(v.Value()) {
			return v.Text(), nil
		}
		return Binary(bytes.Clone(v.Value())), nil
	case *bencode.List:
		out := make([]any, 0, v.Len())
		for _, item := range v.All() {
			p, err := plain(item, active)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	case *bencode.Dictionary:
		out := make(Map, 0, v.Len())
		for k, item := range v.All() {
			p, err := plain(item, active)
			if err != nil {
				return nil, err
			}
			out = append(out, Pair{Key: keyText(k), Value: p})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func keyText(k string) string {
	if utf8.ValidString(k) {
		return k
	}
	return Binary(k).String()
}

// JSON renders v as a JSON document. Dictionary keys keep their order.
//
// JSON has no byte string type, so strings that are not valid UTF-8 are
// written as "0x" hex text. Reading the document back yields that text,
// not the original bytes, and a text string that itself starts with "0x"
// is indistinguishable from a binary one. Use YAML, whose !!binary tag
// round-trips, or check HasBinary first.
func JSON(v bencode.Value, indent bool) ([]byte, error) {
	p, err := Plain(v)
	if err != nil {
		return nil, err
	}
	if indent {
		return json.MarshalIndent(p, "", "  ")
	}
	return json.Marshal(p)
}

// HasBinary reports whether any string or dictionary key in v is not
// valid UTF-8, that is, whether JSON would render part of v as hex.
func HasBinary(v bencode.Value) bool {
	return hasBinary(v, make(map[bencode.Value]struct{}))
}

func hasBinary(v bencode.Value, active map[bencode.Value]struct{}) bool {
	switch v := v.(type) {
	case *bencode.String:
		return !utf8.Valid(v.Value())
	case *bencode.List:
		if _, ok := active[v]; ok {
			return false
		}
		active[v] = struct{}{}
		defer delete(active, v)
		for _, item := range v.All() {
			if hasBinary(item, active) {
				return true
			}
		}
	case *bencode.Dictionary:
		if _, ok := active[v]; ok {
			return false
		}
		active[v] = struct{}{}
		defer delete(active, v)
		for k, item := range v.All() {
			if !utf8.ValidString(k) || hasBinary(item, active) {
				return true
			}
		}
	}
	return false
}
