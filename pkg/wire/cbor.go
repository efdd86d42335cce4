package wire

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/log"
)

// cborEncMode is configured with core deterministic encoding: sorted map
// keys, smallest integer encoding, no indefinite-length items.
var cborEncMode cbor.EncMode

// cborDecMode accepts standard CBOR and rejects duplicate map keys, which
// have no dictionary counterpart.
var cborDecMode cbor.DecMode

func init() {
	var err error

	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthAllowed,
		MaxNestedLevels:  DefaultMaxDepth,
		IntDec:           cbor.IntDecConvertNone,
		MapKeyByteString: cbor.MapKeyByteStringAllowed,
	}
	cborDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// ToCBOR transcodes v to deterministic CBOR.
func ToCBOR(v bencode.Value) ([]byte, error) {
	return ToCBORWithTrace(v, Trace{})
}

// ToCBORWithTrace is ToCBOR with event capture.
func ToCBORWithTrace(v bencode.Value, t Trace) ([]byte, error) {
	plain, err := toCBORItem(v, make(map[bencode.Value]struct{}))
	if err == nil {
		var data []byte
		data, err = cborEncMode.Marshal(plain)
		if err == nil {
			t.value(log.OpEncode, log.FormatCBOR, v.Kind().String(), len(data), 0, 0, 0)
			return data, nil
		}
	}
	t.fail(log.OpEncode, log.FormatCBOR, err)
	return nil, err
}

func toCBORItem(v bencode.Value, active map[bencode.Value]struct{}) (any, error) {
	switch v.(type) {
	case *bencode.List, *bencode.Dictionary:
		if _, ok := active[v]; ok {
			return nil, ErrCycle
		}
		active[v] = struct{}{}
		defer delete(active, v)
	}

	switch v := v.(type) {
	case *bencode.Integer:
		return v.Value(), nil
	case *bencode.String:
		return v.Value(), nil
	case *bencode.List:
		items := make([]any, 0, v.Len())
		for _, item := range v.All() {
			c, err := toCBORItem(item, active)
			if err != nil {
				return nil, err
			}
			items = append(items, c)
		}
		return items, nil
	case *bencode.Dictionary:
		m := make(map[any]any, v.Len())
		for k, item := range v.All() {
			if item == nil {
				return nil, fmt.Errorf("%w: dictionary key %q has no value", ErrNilValue, k)
			}
			c, err := toCBORItem(item, active)
			if err != nil {
				return nil, err
			}
			m[cborKey(k)] = c
		}
		return m, nil
	case nil:
		return nil, ErrNilValue
	default:
		return nil, fmt.Errorf("unknown value type %T", v)
	}
}

// cborKey keeps text keys readable in CBOR tooling while preserving
// arbitrary binary keys.
func cborKey(k string) any {
	if utf8.ValidString(k) {
		return k
	}
	return cbor.ByteString(k)
}

// FromCBOR transcodes a single CBOR data item into a value tree. Unsigned
// and negative integers must fit in int64; byte and text strings become
// Strings; arrays become Lists; maps with text or byte string keys become
// Dictionaries. Floats, booleans, null, undefined and tags other than
// those the decoder unwraps are rejected with ErrUnsupportedCBOR.
func FromCBOR(data []byte) (bencode.Value, error) {
	return FromCBORWithTrace(data, Trace{})
}

// FromCBORWithTrace is FromCBOR with event capture.
func FromCBORWithTrace(data []byte, t Trace) (bencode.Value, error) {
	var item any
	err := cborDecMode.Unmarshal(data, &item)
	var v bencode.Value
	if err == nil {
		v, err = fromCBORItem(item)
	}
	if err != nil {
		t.fail(log.OpDecode, log.FormatCBOR, err)
		return nil, err
	}
	t.value(log.OpDecode, log.FormatCBOR, v.Kind().String(), len(data), 0, 0, 0)
	return v, nil
}

func fromCBORItem(item any) (bencode.Value, error) {
	switch x := item.(type) {
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d", ErrIntegerOverflow, x)
		}
		return bencode.NewInteger(int64(x)), nil
	case int64:
		return bencode.NewInteger(x), nil
	case []byte:
		return bencode.NewString(x), nil
	case string:
		return bencode.NewStringFromText(x), nil
	case []any:
		l := bencode.NewList()
		for _, e := range x {
			v, err := fromCBORItem(e)
			if err != nil {
				return nil, err
			}
			l.PushBack(v)
		}
		return l, nil
	case map[any]any:
		d := bencode.NewDictionary()
		keys := make([]string, 0, len(x))
		values := make(map[string]any, len(x))
		for k, e := range x {
			var key string
			switch kk := k.(type) {
			case string:
				key = kk
			case cbor.ByteString:
				key = string(kk)
			default:
				return nil, fmt.Errorf("%w: %T", ErrInvalidCBORKey, k)
			}
			if _, dup := values[key]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
			}
			keys = append(keys, key)
			values[key] = e
		}
		slices.Sort(keys)
		for _, key := range keys {
			v, err := fromCBORItem(values[key])
			if err != nil {
				return nil, err
			}
			d.SetValue(key, v)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedCBOR, item)
	}
}
