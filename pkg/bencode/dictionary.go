package bencode

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Entry is a key/value pair used to build dictionaries.
type Entry struct {
	Key   string
	Value Value
}

// EntryOf builds an entry keyed by the content of k.
func EntryOf(k *String, v Value) Entry {
	return Entry{Key: k.Key(), Value: v}
}

// Dictionary maps byte-string keys to value handles. Keys are compared by
// content and iteration is in ascending byte order of the keys.
//
// A key may map to a nil placeholder, created by GetOrInsertDefault and
// not yet assigned. Placeholders count towards Len and HasKey, are
// replaced by SetDefault, and are skipped by Values.
type Dictionary struct {
	slots map[string]*Value
	keys  []string // sorted
}

// NewDictionary returns a dictionary holding the given entries. When a
// key repeats, the later entry wins.
func NewDictionary(entries ...Entry) *Dictionary {
	d := &Dictionary{slots: make(map[string]*Value, len(entries))}
	for _, e := range entries {
		d.SetValue(e.Key, e.Value)
	}
	return d
}

// Len returns the number of keys, including placeholder entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// Empty reports whether the dictionary has no keys.
func (d *Dictionary) Empty() bool { return len(d.keys) == 0 }

// Get returns the value mapped to key. It never modifies the dictionary.
// A placeholder entry is returned as (nil, true).
func (d *Dictionary) Get(key string) (Value, bool) {
	slot, ok := d.slots[key]
	if !ok {
		return nil, false
	}
	return *slot, true
}

// GetOrInsertDefault returns a pointer to the slot for key, inserting a
// nil placeholder first when the key is absent. Assigning through the
// pointer stores a value under key. The pointer stays valid until the key
// is erased.
func (d *Dictionary) GetOrInsertDefault(key string) *Value {
	if slot, ok := d.slots[key]; ok {
		return slot
	}
	if d.slots == nil {
		d.slots = make(map[string]*Value)
	}
	slot := new(Value)
	d.slots[key] = slot
	i, _ := slices.BinarySearch(d.keys, key)
	d.keys = slices.Insert(d.keys, i, key)
	return slot
}

// SetValue maps key to v, replacing any existing value.
func (d *Dictionary) SetValue(key string, v Value) {
	*d.GetOrInsertDefault(key) = v
}

// HasKey reports whether an entry exists for key.
func (d *Dictionary) HasKey(key string) bool {
	_, ok := d.slots[key]
	return ok
}

// SetDefault returns the value mapped to key. If the key is absent or
// holds a placeholder, v is stored first and returned.
func (d *Dictionary) SetDefault(key string, v Value) Value {
	slot := d.GetOrInsertDefault(key)
	if *slot == nil {
		*slot = v
	}
	return *slot
}

// Erase removes key and reports how many entries were removed (0 or 1).
func (d *Dictionary) Erase(key string) int {
	if _, ok := d.slots[key]; !ok {
		return 0
	}
	delete(d.slots, key)
	if i, found := slices.BinarySearch(d.keys, key); found {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
	return 1
}

// Values returns a new list of the dictionary's values in key order. The
// list shares the value handles but later changes to the dictionary do not
// affect it.
func (d *Dictionary) Values() *List {
	items := make([]Value, 0, len(d.keys))
	for _, k := range d.keys {
		if v := *d.slots[k]; v != nil {
			items = append(items, v)
		}
	}
	return &List{items: items}
}

// Keys returns the keys in ascending byte order.
func (d *Dictionary) Keys() []string {
	return slices.Clone(d.keys)
}

// All iterates over entries in ascending key order. The dictionary must
// not be modified during iteration.
func (d *Dictionary) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range d.keys {
			if !yield(k, *d.slots[k]) {
				return
			}
		}
	}
}

// GetValue returns the value mapped to key narrowed to T. It reports false
// when the key is absent, holds a placeholder, or holds another kind.
func GetValue[T Value](d *Dictionary, key string) (T, bool) {
	v, _ := d.Get(key)
	return As[T](v)
}

// GetValueOr is like GetValue but returns def when key is absent. A
// present value of another kind still yields the zero T, not def.
func GetValueOr[T Value](d *Dictionary, key string, def T) T {
	v, ok := d.Get(key)
	if !ok {
		return def
	}
	t, _ := As[T](v)
	return t
}

// Kind returns KindDictionary.
func (*Dictionary) Kind() Kind { return KindDictionary }

// Accept calls v.VisitDictionary.
func (d *Dictionary) Accept(v Visitor) { v.VisitDictionary(d) }

func (d *Dictionary) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteString(": ")
		sb.WriteString(stringOf(*d.slots[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}

func (*Dictionary) bencodeValue() {}

func stringOf(v Value) string {
	if v == nil {
		return "null"
	}
	return v.(fmt.Stringer).String()
}
