// Package inspect provides value tree inspection and editing utilities.
//
// The inspect package offers:
//   - Parsing path expressions (e.g., "info/files/0/length")
//   - Resolving, assigning and removing values by path
//   - Formatting trees for display
//   - Summarizing tree shape
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bencoding/bencoding-go/pkg/bencode"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrNotFound      = errors.New("path not found")
	ErrNotContainer  = errors.New("not a list or dictionary")
	ErrIndexRange    = errors.New("list index out of range")
	ErrNotIndex      = errors.New("list segment is not an index")
	ErrNilValue      = errors.New("nil value")
	ErrRootImmutable = errors.New("cannot replace or remove the root")
)

// Segment is one step of a Path. Whether it selects a dictionary key or a
// list index depends on the container it is applied to: Key is always
// set, Index only when the segment is a decimal integer.
type Segment struct {
	Key     string
	Index   int
	Numeric bool
}

func newSegment(key string) Segment {
	s := Segment{Key: key}
	if n, err := strconv.Atoi(key); err == nil {
		s.Index, s.Numeric = n, true
	}
	return s
}

// String returns the segment with "~" and "/" escaped.
func (s Segment) String() string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s.Key)
}

// Path addresses a value inside a tree. The empty path is the root.
type Path []Segment

// ParsePath parses a slash-separated path.
//
// Supported forms:
//   - "info/files/0/length" - keys and list indexes
//   - "/info" - a leading slash is optional
//   - "/" - the root
//   - "announce-list/-1" - negative indexes count from the end
//   - "a~1b/c~0d" - "~1" is a literal "/", "~0" a literal "~"
func ParsePath(input string) (Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}
	input = strings.TrimPrefix(input, "/")
	if input == "" {
		return Path{}, nil
	}

	parts := strings.Split(input, "/")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		key, err := unescape(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, input)
		}
		p = append(p, newSegment(key))
	}
	return p, nil
}

func unescape(part string) (string, error) {
	if part == "" {
		return "", ErrInvalidPath
	}
	if !strings.Contains(part, "~") {
		return part, nil
	}
	var sb strings.Builder
	for i := 0; i < len(part); i++ {
		if part[i] != '~' {
			sb.WriteByte(part[i])
			continue
		}
		if i+1 == len(part) {
			return "", ErrInvalidPath
		}
		switch part[i+1] {
		case '0':
			sb.WriteByte('~')
		case '1':
			sb.WriteByte('/')
		default:
			return "", ErrInvalidPath
		}
		i++
	}
	return sb.String(), nil
}

// String returns the path as an absolute path string.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return "/" + strings.Join(parts, "/")
}

// Join applies rel to p. An absolute rel replaces p; ".." steps up one
// level and "." stays put.
func (p Path) Join(rel string) (Path, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return nil, ErrEmptyPath
	}
	var out Path
	if !strings.HasPrefix(rel, "/") {
		out = append(out, p...)
	}
	for _, part := range strings.Split(strings.Trim(rel, "/"), "/") {
		switch part {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			key, err := unescape(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", err, rel)
			}
			out = append(out, newSegment(key))
		}
	}
	return out, nil
}

// Resolve returns the value at p. A dictionary placeholder resolves to a
// nil Value without error.
func Resolve(root bencode.Value, p Path) (bencode.Value, error) {
	cur := root
	for i, seg := range p {
		if cur == nil {
			return nil, fmt.Errorf("%s: %w", p[:i], ErrNotContainer)
		}
		next, err := step(cur, seg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p[:i+1], err)
		}
		cur = next
	}
	return cur, nil
}

func step(cur bencode.Value, seg Segment) (bencode.Value, error) {
	switch c := cur.(type) {
	case *bencode.Dictionary:
		v, ok := c.Get(seg.Key)
		if !ok {
			return nil, ErrNotFound
		}
		return v, nil
	case *bencode.List:
		i, err := listIndex(c, seg)
		if err != nil {
			return nil, err
		}
		return c.At(i), nil
	default:
		return nil, ErrNotContainer
	}
}

func listIndex(l *bencode.List, seg Segment) (int, error) {
	if !seg.Numeric {
		return 0, ErrNotIndex
	}
	i := bencode.Normalize(seg.Index, l.Len())
	if i < 0 || i >= l.Len() {
		return 0, ErrIndexRange
	}
	return i, nil
}

// parent resolves everything but the last segment and requires a
// container there.
func parent(root bencode.Value, p Path) (bencode.Value, Segment, error) {
	if len(p) == 0 {
		return nil, Segment{}, ErrRootImmutable
	}
	dir, last := p[:len(p)-1], p[len(p)-1]
	c, err := Resolve(root, dir)
	if err != nil {
		return nil, last, err
	}
	switch c.(type) {
	case *bencode.Dictionary, *bencode.List:
		return c, last, nil
	default:
		return nil, last, fmt.Errorf("%s: %w", dir, ErrNotContainer)
	}
}

// Assign stores v at p. The parent must already exist: a dictionary gains
// or replaces the key, a list replaces the element at the index, and the
// segment "-" appends to a list.
func Assign(root bencode.Value, p Path, v bencode.Value) error {
	if v == nil {
		return ErrNilValue
	}
	c, last, err := parent(root, p)
	if err != nil {
		return err
	}
	switch c := c.(type) {
	case *bencode.Dictionary:
		c.SetValue(last.Key, v)
	case *bencode.List:
		if last.Key == "-" {
			c.PushBack(v)
			return nil
		}
		i, err := listIndex(c, last)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		c.Set(i, v)
	}
	return nil
}

// Remove deletes the value at p from its parent container.
func Remove(root bencode.Value, p Path) error {
	c, last, err := parent(root, p)
	if err != nil {
		return err
	}
	switch c := c.(type) {
	case *bencode.Dictionary:
		if c.Erase(last.Key) == 0 {
			return fmt.Errorf("%s: %w", p, ErrNotFound)
		}
	case *bencode.List:
		i, err := listIndex(c, last)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		c.EraseRangeTo(i, i+1)
	}
	return nil
}
