package inspect

import "github.com/bencoding/bencoding-go/pkg/bencode"

// Stats describes the shape of a value tree.
type Stats struct {
	Integers     int
	Strings      int
	Lists        int
	Dictionaries int

	// Placeholders counts dictionary keys whose value is unset.
	Placeholders int

	// Depth is the nesting depth; a lone scalar has depth 1.
	Depth int

	// StringBytes sums the lengths of string values. KeyBytes sums the
	// lengths of dictionary keys.
	StringBytes int64
	KeyBytes    int64

	// Cycles counts containers reached again while already being walked.
	Cycles int
}

// Nodes returns the number of values in the tree.
func (s Stats) Nodes() int {
	return s.Integers + s.Strings + s.Lists + s.Dictionaries
}

// Summarize walks v and collects Stats. Containers shared at several
// places in the tree are counted at each place.
func Summarize(v bencode.Value) Stats {
	s := &summarizer{active: make(map[bencode.Value]struct{})}
	s.value(v)
	return s.stats
}

type summarizer struct {
	stats  Stats
	depth  int
	active map[bencode.Value]struct{}
}

func (s *summarizer) value(v bencode.Value) {
	if v == nil {
		s.stats.Placeholders++
		return
	}
	s.depth++
	s.stats.Depth = max(s.stats.Depth, s.depth)
	v.Accept(s)
	s.depth--
}

func (s *summarizer) enter(v bencode.Value) bool {
	if _, ok := s.active[v]; ok {
		s.stats.Cycles++
		return false
	}
	s.active[v] = struct{}{}
	return true
}

func (s *summarizer) VisitInteger(*bencode.Integer) {
	s.stats.Integers++
}

func (s *summarizer) VisitString(str *bencode.String) {
	s.stats.Strings++
	s.stats.StringBytes += int64(str.Len())
}

func (s *summarizer) VisitList(l *bencode.List) {
	if !s.enter(l) {
		return
	}
	s.stats.Lists++
	for _, item := range l.All() {
		s.value(item)
	}
	delete(s.active, l)
}

func (s *summarizer) VisitDictionary(d *bencode.Dictionary) {
	if !s.enter(d) {
		return
	}
	s.stats.Dictionaries++
	for k, v := range d.All() {
		s.stats.KeyBytes += int64(len(k))
		s.value(v)
	}
	delete(s.active, d)
}

var _ bencode.Visitor = (*summarizer)(nil)
