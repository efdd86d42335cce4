package wire

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/log"
)

// Marshal returns the canonical bencode form of v.
func Marshal(v bencode.Value) ([]byte, error) {
	return MarshalWithTrace(v, Trace{})
}

// MarshalWithTrace is Marshal with event capture.
func MarshalWithTrace(v bencode.Value, t Trace) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.SetTrace(t)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes bencoded values to an output stream.
type Encoder struct {
	w     io.Writer
	trace Trace
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetTrace configures event capture.
func (e *Encoder) SetTrace(t Trace) {
	e.trace = t
}

// Encode writes the canonical encoding of v. Dictionaries are written in
// ascending key order; a nil value anywhere in the tree (including a
// dictionary placeholder) is an error and nothing is guaranteed about
// partial output.
func (e *Encoder) Encode(v bencode.Value) error {
	start := time.Now()
	bw := bufio.NewWriter(e.w)
	ev := &encodeVisitor{w: bw}
	ev.value(v)
	if ev.err == nil {
		ev.err = bw.Flush()
	}
	if ev.err != nil {
		e.trace.fail(log.OpEncode, log.FormatBencode, ev.err)
		return ev.err
	}
	e.trace.value(log.OpEncode, log.FormatBencode, v.Kind().String(), ev.size, ev.nodes, ev.maxDepth, time.Since(start))
	return nil
}

// encodeVisitor writes a tree through bencode.Visitor dispatch. The first
// error stops all further output. Containers on the current path are kept
// in active so a list or dictionary that contains itself is reported
// instead of recursing forever.
type encodeVisitor struct {
	w        *bufio.Writer
	err      error
	size     int
	nodes    int
	depth    int
	maxDepth int
	active   map[bencode.Value]struct{}
	scratch  [20]byte
}

func (ev *encodeVisitor) value(v bencode.Value) {
	if ev.err != nil {
		return
	}
	if v == nil {
		ev.err = ErrNilValue
		return
	}
	ev.nodes++
	ev.depth++
	if ev.depth > ev.maxDepth {
		ev.maxDepth = ev.depth
	}
	v.Accept(ev)
	ev.depth--
}

func (ev *encodeVisitor) enter(v bencode.Value) bool {
	if _, ok := ev.active[v]; ok {
		ev.err = ErrCycle
		return false
	}
	if ev.active == nil {
		ev.active = make(map[bencode.Value]struct{})
	}
	ev.active[v] = struct{}{}
	return true
}

func (ev *encodeVisitor) write(b []byte) {
	if ev.err != nil {
		return
	}
	n, err := ev.w.Write(b)
	ev.size += n
	ev.err = err
}

func (ev *encodeVisitor) writeByte(c byte) {
	if ev.err != nil {
		return
	}
	ev.err = ev.w.WriteByte(c)
	ev.size++
}

func (ev *encodeVisitor) writeString(b []byte) {
	ev.write(strconv.AppendInt(ev.scratch[:0], int64(len(b)), 10))
	ev.writeByte(':')
	ev.write(b)
}

func (ev *encodeVisitor) VisitInteger(i *bencode.Integer) {
	ev.writeByte('i')
	ev.write(strconv.AppendInt(ev.scratch[:0], i.Value(), 10))
	ev.writeByte('e')
}

func (ev *encodeVisitor) VisitString(s *bencode.String) {
	ev.writeString(s.Value())
}

func (ev *encodeVisitor) VisitList(l *bencode.List) {
	if !ev.enter(l) {
		return
	}
	defer delete(ev.active, l)
	ev.writeByte('l')
	for _, item := range l.All() {
		ev.value(item)
	}
	ev.writeByte('e')
}

func (ev *encodeVisitor) VisitDictionary(d *bencode.Dictionary) {
	if !ev.enter(d) {
		return
	}
	defer delete(ev.active, d)
	ev.writeByte('d')
	for k, v := range d.All() {
		if v == nil {
			ev.err = fmt.Errorf("%w: dictionary key %q has no value", ErrNilValue, k)
			return
		}
		ev.writeString([]byte(k))
		ev.value(v)
	}
	ev.writeByte('e')
}

// Compile-time interface satisfaction check.
var _ bencode.Visitor = (*encodeVisitor)(nil)
