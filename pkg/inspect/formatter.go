package inspect

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bencoding/bencoding-go/pkg/bencode"
)

// Formatter formats value trees for display.
type Formatter struct {
	// IndentWidth is the number of spaces per indent level.
	IndentWidth int

	// BinaryLimit abbreviates binary strings longer than this many bytes
	// to "<N bytes>". Zero prints every byte.
	BinaryLimit int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		IndentWidth: 2,
		BinaryLimit: 32,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	return strings.Repeat(" ", depth*f.indentWidth()) + content
}

func (f *Formatter) indentWidth() int {
	if f.IndentWidth <= 0 {
		return 2
	}
	return f.IndentWidth
}

// Format renders v across multiple lines, one container element per line.
func (f *Formatter) Format(v bencode.Value) string {
	p := &printer{f: f, multiline: true}
	p.value(v)
	return p.sb.String()
}

// Repr renders v on a single line.
func (f *Formatter) Repr(v bencode.Value) string {
	p := &printer{f: f}
	p.value(v)
	return p.sb.String()
}

// FormatBytes renders a string value or dictionary key. Text is single
// quoted; anything else is written as b'...' with hex escapes, or
// abbreviated when it exceeds BinaryLimit.
func (f *Formatter) FormatBytes(b []byte) string {
	if isText(b) {
		return quoteText(b)
	}
	if f.BinaryLimit > 0 && len(b) > f.BinaryLimit {
		return fmt.Sprintf("<%d bytes>", len(b))
	}
	return quoteBinary(b)
}

// isText reports whether b is valid UTF-8 made of printable runes and
// ordinary whitespace.
func isText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
	}
	return true
}

func quoteText(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte('\'')
	for _, r := range string(b) {
		switch r {
		case '\'', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

func quoteBinary(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*2 + 3)
	sb.WriteString("b'")
	for _, c := range b {
		switch {
		case c == '\'' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			sb.WriteString(`\x`)
			if c < 0x10 {
				sb.WriteByte('0')
			}
			sb.WriteString(strconv.FormatUint(uint64(c), 16))
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// printer walks a tree through bencode.Visitor dispatch. Containers
// already on the current path print as [...] or {...}.
type printer struct {
	f         *Formatter
	sb        strings.Builder
	multiline bool
	depth     int
	active    map[bencode.Value]struct{}
}

func (p *printer) value(v bencode.Value) {
	if v == nil {
		p.sb.WriteString("None")
		return
	}
	v.Accept(p)
}

func (p *printer) enter(v bencode.Value) bool {
	if _, ok := p.active[v]; ok {
		return false
	}
	if p.active == nil {
		p.active = make(map[bencode.Value]struct{})
	}
	p.active[v] = struct{}{}
	p.depth++
	return true
}

func (p *printer) leave(v bencode.Value) {
	p.depth--
	delete(p.active, v)
}

// separator is written before element i of a non-empty container.
func (p *printer) separator(i int) {
	if i > 0 {
		p.sb.WriteByte(',')
		if !p.multiline {
			p.sb.WriteByte(' ')
		}
	}
	if p.multiline {
		p.sb.WriteByte('\n')
		p.sb.WriteString(p.f.Indent(p.depth, ""))
	}
}

func (p *printer) close(c byte) {
	if p.multiline {
		p.sb.WriteByte('\n')
		p.sb.WriteString(p.f.Indent(p.depth-1, ""))
	}
	p.sb.WriteByte(c)
}

func (p *printer) VisitInteger(i *bencode.Integer) {
	p.sb.WriteString(strconv.FormatInt(i.Value(), 10))
}

func (p *printer) VisitString(s *bencode.String) {
	p.sb.WriteString(p.f.FormatBytes(s.Value()))
}

func (p *printer) VisitList(l *bencode.List) {
	if l.Empty() {
		p.sb.WriteString("[]")
		return
	}
	if !p.enter(l) {
		p.sb.WriteString("[...]")
		return
	}
	p.sb.WriteByte('[')
	for i, item := range l.All() {
		p.separator(i)
		p.value(item)
	}
	p.close(']')
	p.leave(l)
}

func (p *printer) VisitDictionary(d *bencode.Dictionary) {
	if d.Empty() {
		p.sb.WriteString("{}")
		return
	}
	if !p.enter(d) {
		p.sb.WriteString("{...}")
		return
	}
	p.sb.WriteByte('{')
	i := 0
	for k, v := range d.All() {
		p.separator(i)
		p.sb.WriteString(p.f.FormatBytes([]byte(k)))
		p.sb.WriteString(": ")
		p.value(v)
		i++
	}
	p.close('}')
	p.leave(d)
}

var _ bencode.Visitor = (*printer)(nil)
