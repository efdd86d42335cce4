package wire

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/log"
)

// maxIntegerDigits bounds the text of an integer token; int64 needs at
// most 19 digits plus a sign.
const maxIntegerDigits = 20

// maxStreamPrealloc bounds the buffer allocated up front for a string read
// from a stream of unknown length; longer strings grow as bytes arrive.
const maxStreamPrealloc = 64 << 10

// Unmarshal decodes exactly one value from data with default options.
func Unmarshal(data []byte) (bencode.Value, error) {
	return UnmarshalWithOptions(data, DecodeOptions{})
}

// UnmarshalWithOptions decodes exactly one value from data. Bytes after
// the value are reported as ErrTrailingData.
func UnmarshalWithOptions(data []byte, opts DecodeOptions) (bencode.Value, error) {
	d := NewDecoder(bytes.NewReader(data), opts)
	d.size = int64(len(data))
	v, err := d.Decode()
	if err == io.EOF {
		err = syntaxErr(0, ErrUnexpectedEOF, "empty input")
		d.opts.Trace.fail(log.OpDecode, log.FormatBencode, err)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if d.off != int64(len(data)) {
		err = syntaxErr(d.off, ErrTrailingData, "%d bytes", int64(len(data))-d.off)
		d.opts.Trace.fail(log.OpDecode, log.FormatBencode, err)
		return nil, err
	}
	return v, nil
}

// Decoder reads bencoded values from an input stream.
type Decoder struct {
	r    *bufio.Reader
	off  int64
	size int64 // total input length, -1 when unknown
	opts DecodeOptions

	nodes    int
	depth    int
	maxDepth int
}

// NewDecoder returns a decoder that reads from r. The decoder buffers its
// input and may read past the end of the current value.
func NewDecoder(r io.Reader, opts DecodeOptions) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br, size: -1, opts: opts.withDefaults()}
}

// InputOffset returns the number of bytes consumed so far.
func (d *Decoder) InputOffset() int64 {
	return d.off
}

// Decode reads the next value. It returns io.EOF when the input ends
// cleanly before a value starts, so concatenated values can be read in a
// loop.
func (d *Decoder) Decode() (bencode.Value, error) {
	if _, err := d.r.Peek(1); err == io.EOF {
		return nil, io.EOF
	}

	start := time.Now()
	startOff := d.off
	d.nodes, d.depth, d.maxDepth = 0, 0, 0

	v, err := d.value()
	if err != nil {
		d.opts.Trace.fail(log.OpDecode, log.FormatBencode, err)
		return nil, err
	}
	d.opts.Trace.value(log.OpDecode, log.FormatBencode, v.Kind().String(),
		int(d.off-startOff), d.nodes, d.maxDepth, time.Since(start))
	return v, nil
}

func (d *Decoder) peekByte() (byte, error) {
	b, err := d.r.Peek(1)
	if err != nil {
		return 0, d.readErr(err)
	}
	return b[0], nil
}

func (d *Decoder) readByte() (byte, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return 0, d.readErr(err)
	}
	d.off++
	return c, nil
}

func (d *Decoder) readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return syntaxErr(d.off, ErrUnexpectedEOF, "")
	}
	return fmt.Errorf("bencode: read at offset %d: %w", d.off, err)
}

func (d *Decoder) value() (bencode.Value, error) {
	c, err := d.peekByte()
	if err != nil {
		return nil, err
	}
	d.nodes++
	switch {
	case c == 'i':
		return d.integer()
	case c == 'l':
		return d.list()
	case c == 'd':
		return d.dictionary()
	case c >= '0' && c <= '9':
		b, err := d.stringBytes()
		if err != nil {
			return nil, err
		}
		d.track(1)
		return bencode.NewString(b), nil
	default:
		return nil, syntaxErr(d.off, ErrInvalidByte, "%q", c)
	}
}

// track records the nesting depth of a leaf at the current level.
func (d *Decoder) track(extra int) {
	if d.depth+extra > d.maxDepth {
		d.maxDepth = d.depth + extra
	}
}

func (d *Decoder) enter() error {
	d.depth++
	if d.depth > d.opts.MaxDepth {
		return syntaxErr(d.off, ErrMaxDepth, "limit %d", d.opts.MaxDepth)
	}
	d.track(0)
	return nil
}

// nonCanonical either fails (strict) or records a warning and continues.
func (d *Decoder) nonCanonical(offset int64, sentinel error, code log.WarningCode, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if d.opts.Strict {
		return syntaxErr(offset, sentinel, "%s", msg)
	}
	d.opts.Trace.warn(log.OpDecode, log.FormatBencode, code, offset, msg)
	return nil
}

func (d *Decoder) integer() (bencode.Value, error) {
	start := d.off
	if _, err := d.readByte(); err != nil { // 'i'
		return nil, err
	}

	var text []byte
	for {
		c, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if c == 'e' {
			break
		}
		if len(text) == maxIntegerDigits {
			return nil, syntaxErr(start, ErrInvalidInteger, "too many digits")
		}
		text = append(text, c)
	}

	if len(text) == 0 || text[0] == '+' {
		return nil, syntaxErr(start, ErrInvalidInteger, "%q", text)
	}
	n, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, syntaxErr(start, ErrIntegerOverflow, "%s", text)
		}
		return nil, syntaxErr(start, ErrInvalidInteger, "%q", text)
	}

	digits := text
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if (len(digits) > 1 && digits[0] == '0') || string(text) == "-0" {
		if err := d.nonCanonical(start, ErrNonCanonical, log.WarnNonCanonicalInteger, "integer %q", text); err != nil {
			return nil, err
		}
	}

	d.track(1)
	return bencode.NewInteger(n), nil
}

// stringBytes reads a <length>:<bytes> token.
func (d *Decoder) stringBytes() ([]byte, error) {
	start := d.off
	var digits []byte
	for {
		c, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if c == ':' {
			break
		}
		if c < '0' || c > '9' || len(digits) == maxIntegerDigits {
			return nil, syntaxErr(d.off-1, ErrInvalidLength, "unexpected %q", c)
		}
		digits = append(digits, c)
	}
	if len(digits) == 0 {
		return nil, syntaxErr(start, ErrInvalidLength, "missing length")
	}

	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil, syntaxErr(start, ErrInvalidLength, "%q", digits)
	}
	if n > int64(d.opts.MaxStringLength) {
		return nil, syntaxErr(start, ErrStringTooLong, "%d bytes, limit %d", n, d.opts.MaxStringLength)
	}
	if len(digits) > 1 && digits[0] == '0' {
		if err := d.nonCanonical(start, ErrNonCanonical, log.WarnNonCanonicalInteger, "string length %q", digits); err != nil {
			return nil, err
		}
	}

	prealloc := min(n, maxStreamPrealloc)
	if d.size >= 0 {
		if rest := d.size - d.off; n > rest {
			return nil, syntaxErr(start, ErrUnexpectedEOF, "string of %d bytes, %d remaining", n, rest)
		}
		prealloc = n
	}

	var buf bytes.Buffer
	buf.Grow(int(prealloc))
	read, err := io.CopyN(&buf, d.r, n)
	d.off += read
	if err != nil {
		return nil, d.readErr(err)
	}
	return buf.Bytes(), nil
}

func (d *Decoder) list() (bencode.Value, error) {
	if _, err := d.readByte(); err != nil { // 'l'
		return nil, err
	}
	if err := d.enter(); err != nil {
		return nil, err
	}

	l := bencode.NewList()
	for {
		c, err := d.peekByte()
		if err != nil {
			return nil, err
		}
		if c == 'e' {
			d.readByte()
			break
		}
		item, err := d.value()
		if err != nil {
			return nil, err
		}
		l.PushBack(item)
	}

	d.depth--
	return l, nil
}

func (d *Decoder) dictionary() (bencode.Value, error) {
	if _, err := d.readByte(); err != nil { // 'd'
		return nil, err
	}
	if err := d.enter(); err != nil {
		return nil, err
	}

	dict := bencode.NewDictionary()
	var prev []byte
	first := true
	for {
		c, err := d.peekByte()
		if err != nil {
			return nil, err
		}
		if c == 'e' {
			d.readByte()
			break
		}
		if c < '0' || c > '9' {
			return nil, syntaxErr(d.off, ErrInvalidKey, "found %q", c)
		}

		keyOff := d.off
		key, err := d.stringBytes()
		if err != nil {
			return nil, err
		}
		switch {
		case dict.HasKey(string(key)):
			if err := d.nonCanonical(keyOff, ErrDuplicateKey, log.WarnDuplicateKey, "key %q", key); err != nil {
				return nil, err
			}
		case !first && bytes.Compare(key, prev) < 0:
			if err := d.nonCanonical(keyOff, ErrUnsortedKeys, log.WarnUnsortedKey, "key %q after %q", key, prev); err != nil {
				return nil, err
			}
		}
		prev, first = key, false

		v, err := d.value()
		if err != nil {
			return nil, err
		}
		dict.SetValue(string(key), v)
	}

	d.depth--
	return dict, nil
}

// DictSpan returns the raw encoded bytes of the value stored under key in
// the top-level dictionary of data. This is how an info-hash is computed:
// over the exact bytes of the "info" value as they appear in the file.
func DictSpan(data []byte, key string) ([]byte, error) {
	d := NewDecoder(bytes.NewReader(data), DecodeOptions{})
	c, err := d.peekByte()
	if err != nil {
		return nil, err
	}
	if c != 'd' {
		return nil, ErrNotDictionary
	}
	d.readByte()

	for {
		c, err := d.peekByte()
		if err != nil {
			return nil, err
		}
		if c == 'e' {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
		}
		if c < '0' || c > '9' {
			return nil, syntaxErr(d.off, ErrInvalidKey, "found %q", c)
		}
		k, err := d.stringBytes()
		if err != nil {
			return nil, err
		}
		start := d.off
		if _, err := d.value(); err != nil {
			return nil, err
		}
		if string(k) == key {
			return data[start:d.off], nil
		}
	}
}
