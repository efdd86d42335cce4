package wire

import (
	"time"

	"github.com/bencoding/bencoding-go/pkg/log"
	"github.com/bencoding/bencoding-go/pkg/version"
)

// Default decoder limits.
const (
	DefaultMaxDepth        = 512
	DefaultMaxStringLength = 64 << 20
)

// Trace configures event capture for a codec run. The zero value discards
// events.
type Trace struct {
	// Logger receives events. Nil disables capture.
	Logger log.Logger

	// SessionID and Source are copied into every event.
	SessionID string
	Source    string
}

func (t Trace) emit(op log.Operation, format log.Format, e log.Event) {
	e.Timestamp = time.Now()
	e.SessionID = t.SessionID
	e.Source = t.Source
	e.Version = version.Current
	e.Operation = op
	e.Format = format
	log.OrNoop(t.Logger).Log(e)
}

func (t Trace) value(op log.Operation, format log.Format, kind string, size, nodes, depth int, took time.Duration) {
	t.emit(op, format, log.Event{
		Category: log.CategoryValue,
		Value:    &log.ValueEvent{Kind: kind, Size: size, Nodes: nodes, Depth: depth, Duration: took},
	})
}

func (t Trace) warn(op log.Operation, format log.Format, code log.WarningCode, offset int64, msg string) {
	t.emit(op, format, log.Event{
		Category: log.CategoryWarning,
		Warning:  &log.WarningEvent{Code: code, Offset: offset, Message: msg},
	})
}

func (t Trace) fail(op log.Operation, format log.Format, err error) {
	offset := int64(-1)
	if se, ok := err.(*SyntaxError); ok {
		offset = se.Offset
	}
	t.emit(op, format, log.Event{
		Category: log.CategoryError,
		Error:    &log.ErrorEventData{Offset: offset, Message: err.Error()},
	})
}

// DecodeOptions configures a Decoder.
type DecodeOptions struct {
	// Strict rejects input that is valid but not canonical: unsorted or
	// duplicate dictionary keys, integers with leading zeros or negative
	// zero, and string lengths with leading zeros.
	Strict bool

	// MaxDepth limits container nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// MaxStringLength limits a single string. Zero means
	// DefaultMaxStringLength.
	MaxStringLength int

	Trace Trace
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxStringLength <= 0 {
		o.MaxStringLength = DefaultMaxStringLength
	}
	return o
}
