package log

import (
	"time"
)

// Event represents a codec event. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one run (UUID).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Operation is the codec operation that produced the event.
	Operation Operation `cbor:"3,keyasint"`

	// Format is the wire format being read or written.
	Format Format `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Source names the input or output (file name, "-" for stdio).
	Source string `cbor:"6,keyasint,omitempty"`

	// Version is the release of the module that wrote the event.
	Version string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Value   *ValueEvent     `cbor:"10,keyasint,omitempty"`
	Warning *WarningEvent   `cbor:"11,keyasint,omitempty"`
	Error   *ErrorEventData `cbor:"12,keyasint,omitempty"`
}

// Operation identifies the codec operation.
type Operation uint8

const (
	// OpDecode reads a value tree from bytes.
	OpDecode Operation = 0
	// OpEncode writes a value tree as bytes.
	OpEncode Operation = 1
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpDecode:
		return "DECODE"
	case OpEncode:
		return "ENCODE"
	default:
		return "UNKNOWN"
	}
}

// Format identifies a serialization format.
type Format uint8

const (
	// FormatBencode is the bencode wire format.
	FormatBencode Format = 0
	// FormatCBOR is deterministic CBOR.
	FormatCBOR Format = 1
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatBencode:
		return "BENCODE"
	case FormatCBOR:
		return "CBOR"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryValue indicates a completed top-level value.
	CategoryValue Category = 0
	// CategoryWarning indicates input accepted despite being non-canonical.
	CategoryWarning Category = 1
	// CategoryError indicates a failed operation.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryValue:
		return "VALUE"
	case CategoryWarning:
		return "WARNING"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ValueEvent summarizes a value that was decoded or encoded.
type ValueEvent struct {
	// Kind is the kind name of the root value.
	Kind string `cbor:"1,keyasint"`

	// Size is the encoded size in bytes.
	Size int `cbor:"2,keyasint"`

	// Nodes is the number of values in the tree, including the root.
	Nodes int `cbor:"3,keyasint,omitempty"`

	// Depth is the maximum nesting depth (a scalar root has depth 1).
	Depth int `cbor:"4,keyasint,omitempty"`

	// Duration is how long the operation took.
	Duration time.Duration `cbor:"5,keyasint,omitempty"`
}

// WarningCode identifies a leniency warning.
type WarningCode uint8

const (
	// WarnUnsortedKey indicates a dictionary key out of ascending order.
	WarnUnsortedKey WarningCode = 1
	// WarnDuplicateKey indicates a repeated dictionary key (last wins).
	WarnDuplicateKey WarningCode = 2
	// WarnNonCanonicalInteger indicates leading zeros or negative zero.
	WarnNonCanonicalInteger WarningCode = 3
)

// String returns the warning code name.
func (c WarningCode) String() string {
	switch c {
	case WarnUnsortedKey:
		return "UNSORTED_KEY"
	case WarnDuplicateKey:
		return "DUPLICATE_KEY"
	case WarnNonCanonicalInteger:
		return "NON_CANONICAL_INTEGER"
	default:
		return "UNKNOWN"
	}
}

// WarningEvent describes non-canonical input that was accepted.
type WarningEvent struct {
	Code    WarningCode `cbor:"1,keyasint"`
	Offset  int64       `cbor:"2,keyasint"`
	Message string      `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData describes a failed operation.
type ErrorEventData struct {
	// Offset is the input position of the error, or -1 if unknown.
	Offset  int64  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
}
