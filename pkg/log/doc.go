// Package log provides structured event capture for bencode codec runs.
//
// This package defines the Logger interface and Event types for recording
// what the encoder, decoder and transcoders did: values decoded or
// encoded, leniency warnings (for example unsorted dictionary keys that a
// non-strict decoder accepted) and errors with their byte offsets. It is
// separate from operational logging (slog); an event trace is a complete
// machine-readable record for debugging malformed input.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	opts.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For analysis: write a CBOR trace file
//	opts.Logger, _ = log.NewFileLogger("decode.blog")
//
//	// Both
//	opts.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Trace files are a concatenation of CBOR-encoded events with integer
// keys, conventionally named *.blog. Reader streams them back, optionally
// filtered.
package log
