package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bencoding/bencoding-go/pkg/log"
	"github.com/bencoding/bencoding-go/pkg/version"
)

// TraceOptions configures the trace command.
type TraceOptions struct {
	Session   string
	Operation string
	Category  string
	Source    string
	JSON      bool
	Stats     bool
}

// RunTrace prints the events of a CBOR trace file written with --trace.
func RunTrace(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("trace", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := TraceOptions{}
	fs.StringVar(&opts.Session, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Operation, "op", "", "Filter by operation (decode, encode)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (value, warning, error)")
	fs.StringVar(&opts.Source, "source", "", "Filter by source file")
	fs.BoolVar(&opts.JSON, "json", false, "Output events as JSON lines")
	fs.BoolVar(&opts.Stats, "stats", false, "Print event counts instead of events")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printTraceUsage(stderr)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printTraceUsage(stderr)
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: trace file path required")
		printTraceUsage(stderr)
		return exitCommandError
	}

	filter, err := buildFilter(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	r, err := log.NewFilteredReader(fs.Arg(0), filter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer r.Close()

	var stats traceStats
	versions := newVersionCheck(version.MustCurrent())
	enc := json.NewEncoder(stdout)
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error reading trace: %v\n", err)
			return exitInvalid
		}
		versions.check(stderr, event.Version)
		switch {
		case opts.Stats:
			stats.add(event)
		case opts.JSON:
			enc.Encode(eventJSON(event))
		default:
			formatEvent(stdout, event)
		}
	}
	if opts.Stats {
		stats.write(stdout)
	}
	return exitSuccess
}

func buildFilter(opts TraceOptions) (log.Filter, error) {
	filter := log.Filter{SessionID: opts.Session, Source: opts.Source}
	if opts.Operation != "" {
		op, err := ParseOperationFlag(opts.Operation)
		if err != nil {
			return filter, err
		}
		filter.Operation = &op
	}
	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// ParseOperationFlag parses an operation filter value.
func ParseOperationFlag(s string) (log.Operation, error) {
	switch strings.ToLower(s) {
	case "decode":
		return log.OpDecode, nil
	case "encode":
		return log.OpEncode, nil
	default:
		return 0, fmt.Errorf("invalid operation %q (use decode or encode)", s)
	}
}

// ParseCategoryFlag parses a category filter value.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "value":
		return log.CategoryValue, nil
	case "warning":
		return log.CategoryWarning, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category %q (use value, warning or error)", s)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [sess:%s] %s %s %s\n", ts, shortenID(event.SessionID),
		event.Operation, event.Format, event.Category)
	if event.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", event.Source)
	}

	switch {
	case event.Value != nil:
		v := event.Value
		fmt.Fprintf(w, "  Kind: %s  Size: %d bytes", v.Kind, v.Size)
		if v.Nodes > 0 {
			fmt.Fprintf(w, "  Nodes: %d  Depth: %d", v.Nodes, v.Depth)
		}
		fmt.Fprintln(w)
		if v.Duration > 0 {
			fmt.Fprintf(w, "  Duration: %s\n", v.Duration.Round(time.Microsecond))
		}
	case event.Warning != nil:
		fmt.Fprintf(w, "  Warning: %s at offset %d\n", event.Warning.Code, event.Warning.Offset)
		if event.Warning.Message != "" {
			fmt.Fprintf(w, "  Detail: %s\n", event.Warning.Message)
		}
	case event.Error != nil:
		if event.Error.Offset >= 0 {
			fmt.Fprintf(w, "  Offset: %d\n", event.Error.Offset)
		}
		fmt.Fprintf(w, "  Error: %s\n", event.Error.Message)
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// eventJSON flattens an event for JSON lines output.
func eventJSON(event log.Event) map[string]any {
	out := map[string]any{
		"timestamp":  event.Timestamp.UTC().Format(time.RFC3339Nano),
		"session_id": event.SessionID,
		"op":         event.Operation.String(),
		"format":     event.Format.String(),
		"category":   event.Category.String(),
	}
	if event.Source != "" {
		out["source"] = event.Source
	}
	if event.Version != "" {
		out["version"] = event.Version
	}
	switch {
	case event.Value != nil:
		out["kind"] = event.Value.Kind
		out["size"] = event.Value.Size
		out["nodes"] = event.Value.Nodes
		out["depth"] = event.Value.Depth
		out["duration_us"] = event.Value.Duration.Microseconds()
	case event.Warning != nil:
		out["code"] = event.Warning.Code.String()
		out["offset"] = event.Warning.Offset
		out["detail"] = event.Warning.Message
	case event.Error != nil:
		out["offset"] = event.Error.Offset
		out["error"] = event.Error.Message
	}
	return out
}

// versionCheck warns once for each writer version the current release is
// not compatible with.
type versionCheck struct {
	current version.Release
	seen    map[string]bool
}

func newVersionCheck(current version.Release) *versionCheck {
	return &versionCheck{current: current, seen: make(map[string]bool)}
}

func (c *versionCheck) check(w io.Writer, v string) {
	if v == "" || c.seen[v] {
		return
	}
	c.seen[v] = true

	r, err := version.Parse(v)
	if err != nil {
		fmt.Fprintf(w, "Warning: trace has unrecognized writer version %q\n", v)
		return
	}
	if r.Compatible(c.current) {
		return
	}
	relation := "older"
	if c.current.Less(r) {
		relation = "newer"
	}
	fmt.Fprintf(w, "Warning: events written by bencode %s, %s than %s; fields may be missing\n", r, relation, c.current)
}

type traceStats struct {
	events     int
	sessions   map[string]struct{}
	categories map[log.Category]int
	warnings   map[log.WarningCode]int
	bytes      int64
	first      time.Time
	last       time.Time
}

func (s *traceStats) add(e log.Event) {
	if s.sessions == nil {
		s.sessions = make(map[string]struct{})
		s.categories = make(map[log.Category]int)
		s.warnings = make(map[log.WarningCode]int)
	}
	s.events++
	s.sessions[e.SessionID] = struct{}{}
	s.categories[e.Category]++
	if e.Warning != nil {
		s.warnings[e.Warning.Code]++
	}
	if e.Value != nil {
		s.bytes += int64(e.Value.Size)
	}
	if s.first.IsZero() || e.Timestamp.Before(s.first) {
		s.first = e.Timestamp
	}
	if e.Timestamp.After(s.last) {
		s.last = e.Timestamp
	}
}

func (s *traceStats) write(w io.Writer) {
	fmt.Fprintf(w, "Events:   %d\n", s.events)
	if s.events == 0 {
		return
	}
	fmt.Fprintf(w, "Sessions: %d\n", len(s.sessions))
	fmt.Fprintf(w, "Span:     %s\n", s.last.Sub(s.first).Round(time.Millisecond))
	fmt.Fprintf(w, "Bytes:    %d\n", s.bytes)
	for _, c := range []log.Category{log.CategoryValue, log.CategoryWarning, log.CategoryError} {
		fmt.Fprintf(w, "%-9s %d\n", c.String()+":", s.categories[c])
	}
	for _, code := range []log.WarningCode{log.WarnUnsortedKey, log.WarnDuplicateKey, log.WarnNonCanonicalInteger} {
		if n := s.warnings[code]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", code, n)
		}
	}
}

func printTraceUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: bencode trace [options] <file.blog>

Options:
  --session    Filter by session ID
  --op         Filter by operation: decode, encode
  --category   Filter by category: value, warning, error
  --source     Filter by source file
  --json       Output events as JSON lines
  --stats      Print event counts instead of events

Examples:
  bencode check --trace run.blog *.torrent
  bencode trace --category warning run.blog`)
}
