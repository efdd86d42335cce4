package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(e Event) { r.events = append(r.events, e) }

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{})

	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	rec := &recordingLogger{}
	if OrNoop(rec) != rec {
		t.Error("OrNoop should return a non-nil logger unchanged")
	}
}

func TestMultiLogger(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{Source: "x"})
	m.Log(Event{Source: "y"})

	if len(a.events) != 2 || len(b.events) != 2 {
		t.Fatalf("got %d and %d events, want 2 each", len(a.events), len(b.events))
	}
	if b.events[1].Source != "y" {
		t.Errorf("Source = %q, want y", b.events[1].Source)
	}
}

func TestSlogAdapterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(Event{
		Timestamp: time.Now(),
		SessionID: "abc",
		Category:  CategoryValue,
		Value:     &ValueEvent{Kind: "list", Size: 10, Nodes: 3, Depth: 2, Duration: time.Millisecond},
	})
	adapter.Log(Event{
		Category: CategoryWarning,
		Warning:  &WarningEvent{Code: WarnDuplicateKey, Offset: 4},
	})
	adapter.Log(Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Offset: 2, Message: "unexpected end of input"},
	})

	dec := json.NewDecoder(&buf)
	var records []map[string]any
	for dec.More() {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		records = append(records, rec)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	wantLevels := []string{"DEBUG", "WARN", "ERROR"}
	for i, want := range wantLevels {
		if records[i]["level"] != want {
			t.Errorf("record %d level = %v, want %s", i, records[i]["level"], want)
		}
	}
	if records[0]["session_id"] != "abc" || records[0]["kind"] != "list" {
		t.Errorf("unexpected value record: %v", records[0])
	}
	if records[1]["code"] != "DUPLICATE_KEY" {
		t.Errorf("unexpected warning record: %v", records[1])
	}
	if records[2]["error"] != "unexpected end of input" {
		t.Errorf("unexpected error record: %v", records[2])
	}
}
