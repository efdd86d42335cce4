package log

import (
	"bytes"
	"testing"
	"time"
)

func TestEventNonUTF8Source(t *testing.T) {
	in := Event{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 1, time.UTC),
		Source:    "resume-\xff\xfe.dat",
		Category:  CategoryWarning,
		Warning:   &WarningEvent{Code: WarnDuplicateKey, Offset: 4, Message: "key \"\x80\""},
	}
	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if out.Source != in.Source {
		t.Errorf("Source = %q, want %q", out.Source, in.Source)
	}
	if out.Warning == nil || out.Warning.Message != in.Warning.Message {
		t.Errorf("Warning = %+v, want %+v", out.Warning, in.Warning)
	}
}

func TestEventTimestampTagged(t *testing.T) {
	data, err := EncodeEvent(Event{Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	// map header, key 1, tag 0 (RFC 3339 date/time)
	if !bytes.HasPrefix(data[1:], []byte{0x01, 0xc0}) {
		t.Errorf("timestamp not tagged: % x", data)
	}
}

func TestDecodeEventRejects(t *testing.T) {
	deep := append([]byte{0xa1, 0x18, 0x63}, bytes.Repeat([]byte{0x81}, 9)...)
	deep = append(deep, 0x80)

	tests := []struct {
		name string
		data []byte
	}{
		// {6: "a", 6: "b"}
		{"duplicate key", []byte{0xa2, 0x06, 0x61, 0x61, 0x06, 0x61, 0x62}},
		// indefinite-length {6: "a"}
		{"indefinite length", []byte{0xbf, 0x06, 0x61, 0x61, 0xff}},
		{"nested too deep", deep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeEvent(tt.data); err == nil {
				t.Errorf("DecodeEvent(% x) should fail", tt.data)
			}
		})
	}
}

func TestDecodeEventSkipsUnknownKeys(t *testing.T) {
	// {6: "x", 99: 1}
	out, err := DecodeEvent([]byte{0xa2, 0x06, 0x61, 0x78, 0x18, 0x63, 0x01})
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if out.Source != "x" {
		t.Errorf("Source = %q, want %q", out.Source, "x")
	}
}
