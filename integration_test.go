package bencoding_test

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/digest"
	"github.com/bencoding/bencoding-go/pkg/export"
	"github.com/bencoding/bencoding-go/pkg/inspect"
	"github.com/bencoding/bencoding-go/pkg/log"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

func buildMetainfo() *bencode.Dictionary {
	return bencode.D(
		"announce", bencode.Str("http://tracker.example/announce"),
		"comment", bencode.Str("test torrent"),
		"info", bencode.D(
			"name", bencode.Str("file.bin"),
			"length", bencode.Int(1048576),
			"piece length", bencode.Int(262144),
			"pieces", bencode.Bytes(bytes.Repeat([]byte{0xab, 0x01}, 40)),
		),
	)
}

// TestE2E_MetainfoRoundTrip builds a document, encodes it, decodes it
// strictly and checks that the info-hash matches the digest of the
// decoded info dictionary.
func TestE2E_MetainfoRoundTrip(t *testing.T) {
	data, err := wire.Marshal(buildMetainfo())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded, err := wire.UnmarshalWithOptions(data, wire.DecodeOptions{Strict: true})
	if err != nil {
		t.Fatalf("strict Unmarshal of encoder output failed: %v", err)
	}

	again, err := wire.Marshal(decoded)
	if err != nil {
		t.Fatalf("re-Marshal failed: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("round trip changed encoding:\n got %q\nwant %q", again, data)
	}

	info, err := inspect.Resolve(decoded, mustPath(t, "/info"))
	if err != nil {
		t.Fatalf("Resolve /info failed: %v", err)
	}

	for _, algo := range digest.Algorithms() {
		fromSpan, err := digest.InfoHash(data, algo)
		if err != nil {
			t.Fatalf("InfoHash(%s) failed: %v", algo, err)
		}
		fromTree, err := digest.Sum(info, algo)
		if err != nil {
			t.Fatalf("Sum(%s) failed: %v", algo, err)
		}
		if !bytes.Equal(fromSpan, fromTree) {
			t.Errorf("%s: span hash %x != tree hash %x", algo, fromSpan, fromTree)
		}
	}
}

// TestE2E_EditChangesInfoHash edits a decoded document through paths and
// checks the edit survives encoding.
func TestE2E_EditChangesInfoHash(t *testing.T) {
	data, err := wire.Marshal(buildMetainfo())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	before, err := digest.InfoHash(data, digest.SHA1)
	if err != nil {
		t.Fatalf("InfoHash failed: %v", err)
	}

	root, err := wire.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := inspect.Assign(root, mustPath(t, "/info/private"), bencode.Int(1)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if err := inspect.Remove(root, mustPath(t, "/comment")); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := inspect.Resolve(root, mustPath(t, "/comment")); !errors.Is(err, inspect.ErrNotFound) {
		t.Errorf("Resolve removed key: got %v, want ErrNotFound", err)
	}

	edited, err := wire.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal edited failed: %v", err)
	}
	after, err := digest.InfoHash(edited, digest.SHA1)
	if err != nil {
		t.Fatalf("InfoHash edited failed: %v", err)
	}
	if bytes.Equal(before, after) {
		t.Error("info-hash did not change after editing the info dictionary")
	}

	stats := inspect.Summarize(root)
	if stats.Dictionaries != 2 || stats.Integers != 3 {
		t.Errorf("stats: got %d dictionaries, %d integers; want 2, 3", stats.Dictionaries, stats.Integers)
	}
}

// TestE2E_FormatsAgree converts one tree through CBOR and YAML and checks
// every path back to bencode yields identical bytes.
func TestE2E_FormatsAgree(t *testing.T) {
	tree := buildMetainfo()
	want, err := wire.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	cborData, err := wire.ToCBOR(tree)
	if err != nil {
		t.Fatalf("ToCBOR failed: %v", err)
	}
	fromCBOR, err := wire.FromCBOR(cborData)
	if err != nil {
		t.Fatalf("FromCBOR failed: %v", err)
	}

	yamlData, err := export.YAML(tree)
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	fromYAML, err := export.ParseYAML(yamlData)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	for name, v := range map[string]bencode.Value{"cbor": fromCBOR, "yaml": fromYAML} {
		got, err := wire.Marshal(v)
		if err != nil {
			t.Fatalf("%s: Marshal failed: %v", name, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}

// TestE2E_TraceFile decodes non-canonical input with a file trace and
// reads the warnings back.
func TestE2E_TraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codec.blog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	trace := wire.Trace{Logger: logger, SessionID: "e2e-session", Source: "resume.dat"}
	v, err := wire.UnmarshalWithOptions([]byte("d1:bi1e1:ai2ee"), wire.DecodeOptions{Trace: trace})
	if err != nil {
		t.Fatalf("lenient Unmarshal failed: %v", err)
	}
	if _, err := wire.MarshalWithTrace(v, trace); err != nil {
		t.Fatalf("MarshalWithTrace failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	warning := log.CategoryWarning
	reader, err := log.NewFilteredReader(path, log.Filter{SessionID: "e2e-session", Category: &warning})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var warnings []log.Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		warnings = append(warnings, event)
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Warning == nil || warnings[0].Warning.Code != log.WarnUnsortedKey {
		t.Errorf("warning: got %+v, want UNSORTED_KEY", warnings[0].Warning)
	}
	if warnings[0].Source != "resume.dat" {
		t.Errorf("Source: got %q, want %q", warnings[0].Source, "resume.dat")
	}
}

func mustPath(t *testing.T, s string) inspect.Path {
	t.Helper()
	p, err := inspect.ParsePath(s)
	if err != nil {
		t.Fatalf("ParsePath(%q) failed: %v", s, err)
	}
	return p
}
