package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/export"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// zstdEncoder and zstdDecoder are shared; both are safe for concurrent
// use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("bencode: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("bencode: zstd decoder initialization failed: " + err.Error())
	}
}

// Input formats.
const (
	formatAuto    = "auto"
	formatBencode = "bencode"
	formatCBOR    = "cbor"
	formatJSON    = "json"
	formatYAML    = "yaml"
)

// readInput reads path ("-" for stdin). Content starting with the zstd
// frame magic is decompressed, and so is any path ending in .zst, which
// must then hold a zstd frame.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, zstdMagic) || strings.HasSuffix(path, ".zst") {
		data, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout for "" and "-". A path
// ending in .zst is compressed.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if strings.HasSuffix(path, ".zst") {
		data = zstdEncoder.EncodeAll(data, nil)
	}
	return os.WriteFile(path, data, 0644)
}

// detectFormat guesses an input format from the file name, looking
// through a trailing .zst.
func detectFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".zst")))
	switch ext {
	case ".cbor":
		return formatCBOR
	case ".json":
		return formatJSON
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatBencode
	}
}

// decodeInput decodes data in the given format.
func decodeInput(data []byte, format string, opts wire.DecodeOptions) (bencode.Value, error) {
	switch format {
	case formatBencode:
		return wire.UnmarshalWithOptions(data, opts)
	case formatCBOR:
		return wire.FromCBORWithTrace(data, opts.Trace)
	case formatJSON, formatYAML:
		return export.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// loadValue reads and decodes path for a command.
func loadValue(s *session, path, format string, strict bool, stdin io.Reader) (bencode.Value, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	if format == "" || format == formatAuto {
		format = detectFormat(path)
	}
	opts := wire.DecodeOptions{Strict: strict, Trace: s.trace(path)}
	v, err := decodeInput(data, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug("loaded input", "path", path, "format", format, "bytes", len(data))
	return v, nil
}
