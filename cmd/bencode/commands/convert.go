package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/export"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	GlobalOptions
	Input   string
	Output  string // Empty means stdout
	From    string
	To      string
	Compact bool
}

// RunConvert converts between bencode, CBOR, JSON and YAML.
func RunConvert(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	opts := ConvertOptions{}
	fs.StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout); .zst compresses")
	fs.StringVar(&opts.From, "from", formatAuto, "Input format (auto, bencode, cbor, json, yaml)")
	fs.StringVar(&opts.To, "to", "", "Output format (bencode, cbor, json, yaml)")
	fs.BoolVar(&opts.Compact, "compact", false, "Compact JSON output")

	rest, code, ok := parseFlags(fs, args, &opts.GlobalOptions, stderr, printConvertUsage)
	if !ok {
		return code
	}
	if len(rest) != 1 {
		fmt.Fprintln(stderr, "Error: no input file specified")
		printConvertUsage(stderr)
		return exitCommandError
	}
	opts.Input = rest[0]
	if opts.To == "" {
		fmt.Fprintln(stderr, "Error: --to is required")
		printConvertUsage(stderr)
		return exitCommandError
	}

	s, err := newSession(opts.GlobalOptions, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer s.Close()

	v, err := loadValue(s, opts.Input, opts.From, false, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}

	data, err := encodeOutput(s, v, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if err := writeOutput(opts.Output, data, stdout); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return exitCommandError
	}
	if opts.Output != "" && opts.Output != "-" {
		fmt.Fprintf(stdout, "Converted %s -> %s\n", opts.Input, opts.Output)
	}
	return exitSuccess
}

func encodeOutput(s *session, v bencode.Value, opts ConvertOptions) ([]byte, error) {
	switch opts.To {
	case formatBencode:
		return wire.MarshalWithTrace(v, s.trace(opts.Output))
	case formatCBOR:
		return wire.ToCBORWithTrace(v, s.trace(opts.Output))
	case formatJSON:
		if export.HasBinary(v) {
			s.logger.Warn("JSON output is lossy: binary strings are written as 0x hex text",
				slog.String("input", opts.Input))
		}
		data, err := export.JSON(v, !opts.Compact)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatYAML:
		return export.YAML(v)
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.To)
	}
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: bencode convert --to <format> [options] <input-file>

Options:
  --to           Output format: bencode, cbor, json, yaml (required)
  --from         Input format: auto, bencode, cbor, json, yaml [default: auto]
  -o, --output   Output file (default: stdout); a .zst suffix compresses
  --compact      Compact JSON output

JSON has no byte strings: values that are not valid UTF-8 are written as
"0x" hex text and read back as that text. Use yaml for a lossless text form.

Examples:
  bencode convert --to json ubuntu.torrent
  bencode convert --to cbor -o resume.cbor resume.dat
  bencode convert --from yaml --to bencode -o out.torrent.zst edited.yaml`)
}
