package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/inspect"
)

// GetOptions configures the get command.
type GetOptions struct {
	GlobalOptions
	From string
	Raw  bool
}

// RunGet prints the value at a path.
func RunGet(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("get", pflag.ContinueOnError)
	opts := GetOptions{}
	fs.StringVar(&opts.From, "from", formatAuto, "Input format (auto, bencode, cbor, json, yaml)")
	fs.BoolVar(&opts.Raw, "raw", false, "Print strings and integers without quoting")

	rest, code, ok := parseFlags(fs, args, &opts.GlobalOptions, stderr, printGetUsage)
	if !ok {
		return code
	}
	if len(rest) != 2 {
		fmt.Fprintln(stderr, "Error: expected <file> <path>")
		printGetUsage(stderr)
		return exitCommandError
	}

	path, err := inspect.ParsePath(rest[1])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	s, err := newSession(opts.GlobalOptions, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer s.Close()

	root, err := loadValue(s, rest[0], opts.From, false, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}

	v, err := inspect.Resolve(root, path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}

	if opts.Raw {
		switch v := v.(type) {
		case *bencode.String:
			stdout.Write(v.Value())
			fmt.Fprintln(stdout)
			return exitSuccess
		case *bencode.Integer:
			fmt.Fprintln(stdout, strconv.FormatInt(v.Value(), 10))
			return exitSuccess
		}
	}
	fmt.Fprintln(stdout, inspect.NewFormatter().Format(v))
	return exitSuccess
}

func printGetUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: bencode get [options] <file> <path>

Options:
  --from   Input format: auto, bencode, cbor, json, yaml [default: auto]
  --raw    Print strings and integers without quoting

Path Format:
  info/files/0/length   - keys and list indexes, negative indexes count from the end
  a~1b                  - "~1" is a literal "/", "~0" a literal "~"

Examples:
  bencode get ubuntu.torrent info/name
  bencode get --raw ubuntu.torrent announce`)
}
