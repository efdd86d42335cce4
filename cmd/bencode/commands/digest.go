package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bencoding/bencoding-go/pkg/digest"
)

// DigestOptions configures the digest command.
type DigestOptions struct {
	GlobalOptions
	Algo string
	Info bool
	From string
}

// RunDigest prints a digest per file, in the style of sha1sum.
func RunDigest(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("digest", pflag.ContinueOnError)
	opts := DigestOptions{}
	fs.StringVar(&opts.Algo, "algo", "sha1", "Hash algorithm (sha1, sha256, blake2b, blake3)")
	fs.BoolVar(&opts.Info, "info", false, "Hash the raw info dictionary (torrent info-hash)")
	fs.StringVar(&opts.From, "from", formatAuto, "Input format for whole-value digests")

	files, code, ok := parseFlags(fs, args, &opts.GlobalOptions, stderr, printDigestUsage)
	if !ok {
		return code
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printDigestUsage(stderr)
		return exitCommandError
	}

	algo, err := digest.ParseAlgorithm(opts.Algo)
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

	exitCode := exitSuccess
	for _, file := range files {
		sum, err := fileDigest(s, file, algo, opts, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", file, err)
			exitCode = exitInvalid
			continue
		}
		fmt.Fprintf(stdout, "%s  %s\n", hex.EncodeToString(sum), file)
	}
	return exitCode
}

func fileDigest(s *session, file string, algo digest.Algorithm, opts DigestOptions, stdin io.Reader) ([]byte, error) {
	if opts.Info {
		data, err := readInput(file, stdin)
		if err != nil {
			return nil, err
		}
		return digest.InfoHash(data, algo)
	}
	v, err := loadValue(s, file, opts.From, false, stdin)
	if err != nil {
		return nil, err
	}
	return digest.Sum(v, algo)
}

func printDigestUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: bencode digest [options] <file>...

Options:
  --algo   Hash algorithm: sha1, sha256, blake2b, blake3 [default: sha1]
  --info   Hash the raw bytes of the top-level "info" value
  --from   Input format: auto, bencode, cbor, json, yaml [default: auto]

Without --info the digest covers the canonical bencoding of the whole
document, so files that differ only in key order or integer formatting
hash the same.

Examples:
  bencode digest --info ubuntu.torrent
  bencode digest --algo blake3 *.torrent`)
}
