package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bencoding/bencoding-go/pkg/inspect"
	"github.com/bencoding/bencoding-go/pkg/log"
)

// CheckOptions configures the check command.
type CheckOptions struct {
	GlobalOptions
	Strict bool
	JSON   bool
	From   string
}

// CheckResult is the outcome for one file.
type CheckResult struct {
	File     string         `json:"file"`
	Valid    bool           `json:"valid"`
	Kind     string         `json:"kind,omitempty"`
	Stats    *inspect.Stats `json:"stats,omitempty"`
	Warnings int            `json:"warnings"`
	Error    string         `json:"error,omitempty"`
}

// RunCheck decodes files and reports whether they are well formed.
func RunCheck(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	opts := CheckOptions{}
	fs.BoolVar(&opts.Strict, "strict", false, "Reject non-canonical encodings")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.StringVar(&opts.From, "from", formatAuto, "Input format (auto, bencode, cbor, json, yaml)")

	files, code, ok := parseFlags(fs, args, &opts.GlobalOptions, stderr, printCheckUsage)
	if !ok {
		return code
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printCheckUsage(stderr)
		return exitCommandError
	}

	s, err := newSession(opts.GlobalOptions, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer s.Close()

	var results []CheckResult
	exitCode := exitSuccess
	for _, file := range files {
		before := s.warnings.total()
		r := CheckResult{File: file}
		v, err := loadValue(s, file, opts.From, opts.Strict, stdin)
		r.Warnings = s.warnings.total() - before
		if err != nil {
			r.Error = err.Error()
			exitCode = exitInvalid
		} else {
			stats := inspect.Summarize(v)
			r.Valid = true
			r.Kind = v.Kind().String()
			r.Stats = &stats
		}
		results = append(results, r)
	}

	if opts.JSON {
		data, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(data))
		return exitCode
	}

	for _, r := range results {
		if !r.Valid {
			fmt.Fprintf(stdout, "FAIL %s: %s\n", r.File, r.Error)
			continue
		}
		fmt.Fprintf(stdout, "OK   %s: %s, %d nodes, depth %d, %d string bytes",
			r.File, r.Kind, r.Stats.Nodes(), r.Stats.Depth, r.Stats.StringBytes)
		if r.Warnings > 0 {
			fmt.Fprintf(stdout, ", %d warnings", r.Warnings)
		}
		fmt.Fprintln(stdout)
	}
	if !opts.Strict && s.warnings.total() > 0 {
		fmt.Fprintf(stdout, "\nnon-canonical input: %d unsorted keys, %d duplicate keys, %d non-canonical integers\n",
			s.warnings.count(log.WarnUnsortedKey),
			s.warnings.count(log.WarnDuplicateKey),
			s.warnings.count(log.WarnNonCanonicalInteger))
	}
	return exitCode
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: bencode check [options] <file>...

Options:
  --strict   Reject unsorted or duplicate keys and non-canonical integers
  --json     Output results as JSON
  --from     Input format: auto, bencode, cbor, json, yaml [default: auto]

Exit Codes:
  0   All files valid
  1   Command error
  2   At least one file invalid`)
}
