// Command bencode inspects, edits, converts and hashes bencoded files
// such as .torrent metainfo and client resume data.
//
// Usage:
//
//	bencode <command> [flags] <file>
//
// Commands:
//
//	show      Pretty print a document
//	get       Print the value at a path
//	convert   Convert between bencode, CBOR, JSON and YAML
//	digest    Hash documents or their info dictionary
//	check     Validate documents, optionally requiring canonical form
//	trace     View a CBOR codec trace written with --trace
//	shell     Edit a document interactively
//
// Files ending in .zst or starting with the zstd frame magic are
// decompressed transparently.
package main

import (
	"fmt"
	"os"

	"github.com/bencoding/bencoding-go/cmd/bencode/commands"
	"github.com/bencoding/bencoding-go/pkg/version"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "show":
		exitCode = commands.RunShow(args, os.Stdin, os.Stdout, os.Stderr)
	case "get":
		exitCode = commands.RunGet(args, os.Stdin, os.Stdout, os.Stderr)
	case "convert":
		exitCode = commands.RunConvert(args, os.Stdin, os.Stdout, os.Stderr)
	case "digest":
		exitCode = commands.RunDigest(args, os.Stdin, os.Stdout, os.Stderr)
	case "check":
		exitCode = commands.RunCheck(args, os.Stdin, os.Stdout, os.Stderr)
	case "trace":
		exitCode = commands.RunTrace(args, os.Stdout, os.Stderr)
	case "shell":
		exitCode = commands.RunShell(args, os.Stdin, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Printf("bencode version %s\n", version.Current)
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`bencode - bencoded document tool

Usage:
  bencode <command> [options] [files...]

Commands:
  show      Pretty print a document
  get       Print the value at a path
  convert   Convert between bencode, CBOR, JSON and YAML
  digest    Hash documents or their info dictionary
  check     Validate documents, optionally requiring canonical form
  trace     View a CBOR codec trace written with --trace
  shell     Edit a document interactively

Global Options (all commands except trace):
  --log-level   debug, info, warn, error [default: warn]
  --trace       Append CBOR codec events to a file

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  bencode show ubuntu.torrent
  bencode get ubuntu.torrent "info/piece length"
  bencode convert --to yaml resume.dat.zst
  bencode digest --info --algo sha256 ubuntu.torrent
  bencode check --strict --trace run.blog *.torrent

For command-specific help, run:
  bencode <command> --help`)
}
