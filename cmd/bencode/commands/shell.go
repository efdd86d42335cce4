package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/export"
	"github.com/bencoding/bencoding-go/pkg/inspect"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

// Shell is an interactive editor for one document.
type Shell struct {
	session   *session
	root      bencode.Value
	cwd       inspect.Path
	file      string
	dirty     bool
	formatter *inspect.Formatter
	out       io.Writer
}

func newShell(s *session, root bencode.Value, file string, out io.Writer) *Shell {
	return &Shell{
		session:   s,
		root:      root,
		cwd:       inspect.Path{},
		file:      file,
		formatter: inspect.NewFormatter(),
		out:       out,
	}
}

// RunShell opens a file in the interactive shell.
func RunShell(args []string, stdin io.ReadCloser, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("shell", pflag.ContinueOnError)
	g := GlobalOptions{}
	var from string
	fs.StringVar(&from, "from", formatAuto, "Input format (auto, bencode, cbor, json, yaml)")

	rest, code, ok := parseFlags(fs, args, &g, stderr, printShellUsage)
	if !ok {
		return code
	}
	if len(rest) != 1 {
		fmt.Fprintln(stderr, "Error: no input file specified")
		printShellUsage(stderr)
		return exitCommandError
	}

	s, err := newSession(g, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer s.Close()

	root, err := loadValue(s, rest[0], from, false, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "/> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    shellCompleter,
		Stdin:           stdin,
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create readline: %v\n", err)
		return exitCommandError
	}
	defer rl.Close()

	sh := newShell(s, root, rest[0], rl.Stdout())
	sh.printHelp()
	for {
		rl.SetPrompt(sh.cwd.String() + "> ")
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			break
		}
		if sh.Exec(line) {
			break
		}
	}
	if sh.dirty {
		fmt.Fprintln(rl.Stdout(), "Unsaved changes discarded.")
	}
	fmt.Fprintln(rl.Stdout(), "Exiting...")
	return exitSuccess
}

var shellCompleter = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("ls"),
	readline.PcItem("cd"),
	readline.PcItem("pwd"),
	readline.PcItem("get"),
	readline.PcItem("set"),
	readline.PcItem("rm"),
	readline.PcItem("stats"),
	readline.PcItem("save"),
	readline.PcItem("quit"),
)

// Exec runs one command line and reports whether the shell should exit.
func (sh *Shell) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "help", "?":
		sh.printHelp()
	case "ls", "l":
		sh.cmdList(rest)
	case "cd":
		sh.cmdCd(rest)
	case "pwd":
		fmt.Fprintln(sh.out, sh.cwd)
	case "get", "g":
		sh.cmdGet(rest)
	case "set", "s":
		sh.cmdSet(rest)
	case "rm":
		sh.cmdRemove(rest)
	case "stats":
		sh.cmdStats(rest)
	case "save", "w":
		sh.cmdSave(rest)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(sh.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (sh *Shell) printHelp() {
	fmt.Fprintln(sh.out, `
Commands:
  ls [path]          - List the keys or items of a container
  cd <path>          - Change the current container (.. goes up, / is the root)
  pwd                - Print the current path
  get [path]         - Print a value
  set <path> <yaml>  - Store a value given as YAML, e.g. set info/private 1
  rm <path>          - Remove a key or list item
  stats [path]       - Summarize a subtree
  save [file]        - Write the document as bencode (.zst compresses)
  quit               - Exit

  Path Format:
    info/files/0/length - keys and list indexes, negative indexes count from the end
    a list index of "-" in set appends`)
}

// resolve turns an argument into an absolute path.
func (sh *Shell) resolve(arg string) (inspect.Path, error) {
	if arg == "" {
		return sh.cwd, nil
	}
	return sh.cwd.Join(arg)
}

func (sh *Shell) lookup(arg string) (bencode.Value, inspect.Path, bool) {
	p, err := sh.resolve(arg)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return nil, nil, false
	}
	v, err := inspect.Resolve(sh.root, p)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return nil, nil, false
	}
	return v, p, true
}

func (sh *Shell) cmdList(arg string) {
	v, _, ok := sh.lookup(arg)
	if !ok {
		return
	}
	switch c := v.(type) {
	case *bencode.Dictionary:
		if c.Empty() {
			fmt.Fprintln(sh.out, "  (empty)")
		}
		for k, item := range c.All() {
			fmt.Fprintf(sh.out, "  %s: %s\n", sh.formatter.FormatBytes([]byte(k)), sh.brief(item))
		}
	case *bencode.List:
		if c.Empty() {
			fmt.Fprintln(sh.out, "  (empty)")
		}
		for i, item := range c.All() {
			fmt.Fprintf(sh.out, "  [%d] %s\n", i, sh.brief(item))
		}
	default:
		fmt.Fprintf(sh.out, "  %s\n", sh.brief(v))
	}
}

// brief summarizes containers and prints scalars in full.
func (sh *Shell) brief(v bencode.Value) string {
	switch c := v.(type) {
	case *bencode.Dictionary:
		return fmt.Sprintf("dictionary (%d keys)", c.Len())
	case *bencode.List:
		return fmt.Sprintf("list (%d items)", c.Len())
	default:
		return sh.formatter.Repr(v)
	}
}

func (sh *Shell) cmdCd(arg string) {
	if arg == "" {
		arg = "/"
	}
	v, p, ok := sh.lookup(arg)
	if !ok {
		return
	}
	switch v.(type) {
	case *bencode.Dictionary, *bencode.List:
		sh.cwd = p
	default:
		fmt.Fprintf(sh.out, "Error: %s: %v\n", p, inspect.ErrNotContainer)
	}
}

func (sh *Shell) cmdGet(arg string) {
	v, _, ok := sh.lookup(arg)
	if !ok {
		return
	}
	fmt.Fprintln(sh.out, sh.formatter.Format(v))
}

func (sh *Shell) cmdSet(arg string) {
	target, literal, found := strings.Cut(arg, " ")
	if !found || strings.TrimSpace(literal) == "" {
		fmt.Fprintln(sh.out, "Usage: set <path> <yaml>")
		return
	}
	p, err := sh.resolve(target)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	v, err := export.ParseYAML([]byte(literal))
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if err := inspect.Assign(sh.root, p, v); err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	sh.dirty = true
	sh.session.logger.Info("set", "path", p.String(), "kind", v.Kind().String())
	fmt.Fprintf(sh.out, "%s = %s\n", p, sh.formatter.Repr(v))
}

func (sh *Shell) cmdRemove(arg string) {
	if arg == "" {
		fmt.Fprintln(sh.out, "Usage: rm <path>")
		return
	}
	p, err := sh.resolve(arg)
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if err := inspect.Remove(sh.root, p); err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	sh.dirty = true
	sh.session.logger.Info("remove", "path", p.String())

	// The working directory may have been inside the removed value.
	if _, err := inspect.Resolve(sh.root, sh.cwd); err != nil {
		sh.cwd = inspect.Path{}
	}
	fmt.Fprintf(sh.out, "removed %s\n", p)
}

func (sh *Shell) cmdStats(arg string) {
	v, _, ok := sh.lookup(arg)
	if !ok {
		return
	}
	st := inspect.Summarize(v)
	fmt.Fprintf(sh.out, "  Nodes: %d (dictionaries %d, lists %d, strings %d, integers %d)\n",
		st.Nodes(), st.Dictionaries, st.Lists, st.Strings, st.Integers)
	fmt.Fprintf(sh.out, "  Depth: %d\n", st.Depth)
	fmt.Fprintf(sh.out, "  String bytes: %d  Key bytes: %d\n", st.StringBytes, st.KeyBytes)
	if st.Placeholders > 0 {
		fmt.Fprintf(sh.out, "  Placeholders: %d\n", st.Placeholders)
	}
}

func (sh *Shell) cmdSave(arg string) {
	file := arg
	if file == "" {
		file = sh.file
	}
	if file == "" || file == "-" {
		fmt.Fprintln(sh.out, "Usage: save <file>")
		return
	}
	if detectFormat(file) != formatBencode {
		fmt.Fprintf(sh.out, "Error: save writes bencode; %s looks like another format\n", file)
		return
	}
	data, err := wire.MarshalWithTrace(sh.root, sh.session.trace(file))
	if err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if err := writeOutput(file, data, sh.out); err != nil {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
		return
	}
	if file == sh.file {
		sh.dirty = false
	}
	fmt.Fprintf(sh.out, "saved %s (%d bytes)\n", file, len(data))
}

func printShellUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: bencode shell [options] <file>

Options:
  --from   Input format: auto, bencode, cbor, json, yaml [default: auto]

Opens the document in an interactive editor. Type 'help' at the prompt
for commands. 'save' always writes bencode.`)
}
