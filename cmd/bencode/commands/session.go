// Package commands implements the bencode CLI commands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/bencoding/bencoding-go/pkg/log"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitInvalid      = 2
)

// GlobalOptions are accepted by every command.
type GlobalOptions struct {
	LogLevel string
	Trace    string
}

func addGlobalFlags(fs *pflag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.StringVar(&g.Trace, "trace", "", "Append CBOR codec events to this file")
}

// session ties together the operational logger and the codec event sinks
// for one command run. Every event carries the session ID.
type session struct {
	id       string
	logger   *slog.Logger
	events   log.Logger
	file     *log.FileLogger
	warnings *warningCounter
}

func newSession(g GlobalOptions, stderr io.Writer) (*session, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", g.LogLevel)
	}

	s := &session{
		id:       uuid.NewString(),
		logger:   slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		warnings: &warningCounter{},
	}
	sinks := []log.Logger{log.NewSlogAdapter(s.logger), s.warnings}

	if g.Trace != "" {
		fl, err := log.NewFileLogger(g.Trace)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace file: %w", err)
		}
		s.file = fl
		sinks = append(sinks, fl)
	}
	s.events = log.NewMultiLogger(sinks...)
	s.logger = s.logger.With(slog.String("session_id", s.id))
	return s, nil
}

func (s *session) trace(source string) wire.Trace {
	return wire.Trace{Logger: s.events, SessionID: s.id, Source: source}
}

func (s *session) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// warningCounter counts leniency warnings so commands can report them.
type warningCounter struct {
	mu    sync.Mutex
	codes map[log.WarningCode]int
}

func (w *warningCounter) Log(e log.Event) {
	if e.Warning == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.codes == nil {
		w.codes = make(map[log.WarningCode]int)
	}
	w.codes[e.Warning.Code]++
}

func (w *warningCounter) total() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, c := range w.codes {
		n += c
	}
	return n
}

func (w *warningCounter) count(code log.WarningCode) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.codes[code]
}

// parseFlags parses args with the global flags added. It returns the
// positional arguments; ok is false when the caller should exit with the
// returned code.
func parseFlags(fs *pflag.FlagSet, args []string, g *GlobalOptions, stderr io.Writer, usage func(io.Writer)) ([]string, int, bool) {
	addGlobalFlags(fs, g)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			usage(stderr)
			return nil, exitSuccess, false
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		usage(stderr)
		return nil, exitCommandError, false
	}
	return fs.Args(), exitSuccess, true
}
