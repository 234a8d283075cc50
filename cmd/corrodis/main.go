package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/rs/zerolog"
)

const (
	exitOK           = 0
	exitPrecondition = 1
	exitFailure      = 2
)

var (
	errNotTerminal = errors.New("stdout is not a terminal")
	errNoSize      = errors.New("terminal size unavailable")
	errCrashed     = errors.New("crashed")
)

type options struct {
	safe     bool
	backend  string
	seed     uint64
	scale    uint
	fps      int
	width    uint
	height   uint
	fall     time.Duration
	logPath  string
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet("corrodis", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&opts.safe, "s", false, "Safe mode: restore the terminal and log the stack if the game crashes.")
	fs.BoolVar(&opts.safe, "safe", false, "Same as -s.")
	fs.StringVar(&opts.backend, "backend", "ansi", "Terminal backend: ansi or tcell.")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed. 0 picks one from the clock.")
	fs.UintVar(&opts.scale, "scale", game.DefaultScale, "Side of one block, in terminal cells.")
	fs.IntVar(&opts.fps, "fps", game.DefaultFPS, "Frames per second.")
	fs.UintVar(&opts.width, "width", 0, "Board width in cells. 0 sizes the board from the terminal.")
	fs.UintVar(&opts.height, "height", 0, "Board height in cells. 0 sizes the board from the terminal.")
	fs.DurationVar(&opts.fall, "fall", tetris.DefaultFallInterval, "How long a piece rests before falling a row.")
	fs.StringVar(&opts.logPath, "log", os.Getenv("CORRODIS_LOG"), "Write logs to this file. Defaults to $CORRODIS_LOG.")
	fs.StringVar(&opts.logLevel, "log-level", "debug", "Minimum log level.")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.backend != "ansi" && opts.backend != "tcell" {
		return opts, fmt.Errorf("unknown backend %q", opts.backend)
	}
	if opts.fps <= 0 {
		return opts, fmt.Errorf("fps must be positive, got %d", opts.fps)
	}
	return opts, nil
}

func (o options) config() game.Config {
	cfg := game.DefaultConfig()
	cfg.Scale = o.scale
	cfg.FramePeriod = time.Second / time.Duration(o.fps)
	cfg.FallInterval = o.fall
	cfg.Board = tetris.Bounds{Width: o.width, Height: o.height}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	return cfg
}

// openLog returns a file logger, or a disabled one when path is empty. The
// terminal is in raw mode while the game runs, so nothing is logged to it.
func openLog(path, level string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	log := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return log, f.Close, nil
}

// diagnose prints msg in red on w.
func diagnose(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\x1b[%sm%s\x1b[%sm\n", display.RedFG, fmt.Sprintf(format, args...), display.Reset)
}

// exitCode maps the outcome of a game to the process exit status.
func exitCode(err error) int {
	var precondition *game.PreconditionError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &precondition):
		return exitPrecondition
	default:
		return exitFailure
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		diagnose(stderr, "%v", err)
		return exitPrecondition
	}

	log, closeLog, err := openLog(opts.logPath, opts.logLevel)
	if err != nil {
		diagnose(stderr, "opening log: %v", err)
		return exitPrecondition
	}
	defer closeLog()

	cfg := opts.config()
	if err := cfg.Validate(); err != nil {
		diagnose(stderr, "%v", err)
		return exitPrecondition
	}
	log.Info().
		Str("backend", opts.backend).
		Uint64("seed", cfg.Seed).
		Bool("safe", opts.safe).
		Msg("starting")

	var session *game.Session
	switch opts.backend {
	case "tcell":
		session, err = runTcell(cfg, opts.safe, log)
	default:
		session, err = runANSI(cfg, opts.safe, log)
	}

	if err != nil {
		log.Error().Err(err).Msg("stopped")
		diagnose(stderr, "%v", err)
		return exitCode(err)
	}

	fmt.Fprintf(stdout, "%v: %d pieces landed, %d rows cleared\n", session.State, session.Landed, session.Cleared)
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
