package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/game"
	"github.com/Ilingu/corrodis/input"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// layoutFor sizes the board from the viewport unless cfg fixes it.
func layoutFor(cfg game.Config, cols, rows int) (game.Layout, error) {
	if cfg.Board.Width == 0 {
		return game.LayoutForViewport(cols, rows, cfg.Scale)
	}

	layout, err := game.NewLayout(cfg.Board, cfg.Scale)
	if err != nil {
		return layout, game.Precondition(err, "board %dx%d", cfg.Board.Width, cfg.Board.Height)
	}
	return layout, layout.CheckViewport(cols, rows)
}

// runANSI plays on the controlling terminal with hand-encoded escape
// sequences and raw stdin.
func runANSI(cfg game.Config, safe bool, log zerolog.Logger) (*game.Session, error) {
	out := int(os.Stdout.Fd())
	if !term.IsTerminal(out) {
		return nil, game.Precondition(errNotTerminal, "cannot draw the board")
	}
	cols, rows, err := term.GetSize(out)
	if err != nil {
		return nil, game.Precondition(errNoSize, "%v", err)
	}
	layout, err := layoutFor(cfg, cols, rows)
	if err != nil {
		return nil, err
	}

	in := int(os.Stdin.Fd())
	saved, err := term.MakeRaw(in)
	if err != nil {
		return nil, game.Precondition(err, "entering raw mode")
	}
	defer func() {
		if err := term.Restore(in, saved); err != nil {
			log.Warn().Err(err).Msg("restoring terminal mode")
		}
	}()

	src := input.NewReader(os.Stdin, input.DefaultKeymap())
	defer src.Close()

	return play(cfg, layout, display.NewANSI(os.Stdout), src, safe, os.Stdout, log)
}

// runTcell plays on a tcell screen, which handles raw mode itself.
func runTcell(cfg game.Config, safe bool, log zerolog.Logger) (*game.Session, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, game.Precondition(errNotTerminal, "%v", err)
	}
	if err := screen.Init(); err != nil {
		return nil, game.Precondition(err, "initialising screen")
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	layout, err := layoutFor(cfg, cols, rows)
	if err != nil {
		return nil, err
	}

	src := input.NewTcellSource(screen, input.DefaultKeymap())
	defer src.Close()

	return play(cfg, layout, display.NewTcell(screen), src, safe, os.Stdout, log)
}

// play runs one loop on d and tears the display down afterwards. In safe mode
// a panic is recovered: the restore sequence is written straight to restore,
// bypassing d, and the crash is reported as an error. Otherwise the deferred
// restores run while the panic unwinds.
func play(cfg game.Config, layout game.Layout, d display.Display, src input.Source, safe bool, restore io.Writer, log zerolog.Logger) (session *game.Session, err error) {
	defer func() {
		if !safe {
			return
		}
		if r := recover(); r != nil {
			_, _ = io.WriteString(restore, display.RestoreSequence)
			log.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("game crashed")
			err = fmt.Errorf("%w: %v", errCrashed, r)
		}
	}()

	defer func() {
		if terr := display.Teardown(d); terr != nil {
			log.Warn().Err(terr).Msg("tearing down display")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop, err := game.New(cfg, layout, d, src, game.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if _, err := loop.Run(ctx); err != nil {
		return loop.Session(), err
	}
	return loop.Session(), nil
}
