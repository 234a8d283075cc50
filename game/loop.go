// Package game runs the falling-block game: it wires the piece, stack and
// queue models into an ordered set of systems and paces them at a fixed
// frame rate.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/input"
	"github.com/Ilingu/corrodis/sim"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/rs/zerolog"
)

// Loop owns one game and the scheduler that advances it.
type Loop struct {
	cfg     Config
	layout  Layout
	display display.Display
	clock   sim.Clock
	rng     tetris.Rand
	log     zerolog.Logger

	scheduler *sim.Scheduler
	session   *Session
	canvas    *Canvas
	render    *RenderSystem
}

// Option customises New.
type Option func(*Loop)

// WithClock replaces the wall clock, for tests and headless runs.
func WithClock(c sim.Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithRand replaces the random source seeded from Config.Seed.
func WithRand(r tetris.Rand) Option {
	return func(l *Loop) { l.rng = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// New builds the first game on layout and registers the systems in frame
// order: input, gravity, compose, render.
func New(cfg Config, layout Layout, d display.Display, src input.Source, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	l := &Loop{
		cfg:     cfg,
		layout:  layout,
		display: d,
		clock:   sim.SystemClock{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = tetris.NewRand(cfg.Seed)
	}

	rules := &Rules{Layout: layout, FallInterval: cfg.FallInterval, Rand: l.rng}
	session, err := newSession(rules, l.clock.Now())
	if err != nil {
		return nil, err
	}
	l.session = session
	l.canvas = NewCanvas(layout)

	resources := sim.NewResources()
	sim.Provide(resources, rules)
	sim.Provide(resources, l.session)
	sim.Provide(resources, l.canvas)

	l.render = &RenderSystem{Display: d}
	l.scheduler = sim.NewScheduler(resources, l.clock)
	l.scheduler.Register(&InputSystem{Source: src, Log: l.log})
	l.scheduler.Register(&GravitySystem{Log: l.log})
	l.scheduler.Register(&ComposeSystem{})
	l.scheduler.Register(l.render)

	return l, nil
}

// Run prepares the display and plays until the game is over, the player
// quits, or a system fails. Cancelling ctx counts as quitting. Restoring the
// terminal is left to the caller.
func (l *Loop) Run(ctx context.Context) (State, error) {
	if err := l.prepare(); err != nil {
		return l.session.State, err
	}

	l.log.Debug().
		Uint("width", l.layout.Board.Width).
		Uint("height", l.layout.Board.Height).
		Uint("scale", l.layout.Scale).
		Dur("frame", l.cfg.FramePeriod).
		Msg("loop started")

	err := l.scheduler.Run(ctx, l.cfg.FramePeriod, func() bool {
		return l.session.State.Finished()
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		l.session.transition(Quit, l.log)
		err = nil
	}

	l.log.Debug().
		Stringer("state", l.session.State).
		Int("landed", l.session.Landed).
		Int("cleared", l.session.Cleared).
		Err(err).
		Msg("loop stopped")
	return l.session.State, err
}

func (l *Loop) prepare() error {
	steps := []func() error{
		l.display.HideCursor,
		l.display.Clear,
		l.display.ClearHistory,
		func() error { return l.display.MoveCursor(1, 1) },
		l.display.Present,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("preparing display: %w", err)
		}
	}
	return nil
}

// Tick runs a single frame at now, without pacing.
func (l *Loop) Tick(now time.Time) error {
	return l.scheduler.Once(now)
}

// State returns the current state of the game.
func (l *Loop) State() State {
	return l.session.State
}

// Piece returns a copy of the active piece.
func (l *Loop) Piece() tetris.Piece {
	return l.session.Piece
}

// Stack returns the landed blocks of the current game.
func (l *Loop) Stack() *tetris.Stack {
	return l.session.Stack
}

// Queue returns the upcoming pieces of the current game.
func (l *Loop) Queue() *tetris.Queue {
	return l.session.Queue
}

// Session returns the mutable game state shared by the systems.
func (l *Loop) Session() *Session {
	return l.session
}

// Canvas returns the frame composed during the last drawn frame.
func (l *Loop) Canvas() *Canvas {
	return l.canvas
}

// Layout returns the placement of the board and the preview panel.
func (l *Loop) Layout() Layout {
	return l.layout
}

// Painted returns how many cells the last rendered frame sent.
func (l *Loop) Painted() int {
	return l.render.Painted
}

// Stats returns the scheduler's frame and per-system timing statistics.
func (l *Loop) Stats() *sim.SchedulerStats {
	return l.scheduler.Stats()
}
