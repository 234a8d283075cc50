package game

import (
	"fmt"
	"time"

	"github.com/Ilingu/corrodis/display"
	"github.com/Ilingu/corrodis/geom"
	"github.com/Ilingu/corrodis/input"
	"github.com/Ilingu/corrodis/sim"
	"github.com/Ilingu/corrodis/tetris"
	"github.com/rs/zerolog"
)

// InputSystem polls the source once per frame and applies at most one key.
// Movement is ignored unless the game is running; a transform that would
// leave the board or enter landed cells is dropped.
type InputSystem struct {
	Session sim.Resource[Session]
	Rules   sim.Resource[Rules]
	Canvas  sim.Resource[Canvas]
	Source  input.Source
	Log     zerolog.Logger
}

func (s *InputSystem) Execute(frame *sim.Frame) error {
	key, ok := s.Source.PollKey()
	if !ok {
		return nil
	}
	sess := s.Session.Get()

	switch key {
	case input.Quit:
		sess.transition(Quit, s.Log)
	case input.Pause:
		switch sess.State {
		case Running:
			sess.transition(Paused, s.Log)
		case Paused:
			sess.transition(Running, s.Log)
		}
	case input.NewGame:
		s.newGame(frame, sess)
	default:
		if sess.State == Running {
			s.move(sess, key, frame.Now)
		}
	}
	return nil
}

func (s *InputSystem) newGame(frame *sim.Frame, sess *Session) {
	rules := s.Rules.Get()
	canvas := s.Canvas.Get()
	now := frame.Now
	frame.Commands.Defer(func() {
		if err := sess.restart(rules, now); err != nil {
			s.Log.Error().Err(err).Msg("new game")
			return
		}
		canvas.Generation++
		s.Log.Debug().Int("game", sess.Games).Msg("new game")
	})
}

func (s *InputSystem) move(sess *Session, key input.Key, now time.Time) {
	board := sess.Stack.Bounds()
	next := sess.Piece

	switch key {
	case input.RotateCW:
		if !next.Rotate(true, board) {
			return
		}
	case input.RotateCCW:
		if !next.Rotate(false, board) {
			return
		}
	case input.Left:
		if !next.TranslateLeft(board) {
			return
		}
	case input.Right:
		if !next.TranslateRight(board) {
			return
		}
	case input.SoftDrop:
		if sess.Stack.WouldCollide(next) {
			return
		}
		next.Fall()
		next.Reset(now)
	case input.HardDrop:
		for !sess.Stack.WouldCollide(next) {
			next.Fall()
		}
		// Open the gate so the next gravity step lands the piece.
		next.Reset(now.Add(-next.FallInterval))
	default:
		return
	}

	if sess.Stack.Overlaps(next) {
		return
	}
	sess.Piece = next
}

// GravitySystem advances the active piece once its fall interval elapsed:
// it falls a row, lands, or ends the game when it cannot leave the spawn row.
type GravitySystem struct {
	Session sim.Resource[Session]
	Rules   sim.Resource[Rules]
	Log     zerolog.Logger
}

func (s *GravitySystem) Execute(frame *sim.Frame) error {
	sess := s.Session.Get()
	if sess.State != Running || !sess.Piece.Tick(frame.Now) {
		return nil
	}

	if !sess.Stack.WouldCollide(sess.Piece) {
		sess.Piece.Fall()
		sess.Piece.Reset(frame.Now)
		return nil
	}

	if sess.Stack.IsGameOver(sess.Piece) {
		sess.transition(GameOver, s.Log)
		return nil
	}

	return s.land(sess, s.Rules.Get(), frame.Now)
}

func (s *GravitySystem) land(sess *Session, rules *Rules, now time.Time) error {
	landed := sess.Piece
	if err := sess.Stack.Commit(landed); err != nil {
		return fmt.Errorf("landing %v: %w", landed.Kind, err)
	}
	sess.Landed++

	cleared := sess.Stack.ClearFullRows()
	sess.Cleared += cleared

	kind := sess.Queue.Promote()
	next, err := rules.spawn(now, tetris.WithShape(kind))
	if err != nil {
		return fmt.Errorf("spawning %v: %w", kind, err)
	}
	sess.Piece = next

	s.Log.Debug().
		Stringer("landed", landed.Kind).
		Int("rows", cleared).
		Stringer("next", kind).
		Msg("piece landed")
	return nil
}

// ComposeSystem draws the stack, the active piece and the previews onto the
// canvas.
type ComposeSystem struct {
	Session sim.Resource[Session]
	Rules   sim.Resource[Rules]
	Canvas  sim.Resource[Canvas]
}

func (s *ComposeSystem) Execute(frame *sim.Frame) error {
	sess := s.Session.Get()
	if !sess.State.draws() {
		return nil
	}
	layout := s.Rules.Get().Layout
	canvas := s.Canvas.Get()

	for y := uint(0); y < layout.Board.Height; y++ {
		for x, color := range sess.Stack.Row(y) {
			canvas.Set(layout.BoardOrigin.Add(geom.Pt(uint(x), y)), color)
		}
	}
	canvas.overlay(layout.BoardOrigin, layout.Board, sess.Piece)

	canvas.fill(layout.PanelOrigin, layout.Panel, tetris.Background)
	for _, preview := range sess.Queue.Previews() {
		canvas.overlay(layout.PanelOrigin, layout.Panel, preview)
	}
	return nil
}

// RenderSystem sends the canvas cells that changed since the last present to
// the display. The first frame, and any frame after the canvas generation
// moved, repaints everything.
type RenderSystem struct {
	Session sim.Resource[Session]
	Canvas  sim.Resource[Canvas]
	Display display.Display

	last       [][]display.Attr
	generation int

	// Painted is the number of cells sent during the last frame.
	Painted int
}

func (s *RenderSystem) Execute(frame *sim.Frame) error {
	if !s.Session.Get().State.draws() {
		return nil
	}
	canvas := s.Canvas.Get()

	full := s.last == nil || s.generation != canvas.Generation
	if full {
		b := canvas.Bounds()
		s.last = make([][]display.Attr, b.Height)
		for y := range s.last {
			s.last[y] = make([]display.Attr, b.Width)
		}
		s.generation = canvas.Generation
	}

	painted, err := s.paint(canvas, full)
	s.Painted = painted
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := s.Display.Present(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (s *RenderSystem) paint(canvas *Canvas, full bool) (int, error) {
	b := canvas.Bounds()
	painted := 0
	var color display.Attr
	colorSet := false

	for y := uint(0); y < b.Height; y++ {
		contiguous := false
		for x := uint(0); x < b.Width; x++ {
			c := canvas.At(x, y)
			if !full && s.last[y][x] == c {
				contiguous = false
				continue
			}

			if !contiguous {
				if err := s.Display.MoveCursor(int(x)+1, int(y)+1); err != nil {
					return painted, err
				}
				contiguous = true
			}
			if !colorSet || c != color {
				if err := s.Display.SetColor(c); err != nil {
					return painted, err
				}
				color, colorSet = c, true
			}
			if err := s.Display.PaintCell(); err != nil {
				return painted, err
			}

			s.last[y][x] = c
			painted++
		}
	}
	return painted, nil
}
