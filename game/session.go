package game

import (
	"fmt"
	"time"

	"github.com/Ilingu/corrodis/tetris"
	"github.com/rs/zerolog"
)

// Rules is the fixed context pieces are spawned with.
type Rules struct {
	Layout       Layout
	FallInterval time.Duration
	Rand         tetris.Rand
}

func (r *Rules) spawn(now time.Time, opts ...tetris.SpawnOption) (tetris.Piece, error) {
	opts = append([]tetris.SpawnOption{
		tetris.WithScale(r.Layout.Scale),
		tetris.WithFallInterval(r.FallInterval),
	}, opts...)
	return tetris.Spawn(r.Rand, r.Layout.Board, now, opts...)
}

// Session is the mutable state of the game in progress.
type Session struct {
	State State
	Piece tetris.Piece
	Stack *tetris.Stack
	Queue *tetris.Queue

	Games   int
	Landed  int
	Cleared int
}

func newSession(rules *Rules, now time.Time) (*Session, error) {
	queue, err := tetris.NewQueue(rules.Rand, rules.Layout.Panel, rules.Layout.Slots)
	if err != nil {
		return nil, fmt.Errorf("preview queue: %w", err)
	}
	piece, err := rules.spawn(now)
	if err != nil {
		return nil, fmt.Errorf("first piece: %w", err)
	}
	return &Session{
		State: Running,
		Piece: piece,
		Stack: tetris.NewStack(rules.Layout.Board),
		Queue: queue,
		Games: 1,
	}, nil
}

// restart begins a new game on the same board.
func (s *Session) restart(rules *Rules, now time.Time) error {
	queue, err := tetris.NewQueue(rules.Rand, rules.Layout.Panel, rules.Layout.Slots)
	if err != nil {
		return fmt.Errorf("preview queue: %w", err)
	}
	piece, err := rules.spawn(now)
	if err != nil {
		return fmt.Errorf("first piece: %w", err)
	}

	s.Stack.Reset()
	s.Queue = queue
	s.Piece = piece
	s.State = Running
	s.Games++
	s.Landed = 0
	s.Cleared = 0
	return nil
}

func (s *Session) transition(to State, log zerolog.Logger) {
	if s.State == to {
		return
	}
	log.Debug().Stringer("from", s.State).Stringer("to", to).Msg("state changed")
	s.State = to
}
