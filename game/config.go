package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ilingu/corrodis/tetris"
)

const (
	DefaultFPS   = 30
	DefaultScale = 1
)

// Config holds the tunables of a game.
type Config struct {
	// Board is the playfield in board cells. The zero value sizes the board
	// from the terminal viewport.
	Board tetris.Bounds
	// Scale is the side, in board cells, of one block.
	Scale        uint
	FramePeriod  time.Duration
	FallInterval time.Duration
	Seed         uint64
}

func DefaultConfig() Config {
	return Config{
		Scale:        DefaultScale,
		FramePeriod:  time.Second / DefaultFPS,
		FallInterval: tetris.DefaultFallInterval,
		Seed:         uint64(time.Now().UnixNano()),
	}
}

// Validate checks the config on its own; board dimensions are checked
// against the scale by NewLayout.
func (c Config) Validate() error {
	var errs []error
	if c.Scale == 0 {
		errs = append(errs, errors.New("scale must be at least 1"))
	}
	if c.FramePeriod <= 0 {
		errs = append(errs, fmt.Errorf("frame period must be positive, got %v", c.FramePeriod))
	}
	if c.FallInterval <= 0 {
		errs = append(errs, fmt.Errorf("fall interval must be positive, got %v", c.FallInterval))
	}
	if (c.Board.Width == 0) != (c.Board.Height == 0) {
		errs = append(errs, fmt.Errorf("board %dx%d: set both dimensions or neither", c.Board.Width, c.Board.Height))
	}
	return errors.Join(errs...)
}
