package game

//go:generate go tool stringer -type=State

// State is the loop's state machine. GameOver and Quit are terminal.
type State uint8

const (
	Running State = iota
	Paused
	GameOver
	Quit
)

// Finished reports whether the loop must stop.
func (s State) Finished() bool {
	return s == GameOver || s == Quit
}

// draws reports whether frames are composed and rendered in this state.
func (s State) draws() bool {
	return s == Running || s == GameOver
}
