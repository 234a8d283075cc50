// Package input turns terminal key presses into game commands without ever
// blocking the caller.
package input

//go:generate go tool stringer -type=Key

// Key is a decoded player command.
type Key uint8

const (
	None Key = iota
	Quit
	RotateCW
	RotateCCW
	Left
	Right
	SoftDrop
	HardDrop
	Pause
	NewGame
	Unknown
)

// Source yields at most one pending key per call. PollKey never blocks; it
// returns (None, false) when nothing is pending.
type Source interface {
	PollKey() (Key, bool)
}
