package sim

import "time"

type Frame struct {
	Now       time.Time
	Delta     time.Duration
	Commands  *Commands
	Resources *Resources
}

func newFrame(now time.Time, delta time.Duration, resources *Resources) *Frame {
	return &Frame{
		Now:       now,
		Delta:     delta,
		Commands:  newCommands(),
		Resources: resources,
	}
}
