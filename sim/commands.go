package sim

// Commands buffers work that must run after every system of the frame has
// executed, so that systems never observe a half-applied change.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn for the end of the frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs the queued commands in order and resets the buffer.
func (c *Commands) Flush() {
	for i, fn := range c.defers {
		fn()
		c.defers[i] = nil
	}
	c.defers = c.defers[:0]
}
