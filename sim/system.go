package sim

// System is one stage of a frame. Systems may declare Resource fields, which
// the Scheduler initialises on Register, and keep any other state between
// frames. A non-nil error aborts the rest of the frame.
type System interface {
	Execute(frame *Frame) error
}
