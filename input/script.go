package input

// Script replays a fixed sequence, one entry per poll. A None entry is an idle
// poll. Once the sequence is exhausted every poll is idle.
type Script struct {
	steps []Key
	next  int
}

func NewScript(steps ...Key) *Script {
	return &Script{steps: steps}
}

func (s *Script) PollKey() (Key, bool) {
	if s.next >= len(s.steps) {
		return None, false
	}
	k := s.steps[s.next]
	s.next++
	return k, k != None
}

// Done reports whether every step has been consumed.
func (s *Script) Done() bool {
	return s.next >= len(s.steps)
}

// Rand is the random source used by Random.
type Rand interface {
	IntN(n int) int
}

// randomKeys are the keys Random may produce. Quit, Pause and NewGame are
// left out so that an unattended run plays until the stack tops out.
var randomKeys = [...]Key{RotateCW, RotateCCW, Left, Right, SoftDrop, HardDrop}

// Random presses random movement keys.
type Random struct {
	rng   Rand
	every int
}

// NewRandom returns a source that fires on average once in every polls.
func NewRandom(r Rand, every int) *Random {
	return &Random{rng: r, every: max(every, 1)}
}

func (s *Random) PollKey() (Key, bool) {
	if s.rng.IntN(s.every) != 0 {
		return None, false
	}
	return randomKeys[s.rng.IntN(len(randomKeys))], true
}
