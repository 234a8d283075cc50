package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TcellSource forwards key events of a tcell.Screen. It owns the screen's
// event stream; nothing else may call PollEvent on it.
type TcellSource struct {
	keys chan Key
	done chan struct{}
	once sync.Once
}

// NewTcellSource starts polling screen. The goroutine ends when the screen is
// finalised or Close is called.
func NewTcellSource(screen tcell.Screen, km *Keymap) *TcellSource {
	src := &TcellSource{
		keys: make(chan Key, readerBuffer),
		done: make(chan struct{}),
	}
	go src.loop(screen, km)
	return src
}

func (src *TcellSource) loop(screen tcell.Screen, km *Keymap) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		select {
		case src.keys <- TranslateEvent(key, km):
		case <-src.done:
			return
		}
	}
}

// TranslateEvent maps a tcell key event through km.
func TranslateEvent(ev *tcell.EventKey, km *Keymap) Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return km.Lookup(ev.Rune())
	case tcell.KeyUp:
		return km.Lookup(RuneUp)
	case tcell.KeyDown:
		return km.Lookup(RuneDown)
	case tcell.KeyLeft:
		return km.Lookup(RuneLeft)
	case tcell.KeyRight:
		return km.Lookup(RuneRight)
	case tcell.KeyEscape:
		return km.Lookup(RuneEsc)
	case tcell.KeyCtrlC:
		return km.Lookup(RuneCtrlC)
	}
	return Unknown
}

func (src *TcellSource) PollKey() (Key, bool) {
	select {
	case k := <-src.keys:
		return k, true
	default:
		return None, false
	}
}

// Close stops delivering keys.
func (src *TcellSource) Close() error {
	src.once.Do(func() { close(src.done) })
	return nil
}
