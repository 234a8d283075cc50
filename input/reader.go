package input

import (
	"errors"
	"io"
	"sync"
	"time"
)

const readerBuffer = 64

// EscapeDelay is how long a trailing ESC, or ESC [, waits for the rest of an
// arrow sequence before it is decoded as it stands.
const EscapeDelay = 50 * time.Millisecond

// Reader decodes keys from a byte stream such as a raw-mode stdin. One
// goroutine performs the blocking reads and another decodes them into a key
// queue; PollKey only ever takes from that queue.
type Reader struct {
	keys   chan Key
	chunks chan []byte
	done   chan struct{}

	closeOnce sync.Once
	mu        sync.Mutex
	err       error
}

// NewReader starts reading r. The goroutines exit when r returns an error or
// Close is called, though a read already blocked on r cannot be interrupted.
func NewReader(r io.Reader, km *Keymap) *Reader {
	rd := &Reader{
		keys:   make(chan Key, readerBuffer),
		chunks: make(chan []byte, readerBuffer),
		done:   make(chan struct{}),
	}
	go rd.read(r)
	go rd.decode(km)
	return rd
}

func (rd *Reader) read(r io.Reader) {
	defer close(rd.chunks)
	buf := make([]byte, 32)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case rd.chunks <- append([]byte(nil), buf[:n]...):
			case <-rd.done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				rd.mu.Lock()
				rd.err = err
				rd.mu.Unlock()
			}
			return
		}
	}
}

// decode joins chunks so that a sequence split across reads decodes as one
// key. A pending tail is flushed after EscapeDelay without further input, or
// when the stream ends.
func (rd *Reader) decode(km *Keymap) {
	var (
		pending []byte
		expired <-chan time.Time
	)
	for {
		var keys []Key
		select {
		case chunk, ok := <-rd.chunks:
			if !ok {
				rd.send(km.Decode(pending))
				return
			}
			keys, pending = km.decode(append(pending, chunk...), false)
			pending = append([]byte(nil), pending...)
			expired = nil
			if len(pending) > 0 {
				expired = time.After(EscapeDelay)
			}
		case <-expired:
			keys, pending, expired = km.Decode(pending), nil, nil
		case <-rd.done:
			return
		}
		if !rd.send(keys) {
			return
		}
	}
}

func (rd *Reader) send(keys []Key) bool {
	for _, k := range keys {
		select {
		case rd.keys <- k:
		case <-rd.done:
			return false
		}
	}
	return true
}

func (rd *Reader) PollKey() (Key, bool) {
	select {
	case k := <-rd.keys:
		return k, true
	default:
		return None, false
	}
}

// Err returns the read error that stopped the goroutine, if any. EOF is not
// reported.
func (rd *Reader) Err() error {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	return rd.err
}

// Close stops delivering keys.
func (rd *Reader) Close() error {
	rd.closeOnce.Do(func() { close(rd.done) })
	return nil
}
