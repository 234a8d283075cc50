package display

import (
	"bufio"
	"io"
	"strconv"
)

const csi = "\x1b["

// ANSI is a Display that encodes 7-bit ANSI escape sequences into a buffered
// writer. Nothing reaches the underlying writer until Present.
type ANSI struct {
	w       *bufio.Writer
	scratch []byte
}

// NewANSI returns an ANSI display writing to w.
func NewANSI(w io.Writer) *ANSI {
	return &ANSI{
		w:       bufio.NewWriterSize(w, 16*1024),
		scratch: make([]byte, 0, 64),
	}
}

func (a *ANSI) writeString(s string) error {
	_, err := a.w.WriteString(s)
	return err
}

func (a *ANSI) HideCursor() error   { return a.writeString(csi + "?25l") }
func (a *ANSI) ShowCursor() error   { return a.writeString(csi + "?25h") }
func (a *ANSI) Clear() error        { return a.writeString(csi + "2J") }
func (a *ANSI) ClearHistory() error { return a.writeString(csi + "3J") }
func (a *ANSI) PaintCell() error    { return a.w.WriteByte(' ') }
func (a *ANSI) Present() error      { return a.w.Flush() }

// MoveCursor emits CUP. Terminals take the row first.
func (a *ANSI) MoveCursor(x, y int) error {
	b := append(a.scratch[:0], csi...)
	b = strconv.AppendInt(b, int64(y), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(x), 10)
	b = append(b, 'H')
	_, err := a.w.Write(b)
	return err
}

// SetColor emits a single SGR sequence carrying every attribute in order.
// With no attributes it emits a reset.
func (a *ANSI) SetColor(attrs ...Attr) error {
	b := append(a.scratch[:0], csi...)
	if len(attrs) == 0 {
		b = append(b, '0')
	}
	for i, attr := range attrs {
		if i > 0 {
			b = append(b, ';')
		}
		b = strconv.AppendUint(b, uint64(attr), 10)
	}
	b = append(b, 'm')
	_, err := a.w.Write(b)
	return err
}
