// Package host connects the LC-3 machine to the real terminal: raw
// stdin, buffered stdout, and a background reader so the keyboard
// status register can be polled without blocking the fetch-decode-
// execute loop.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Console wires an emu.Machine to the process's real stdin/stdout. Input
// is read off a background goroutine into a small buffered channel so
// GETC/IN can block on it while the KBSR poller never does.
type Console struct {
	in     *os.File
	out    *bufio.Writer
	state  *term.State
	bytesC chan byte
	errC   chan error
}

// NewConsole puts stdin into raw mode (no canonical buffering, no local
// echo) and starts the background reader. Call Restore when done, even
// on error paths, to leave the terminal usable.
func NewConsole(in *os.File, out io.Writer) (*Console, error) {
	var state *term.State
	if term.IsTerminal(int(in.Fd())) {
		var err error
		state, err = term.MakeRaw(int(in.Fd()))
		if err != nil {
			return nil, fmt.Errorf("host: enabling raw mode: %w", err)
		}
	}

	c := &Console{
		in:     in,
		out:    bufio.NewWriter(out),
		state:  state,
		bytesC: make(chan byte, 1),
		errC:   make(chan error, 1),
	}
	go c.pump()
	return c, nil
}

// pump reads stdin one byte at a time and forwards it to bytesC. It runs
// until stdin reports an error (including EOF), which it hands to errC
// before returning; there is no other cancellation because os.Stdin has
// no way to unblock a pending Read.
func (c *Console) pump() {
	buf := make([]byte, 1)
	for {
		n, err := c.in.Read(buf)
		if n > 0 {
			c.bytesC <- buf[0]
		}
		if err != nil {
			c.errC <- err
			return
		}
	}
}

// ReadByte blocks until a byte is available from stdin. Once stdin has
// failed (e.g. EOF), this and every later call return that error. This
// satisfies emu.Console for GETC and IN.
func (c *Console) ReadByte() (byte, error) {
	select {
	case b := <-c.bytesC:
		return b, nil
	case err := <-c.errC:
		c.errC <- err // pump has exited; keep the error for later reads
		return 0, fmt.Errorf("host: stdin closed: %w", err)
	}
}

// TryReadByte returns a pending byte without blocking, for the KBSR
// poller. ok is false if no byte has arrived yet.
func (c *Console) TryReadByte() (b byte, ok bool) {
	select {
	case b := <-c.bytesC:
		return b, true
	default:
		return 0, false
	}
}

// WriteByte buffers one byte for output. This satisfies emu.Console for
// OUT, PUTS, PUTSP, and the IN echo.
func (c *Console) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

// Flush writes any buffered output to the terminal.
func (c *Console) Flush() error {
	return c.out.Flush()
}

// Restore puts the terminal back into its original mode. Safe to call on
// a Console whose stdin was never a terminal.
func (c *Console) Restore() error {
	if c.state == nil {
		return nil
	}
	return term.Restore(int(c.in.Fd()), c.state)
}
