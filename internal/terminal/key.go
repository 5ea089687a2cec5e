// Package terminal reads operator input from the console.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

// ErrInterrupted reports Ctrl+C read while the terminal was in raw mode,
// where it arrives as a byte instead of a signal.
var ErrInterrupted = errors.New(messages.TerminalInterrupted)

const (
	keyInterrupt = 0x03
	keyEOT       = 0x04
)

// WaitForKey writes prompt to out and blocks until a single key is read from in.
// When in is a terminal it is switched to raw mode so no Enter is needed.
// There is no timeout.
func WaitForKey(in io.Reader, out io.Writer, prompt string) error {
	if out == nil {
		out = io.Discard
	}
	if prompt != "" {
		_, _ = fmt.Fprint(out, prompt)
	}
	defer func() { _, _ = fmt.Fprintln(out) }()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf(messages.TerminalRawModeFmt, err)
		}
		defer func() { _ = term.Restore(int(f.Fd()), state) }()
	}

	var buf [1]byte
	for {
		n, err := in.Read(buf[:])
		if n == 1 {
			switch buf[0] {
			case keyInterrupt:
				return ErrInterrupted
			case keyEOT:
				return fmt.Errorf(messages.TerminalReadKeyFmt, io.ErrUnexpectedEOF)
			}
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf(messages.TerminalReadKeyFmt, err)
		}
	}
}
