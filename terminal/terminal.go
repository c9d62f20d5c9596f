// Package terminal switches the controlling terminal in and out of raw mode
// so keystrokes reach the VM one at a time without local echo.
package terminal

import (
	"log"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type Terminal struct {
	file                   *os.File
	originalTerminalConfig unix.Termios
	raw                    bool
}

// Open puts f into raw mode if it is a terminal. The returned Terminal must
// be closed to restore the original configuration.
func Open(f *os.File) (*Terminal, error) {
	t := &Terminal{file: f}
	if !term.IsTerminal(int(f.Fd())) {
		return t, nil
	}

	if err := t.enableRawMode(); err != nil {
		return nil, err
	}
	return t, nil
}

// this configures the terminal to run in raw mode
func (t *Terminal) enableRawMode() error {
	log.Printf("enabling raw mode...")
	if err := termios.Tcgetattr(t.file.Fd(), &t.originalTerminalConfig); err != nil {
		return err
	}
	newTermios := t.originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(t.file.Fd(), termios.TCSANOW, &newTermios); err != nil {
		return err
	}
	t.raw = true
	return nil
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() error {
	if !t.raw {
		return nil
	}
	log.Printf("disabling raw mode...")
	t.raw = false
	return termios.Tcsetattr(t.file.Fd(), termios.TCSANOW, &t.originalTerminalConfig)
}
