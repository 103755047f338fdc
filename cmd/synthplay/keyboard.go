package main

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// keyboard reads single key presses from a raw-mode terminal.
type keyboard struct {
	fd  int
	old *term.State
}

// startKeyboard switches stdin to raw mode and calls onKey for every byte
// until it returns false. The reader goroutine blocks on stdin and ends
// with the process.
func startKeyboard(onKey func(byte) bool) (*keyboard, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 && !onKey(buf[0]) {
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return &keyboard{fd: fd, old: old}, nil
}

// Stop restores the terminal state.
func (k *keyboard) Stop() {
	if k.old != nil {
		_ = term.Restore(k.fd, k.old)
		k.old = nil
	}
}
