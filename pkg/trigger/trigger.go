// Package trigger ends the scan window: either a monitored command exits or
// the user presses a key.
package trigger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"golang.org/x/term"
)

// IsManual reports whether args ask for a manual trigger instead of a command.
func IsManual(args []string) bool {
	return len(args) > 0 && (args[0] == "man" || args[0] == "manual")
}

// Stdio are the streams handed to the monitored command.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio is the process' own stdio.
func OSStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// RunCommand runs args and waits for it. A command that exits non-zero is not
// an error: its exit code is returned so the caller can warn about it. An
// error is returned only when the command could not be started.
//
// While the command runs, interrupts reach the command but not this process,
// so a Ctrl-C still leads to a scan.
func RunCommand(ctx context.Context, args []string, stdio Stdio) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("no command given")
	}

	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Stdin = stdio.In
	c.Stdout = stdio.Out
	c.Stderr = stdio.Err

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	if err := c.Start(); err != nil {
		return 0, fmt.Errorf("start %q: %w", args[0], err)
	}

	err := c.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

// WaitForKeypress blocks until a single key is pressed on in. When in is not
// a terminal it waits for a full line instead.
func WaitForKeypress(in *os.File) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		_, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	var b [1]byte
	_, err = in.Read(b[:])
	return err
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
