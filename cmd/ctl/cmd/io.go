package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrTerminalOutput refuses binary output to an interactive terminal
var ErrTerminalOutput = errors.New("refusing to write binary output to a terminal, use -o")

// readInput reads a file, or stdin for "-"
func readInput(path string) ([]byte, error) {
	switch path {
	case "":
		return nil, fmt.Errorf("input path is required")
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(path)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// createOutput opens path for writing, or stdout for "" and "-".
// Binary output is refused when stdout is a terminal.
func createOutput(path string, binary bool) (io.WriteCloser, error) {
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating output: %w", err)
		}
		return f, nil
	}
	if binary && term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrTerminalOutput
	}
	return nopCloser{os.Stdout}, nil
}

// writeOutput streams write into path and closes it
func writeOutput(path string, binary bool, write func(io.Writer) error) (err error) {
	w, err := createOutput(path, binary)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()
	return write(w)
}
