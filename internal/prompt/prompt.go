// Package prompt asks yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Terminal is a line-based confirmer reading answers from In and writing
// questions to Out. Only "y" and "yes" (any case) approve; an empty
// answer or end of input declines.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminal returns a Terminal on the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out}
}

// Confirm prints message followed by a [y/N] hint and reads one answer.
// The first line of message is highlighted; the rest is printed as is.
func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}

	question, details, _ := strings.Cut(message, "\n")
	bold := color.New(color.Bold)
	if details != "" {
		bold.Fprintln(t.Out, question)
		fmt.Fprintln(t.Out, details)
		fmt.Fprint(t.Out, "Proceed? [y/N]: ")
	} else {
		bold.Fprint(t.Out, question)
		fmt.Fprint(t.Out, " [y/N]: ")
	}

	answer, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(t.Out)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Static is a confirmer that always gives the same answer.
type Static bool

// Confirm returns the fixed answer.
func (s Static) Confirm(context.Context, string) (bool, error) {
	return bool(s), nil
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
