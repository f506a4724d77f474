// Package console adapts standard streams to the menu Input and Output interfaces.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Input reads newline terminated lines of any length. When the underlying reader is a
// terminal, ReadSecret turns echo off.
type Input struct {
	reader *bufio.Reader
	file   *os.File
	echo   io.Writer
}

func NewInput(r io.Reader) *Input {
	in := &Input{reader: bufio.NewReader(r)}

	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		in.file = f
		in.echo = os.Stdout
	}

	return in
}

// ReadLine returns the next line without its line terminator, or io.EOF. A last line
// without a terminator is still returned.
func (in *Input) ReadLine() (string, error) {
	line, err := in.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("could not read line: %w", err)
		}

		if line == "" {
			return "", io.EOF
		}
	}

	return strings.TrimRight(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// ReadSecret reads a line without echoing it on a terminal and falls back to ReadLine
// everywhere else.
func (in *Input) ReadSecret() (string, error) {
	if in.file == nil {
		return in.ReadLine()
	}

	secret, err := term.ReadPassword(int(in.file.Fd()))
	fmt.Fprintln(in.echo)

	if err != nil {
		return "", fmt.Errorf("could not read secret: %w", err)
	}

	return string(secret), nil
}

// Output writes lines to w. Write errors are dropped since there is nowhere to report them.
type Output struct {
	w io.Writer
}

func NewOutput(w io.Writer) *Output {
	return &Output{w: w}
}

func (o *Output) WriteLine(line string) {
	_, _ = fmt.Fprintln(o.w, line)
}
