package menu_test

import (
	"errors"
	"io"
)

// ScriptedInput feeds a fixed list of lines and then reports io.EOF.
type ScriptedInput struct {
	Lines []string
	Err   error
	Reads int
}

func (s *ScriptedInput) ReadLine() (string, error) {
	s.Reads++

	if len(s.Lines) == 0 {
		if s.Err != nil {
			return "", s.Err
		}

		return "", io.EOF
	}

	line := s.Lines[0]
	s.Lines = s.Lines[1:]

	return line, nil
}

// RecordingOutput keeps every written line.
type RecordingOutput struct {
	Lines []string
}

func (r *RecordingOutput) WriteLine(line string) {
	r.Lines = append(r.Lines, line)
}

func (r *RecordingOutput) Count(line string) int {
	n := 0

	for _, l := range r.Lines {
		if l == line {
			n++
		}
	}

	return n
}

var errBrokenPipe = errors.New("broken pipe")
