package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned when the input path does not exist.
var ErrNotFound = errors.New("file not found")

// LineSource reads an input file into lines.
// It implements pipeline.LineExtractor.
type LineSource struct {
	path string
}

// NewLineSource creates a LineSource for path.
func NewLineSource(path string) *LineSource {
	return &LineSource{path: path}
}

// Path returns the input path.
func (s *LineSource) Path() string {
	return s.path
}

// ExtractLines returns every line of the file in order. "\n", "\r\n" and a
// lone "\r" each terminate a line, and a final unterminated line is included.
// Lines have no length limit; the parser decides what to drop.
func (s *LineSource) ExtractLines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	lines, err := readLines(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", s.path, err)
	}
	return lines, nil
}

func readLines(r *bufio.Reader) ([]string, error) {
	var lines []string
	for {
		chunk, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if chunk == "" {
			return lines, nil
		}

		// Drop the terminator, then split what remains on CR-only breaks.
		chunk = strings.TrimSuffix(chunk, "\n")
		chunk = strings.TrimSuffix(chunk, "\r")
		lines = append(lines, strings.Split(chunk, "\r")...)

		if err != nil {
			return lines, nil
		}
	}
}
