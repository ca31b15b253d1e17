package console

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
)

type lineResult struct {
	line string
	err  error
}

// LineReader reads lines from an io.Reader one at a time.
//
// A single goroutine scans the underlying reader, started on the first call to ReadLine.
// A line is only handed out to a caller that asks for it, so cancelling a ReadLine never
// drops input: the pending line goes to the next caller.
type LineReader struct {
	src   io.Reader
	lines chan lineResult
	once  sync.Once
}

// NewLineReader returns a LineReader over r. The reader owns r from its first ReadLine
// on; two LineReaders over the same stream split its lines between them.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{src: r, lines: make(chan lineResult)}
}

var (
	stdinOnce   sync.Once
	stdinReader *LineReader
)

// Stdin returns the process wide LineReader over os.Stdin. Everything reading lines from
// the terminal must go through it.
func Stdin() *LineReader {
	stdinOnce.Do(func() { stdinReader = NewLineReader(os.Stdin) })
	return stdinReader
}

func (r *LineReader) scan() {
	defer close(r.lines)
	sc := bufio.NewScanner(r.src)
	for sc.Scan() {
		r.lines <- lineResult{line: strings.TrimSuffix(sc.Text(), "\r")}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	r.lines <- lineResult{err: err}
}

// ReadLine blocks until a line is available or ctx is done. It returns io.EOF once the
// underlying reader is exhausted.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	r.once.Do(func() { go r.scan() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}
