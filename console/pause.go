package console

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/x/term"
	"github.com/dendrascience/toolbox/util"
	"github.com/pkg/errors"
)

// DefaultPauseText is shown by Pause when no text is given.
const DefaultPauseText = "Press any key to continue..."

const ctrlC = 0x03

type fdReader interface {
	io.Reader
	Fd() uintptr
}

// Pause writes text and waits for a single key press on in, returning the pressed key.
// When in is a terminal it is switched to raw mode for the duration so the key does not
// need to be followed by enter. Ctrl+C returns ErrInterrupted.
//
// If ctx is done first the read is abandoned and ctx.Err() is returned; the goroutine
// blocked on in finishes with the next byte.
func Pause(ctx context.Context, in io.Reader, out io.Writer, text string) (string, error) {
	if text == "" {
		text = DefaultPauseText
	}

	if f, ok := in.(fdReader); ok && term.IsTerminal(f.Fd()) {
		state, err := term.MakeRaw(f.Fd())
		if err != nil {
			return "", errors.Wrap(err, "enable raw mode")
		}
		defer term.Restore(f.Fd(), state)
	}

	fmt.Fprintf(out, "%s ", text)

	type keyResult struct {
		key []byte
		err error
	}
	keys := make(chan keyResult, 1)
	go func() {
		buf := make([]byte, 16)
		n, err := in.Read(buf)
		keys <- keyResult{key: buf[:n], err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-keys:
		if len(res.key) == 0 {
			if res.err == nil {
				res.err = io.EOF
			}
			return "", errors.Wrap(res.err, "read key")
		}
		for _, b := range res.key {
			if b == ctrlC {
				fmt.Fprint(out, "\n")
				return "", ErrInterrupted
			}
		}
		fmt.Fprint(out, "\n")
		return string(res.key), nil
	}
}

// ErrorOption adds a follow-up step to PrintError.
type ErrorOption func(*errorConfig)

type errorConfig struct {
	logPath  string
	exiter   Exiter
	exitCode int
}

// Exiter ends the process with a status code. *shutdown.Coordinator satisfies it.
type Exiter interface {
	Exit(code int)
}

// WithErrorLog also appends cause, timestamped, to the log file at path.
func WithErrorLog(path string) ErrorOption {
	return func(c *errorConfig) { c.logPath = path }
}

// WithErrorExit ends the process through e with code once the error was reported.
func WithErrorExit(e Exiter, code int) ErrorOption {
	return func(c *errorConfig) {
		c.exiter = e
		c.exitCode = code
	}
}

// PrintError writes cause to w in bold red under a short header. With options it then
// logs cause to a file and exits, in that order. A failing log write does not prevent
// the exit; its error is returned when there is no exit.
func PrintError(w io.Writer, cause string, p Palette, opts ...ErrorOption) error {
	if cause == "" {
		return ErrEmptyCause
	}
	var cfg errorConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	_, err := fmt.Fprintln(w, p.Paint("The following error occurred:\n"+cause, FgRed, CodeBright)+"\n")
	if cfg.logPath != "" {
		if logErr := util.LogToFile(cfg.logPath, cause, util.LogOptions{Timestamp: true}); logErr != nil && err == nil {
			err = errors.Wrap(logErr, "log error")
		}
	}
	if cfg.exiter != nil {
		cfg.exiter.Exit(cfg.exitCode)
	}
	return err
}
