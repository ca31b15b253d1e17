package console

import (
	"bytes"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// ClearScreen erases the terminal and moves the cursor home.
const ClearScreen = "\x1b[2J\x1b[H"

// Coordinator hands out exclusive ownership of a shared output stream.
//
// Writes made through the Coordinator while a Lease is held are buffered and flushed,
// in order, when the lease is released. The lease holder writes straight through.
type Coordinator struct {
	mu    sync.Mutex
	out   io.Writer
	owner string
	lease *Lease
	held  bytes.Buffer
}

// NewCoordinator returns a Coordinator writing to out.
func NewCoordinator(out io.Writer) *Coordinator {
	return &Coordinator{out: out}
}

// Write writes p to the output, or holds it back while the output is leased.
func (c *Coordinator) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lease != nil {
		return c.held.Write(p)
	}
	return c.out.Write(p)
}

// Acquire takes exclusive ownership of the output.
func (c *Coordinator) Acquire(owner string) (*Lease, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lease != nil {
		return nil, errors.Wrapf(ErrOutputBusy, "held by %s", c.owner)
	}
	c.owner = owner
	c.lease = &Lease{c: c}
	return c.lease, nil
}

// Owner returns the name passed to Acquire by the current lease holder, or "".
func (c *Coordinator) Owner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner
}

// Lease is exclusive write access to a Coordinator's output.
type Lease struct {
	c        *Coordinator
	released bool
}

// Write writes p directly to the output.
func (l *Lease) Write(p []byte) (int, error) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	if l.released {
		return 0, ErrLeaseReleased
	}
	return l.c.out.Write(p)
}

// Clear erases the screen.
func (l *Lease) Clear() error {
	_, err := l.Write([]byte(ClearScreen))
	return err
}

// Release gives the output back and flushes anything written while it was held.
// Releasing twice is a no-op.
func (l *Lease) Release() error {
	c := l.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if l.released {
		return nil
	}
	l.released = true
	c.lease = nil
	c.owner = ""
	if c.held.Len() == 0 {
		return nil
	}
	_, err := c.out.Write(c.held.Bytes())
	c.held.Reset()
	return errors.Wrap(err, "flush held output")
}

// WriterSink adapts a plain writer to something that can also clear the screen.
type WriterSink struct {
	io.Writer
}

// NewSink wraps w.
func NewSink(w io.Writer) *WriterSink {
	return &WriterSink{Writer: w}
}

func (s *WriterSink) Clear() error {
	_, err := io.WriteString(s.Writer, ClearScreen)
	return err
}
