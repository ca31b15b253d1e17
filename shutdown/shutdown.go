// Package shutdown coordinates process termination on SIGINT and SIGTERM.
//
// A Coordinator runs registered handlers and then exits when a signal arrives. While it
// is blocked, signals are swallowed instead, which keeps Ctrl+C from interrupting work
// that must not be cut short. The state lives on the Coordinator, not in a package
// variable, so independent parts of a program can each own one.
//
// SIGKILL cannot be caught and always ends the process immediately.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithExitCode sets the status passed to the exit function. Defaults to 0.
func WithExitCode(code int) Option {
	return func(c *Coordinator) { c.exitCode = code }
}

// WithExitFunc replaces os.Exit.
func WithExitFunc(fn func(int)) Option {
	return func(c *Coordinator) { c.exit = fn }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// Coordinator runs shutdown handlers when the process is asked to stop.
type Coordinator struct {
	mu        sync.Mutex
	handlers  []func()
	blocked   bool
	triggered bool
	exitCode  int
	exit      func(int)
	logger    *zap.Logger
}

// New returns an unblocked Coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{exit: os.Exit}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// OnShutdown registers fn to run before the process exits. Handlers run in the order
// they were registered.
func (c *Coordinator) OnShutdown(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

// Block makes the coordinator ignore shutdown signals until Unblock is called.
func (c *Coordinator) Block() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocked = true
}

// Unblock lets shutdown signals through again.
func (c *Coordinator) Unblock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocked = false
}

// Blocked reports whether signals are currently ignored.
func (c *Coordinator) Blocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocked
}

// Trigger shuts down as if sig had been received: handlers run, then the exit function.
// It returns false without doing anything while blocked. Only the first successful
// Trigger runs the handlers.
func (c *Coordinator) Trigger(sig os.Signal) bool {
	c.mu.Lock()
	if c.blocked {
		c.mu.Unlock()
		c.logger.Info("ignoring signal while shutdown is blocked", zap.Stringer("signal", sig))
		return false
	}
	code := c.exitCode
	c.mu.Unlock()
	c.run(code, zap.Stringer("signal", sig))
	return true
}

// Exit shuts down with status code on request of the program itself. Unlike Trigger it
// ignores Block, which only holds back signals. Handlers still run once at most.
func (c *Coordinator) Exit(code int) {
	c.run(code, zap.String("reason", "exit requested"))
}

func (c *Coordinator) run(code int, cause zap.Field) {
	c.mu.Lock()
	if c.triggered {
		c.mu.Unlock()
		return
	}
	c.triggered = true
	handlers := append([]func(){}, c.handlers...)
	c.mu.Unlock()

	c.logger.Info("shutting down", cause, zap.Int("code", code), zap.Int("handlers", len(handlers)))
	for _, fn := range handlers {
		fn()
	}
	c.exit(code)
}

// Listen waits for signals (SIGINT and SIGTERM when none are given) and triggers the
// shutdown for the first one that is not blocked. It returns ctx.Err() if ctx ends first.
func (c *Coordinator) Listen(ctx context.Context, signals ...os.Signal) error {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-ch:
			if c.Trigger(sig) {
				return nil
			}
		}
	}
}
