package menu

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dendrascience/toolbox/console"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Defaults applied by New.
const (
	DefaultOptionSeparator = ")"
	DefaultCursorPrefix    = "─►"
)

const (
	feedbackEmpty = "Please type one of the green options and press enter"
	exitLabel     = "Exit"
)

// State is the lifecycle stage of a Prompt.
type State int

const (
	StateCreated State = iota
	StateOpen
	StateFinished
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOpen:
		return "open"
	case StateFinished:
		return "finished"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// LineReader supplies one line of input per call. ReadLine must return once ctx is done.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// Sink receives the rendered prompt.
type Sink interface {
	io.Writer
	Clear() error
}

type promptConfig struct {
	exitKey        string
	separator      string
	cursorPrefix   string
	retryOnInvalid bool
	onFinished     func([]Result)
	onSelected     func(Result)
	in             LineReader
	out            Sink
	coordinator    *console.Coordinator
	palette        console.Palette
	paletteSet     bool
	logger         *zap.Logger
}

// PromptOption configures a Prompt.
type PromptOption func(*promptConfig)

// WithExitKey sets the answer that skips the current menu. An empty key disables it.
func WithExitKey(key string) PromptOption {
	return func(c *promptConfig) { c.exitKey = key }
}

// WithOptionSeparator sets the text placed between an option's key and its description.
func WithOptionSeparator(sep string) PromptOption {
	return func(c *promptConfig) { c.separator = sep }
}

// WithCursorPrefix sets the text shown in front of the input cursor. An empty prefix
// is honored.
func WithCursorPrefix(prefix string) PromptOption {
	return func(c *promptConfig) { c.cursorPrefix = prefix }
}

// WithRetryOnInvalid controls whether an empty answer shows the menu again (true) or
// skips it (false). Answers that match no option always show the menu again.
func WithRetryOnInvalid(retry bool) PromptOption {
	return func(c *promptConfig) { c.retryOnInvalid = retry }
}

// WithOnFinished registers a callback that receives the results once the prompt stops.
func WithOnFinished(fn func([]Result)) PromptOption {
	return func(c *promptConfig) { c.onFinished = fn }
}

// WithOnOptionSelected registers a callback invoked after every selection. It runs
// before the next menu is shown, so it may call AddMenu.
func WithOnOptionSelected(fn func(Result)) PromptOption {
	return func(c *promptConfig) { c.onSelected = fn }
}

// WithInput sets the line source. Defaults to console.Stdin(), shared by every prompt.
func WithInput(in LineReader) PromptOption {
	return func(c *promptConfig) { c.in = in }
}

// WithOutput sets the sink the prompt draws on. Defaults to os.Stdout.
func WithOutput(out Sink) PromptOption {
	return func(c *promptConfig) { c.out = out }
}

// WithConsole makes the prompt acquire exclusive ownership of co while open and draw
// through the lease. It takes precedence over WithOutput.
func WithConsole(co *console.Coordinator) PromptOption {
	return func(c *promptConfig) { c.coordinator = co }
}

// WithPalette sets the colors used for rendering.
func WithPalette(p console.Palette) PromptOption {
	return func(c *promptConfig) {
		c.palette = p
		c.paletteSet = true
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) PromptOption {
	return func(c *promptConfig) { c.logger = l }
}

// Prompt presents a sequence of menus and records one selection per menu.
//
// A Prompt is driven by Open, which renders the current menu, waits for exactly one line
// of input and applies it before reading again. Close may be called from any goroutine.
type Prompt struct {
	mu         sync.Mutex
	cfg        promptConfig
	menus      []Menu
	results    []Result
	state      State
	index      int
	out        Sink
	lease      *console.Lease
	cancelRead context.CancelFunc
	notified   bool
}

// New builds a prompt from menus. Invalid menus are skipped; in that case the prompt is
// still returned, together with an *InvalidMenusError describing what was left out.
func New(menus []Menu, opts ...PromptOption) (*Prompt, error) {
	cfg := promptConfig{
		separator:      DefaultOptionSeparator,
		cursorPrefix:   DefaultCursorPrefix,
		retryOnInvalid: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.in == nil {
		cfg.in = console.Stdin()
	}
	if cfg.out == nil {
		cfg.out = console.NewSink(os.Stdout)
	}
	if !cfg.paletteSet {
		cfg.palette = console.AutoPalette(os.Stdout)
	}

	p := &Prompt{cfg: cfg, index: -1}

	var invalid *InvalidMenusError
	for i, m := range menus {
		if problems := m.Validate(); len(problems) > 0 {
			if invalid == nil {
				invalid = &InvalidMenusError{}
			}
			invalid.Indices = append(invalid.Indices, i)
			invalid.Problems = append(invalid.Problems, problems)
			continue
		}
		p.menus = append(p.menus, m)
	}
	if invalid != nil {
		cfg.logger.Warn("skipped invalid menus", zap.Ints("indices", invalid.Indices))
		return p, invalid
	}
	return p, nil
}

// AddMenu appends m to the prompt, also while it is open.
func (p *Prompt) AddMenu(m Menu) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateFinished || p.state == StateClosed {
		return ErrPromptClosed
	}
	if problems := m.Validate(); len(problems) > 0 {
		return &InvalidMenuError{Problems: problems}
	}
	p.menus = append(p.menus, m)
	return nil
}

// Open shows the menus in order and blocks until every menu was answered, the prompt
// was closed or reading input failed. A read error closes the prompt and is returned.
func (p *Prompt) Open(ctx context.Context) error {
	p.mu.Lock()
	switch p.state {
	case StateOpen:
		p.mu.Unlock()
		return ErrPromptOpen
	case StateFinished, StateClosed:
		p.mu.Unlock()
		return ErrPromptClosed
	}
	if len(p.menus) == 0 {
		p.mu.Unlock()
		return ErrNoMenus
	}
	p.out = p.cfg.out
	if p.cfg.coordinator != nil {
		lease, err := p.cfg.coordinator.Acquire("menu prompt")
		if err != nil {
			p.mu.Unlock()
			return errors.Wrap(err, "acquire console")
		}
		p.lease = lease
		p.out = lease
	}
	p.state = StateOpen
	p.index = 0
	count := len(p.menus)
	p.mu.Unlock()

	p.cfg.logger.Debug("prompt opened", zap.Int("menus", count))

	feedback := ""
	for {
		p.mu.Lock()
		if p.state != StateOpen {
			results := p.takeNotification()
			p.mu.Unlock()
			p.notifyFinished(results)
			return nil
		}
		if p.index >= len(p.menus) {
			p.finish(StateFinished)
			results := p.takeNotification()
			p.mu.Unlock()
			p.notifyFinished(results)
			return nil
		}

		if _, err := io.WriteString(p.out, p.render(p.menus[p.index], feedback)); err != nil {
			p.cfg.logger.Warn("render menu", zap.Error(err))
		}
		readCtx, cancel := context.WithCancel(ctx)
		p.cancelRead = cancel
		p.mu.Unlock()

		answer, err := p.cfg.in.ReadLine(readCtx)
		cancel()

		p.mu.Lock()
		p.cancelRead = nil
		if p.state != StateOpen {
			// Closed while waiting; the answer, if any, is dropped.
			results := p.takeNotification()
			p.mu.Unlock()
			p.notifyFinished(results)
			return nil
		}
		if err != nil {
			p.mu.Unlock()
			p.Close()
			p.mu.Lock()
			results := p.takeNotification()
			p.mu.Unlock()
			p.notifyFinished(results)
			return errors.Wrap(err, "read answer")
		}
		var selected *Result
		feedback, selected = p.step(answer)
		p.mu.Unlock()

		if selected != nil {
			p.cfg.logger.Debug("option selected",
				zap.Int("menu", selected.MenuIndex),
				zap.String("key", selected.Key))
			if p.cfg.onSelected != nil {
				p.cfg.onSelected(*selected)
			}
		}
	}
}

// step applies one answer to the current menu and returns the feedback to show when
// the same menu has to be rendered again. Must be called with p.mu held.
func (p *Prompt) step(answer string) (string, *Result) {
	if p.cfg.exitKey != "" && answer == p.cfg.exitKey {
		p.index++
		return "", nil
	}
	if answer == "" {
		if p.cfg.retryOnInvalid {
			return feedbackEmpty, nil
		}
		p.index++
		return "", nil
	}
	m := p.menus[p.index]
	for i, opt := range m.Options {
		if opt.Key != answer {
			continue
		}
		r := Result{
			Key:         opt.Key,
			Description: opt.Description,
			MenuTitle:   m.Title,
			OptionIndex: i,
			MenuIndex:   p.index,
		}
		p.results = append(p.results, r)
		p.index++
		return "", &r
	}
	return `Invalid option "` + answer + `" selected`, nil
}

// finish moves the prompt into a terminal state. Must be called with p.mu held.
func (p *Prompt) finish(state State) {
	p.state = state
	p.index = -1
	if p.cancelRead != nil {
		p.cancelRead()
		p.cancelRead = nil
	}
	if p.lease != nil {
		if err := p.lease.Release(); err != nil {
			p.cfg.logger.Warn("release console", zap.Error(err))
		}
		p.lease = nil
	}
}

// takeNotification returns the results to hand to OnFinished, or nil if the callback
// already ran or none is set. Must be called with p.mu held.
func (p *Prompt) takeNotification() []Result {
	if p.notified || p.cfg.onFinished == nil {
		return nil
	}
	p.notified = true
	return append([]Result{}, p.results...)
}

func (p *Prompt) notifyFinished(results []Result) {
	if results != nil {
		p.cfg.onFinished(results)
	}
}

// Close stops the prompt and returns the results collected so far. A pending read is
// cancelled and the screen is cleared. Calling Close again returns the same results.
func (p *Prompt) Close() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateFinished || p.state == StateClosed {
		return p.results
	}
	if p.state == StateOpen && p.out != nil {
		if err := p.out.Clear(); err != nil {
			p.cfg.logger.Warn("clear screen", zap.Error(err))
		}
	}
	p.finish(StateClosed)
	p.cfg.logger.Debug("prompt closed", zap.Int("results", len(p.results)))
	return p.results
}

// CurrentMenu returns the index of the menu being shown, or -1 when the prompt is not open.
func (p *Prompt) CurrentMenu() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Result returns a copy of the selections made so far, or nil if there are none.
func (p *Prompt) Result() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return nil
	}
	return append([]Result(nil), p.results...)
}

// State returns the lifecycle stage of the prompt.
func (p *Prompt) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Menus returns the number of attached menus.
func (p *Prompt) Menus() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.menus)
}

func (p *Prompt) render(m Menu, feedback string) string {
	pal := p.cfg.palette
	var b strings.Builder

	if feedback != "" {
		b.WriteString(pal.Paint("❗️ > "+feedback, console.FgRed))
	}
	b.WriteString("\n\n\n")

	b.WriteString(pal.Paint(m.Title, console.CodeBright, console.FgCyan))
	b.WriteString("\n")
	b.WriteString(pal.Paint(strings.Repeat("‾", runewidth.StringWidth(m.Title)), console.FgCyan))
	b.WriteString("\n")

	longest := 0
	for _, opt := range m.Options {
		longest = max(longest, runewidth.StringWidth(opt.Key))
	}
	line := func(key string, color int, description string) {
		pad := "  " + strings.Repeat(" ", max(longest-runewidth.StringWidth(key), 0))
		b.WriteString(pal.Paint(key, color))
		b.WriteString(p.cfg.separator)
		b.WriteString(pad)
		b.WriteString(description)
		b.WriteString("\n")
	}
	for _, opt := range m.Options {
		line(opt.Key, console.FgGreen, opt.Description)
	}
	if p.cfg.exitKey != "" {
		b.WriteString("\n")
		line(p.cfg.exitKey, console.FgRed, exitLabel)
	}

	b.WriteString("\n\n")
	if p.cfg.cursorPrefix != "" {
		b.WriteString(p.cfg.cursorPrefix)
		b.WriteString(" ")
	}
	return b.String()
}
