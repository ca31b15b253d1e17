package console

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

const (
	filledChar = "■"
	blankChar  = "─"
)

// ProgressOption configures a ProgressBar.
type ProgressOption func(*ProgressBar)

// WithProgressPalette sets the palette used to color the percentage and the bar.
func WithProgressPalette(p Palette) ProgressOption {
	return func(b *ProgressBar) { b.palette = p }
}

// WithMaxWidth truncates each rendered line to width terminal cells. 0 disables truncation.
func WithMaxWidth(width int) ProgressOption {
	return func(b *ProgressBar) { b.width = width }
}

// ProgressBar renders a single line progress indicator that is advanced a known number
// of times:
//
//	50%  [■■■■■─────] - copying
type ProgressBar struct {
	mu       sync.Mutex
	w        io.Writer
	times    int
	done     int
	palette  Palette
	width    int
	onFinish func()
	finished bool
}

// NewProgressBar draws an empty bar that reaches 100% after times calls to Next.
func NewProgressBar(w io.Writer, times int, initialMessage string, opts ...ProgressOption) (*ProgressBar, error) {
	if times < 1 {
		return nil, ErrInvalidIncrements
	}
	b := &ProgressBar{w: w, times: times, palette: ANSI}
	for _, opt := range opts {
		opt(b)
	}
	b.render(initialMessage)
	return b, nil
}

// Next advances the bar by one increment and redraws it with message.
// Calls past 100% are ignored.
func (b *ProgressBar) Next(message string) {
	b.mu.Lock()
	if b.done >= b.times {
		b.mu.Unlock()
		return
	}
	b.done++
	b.render(message)
	var fn func()
	if b.done == b.times && !b.finished {
		b.finished = true
		fn = b.onFinish
	}
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Progress returns the completed fraction in [0, 1].
func (b *ProgressBar) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return float64(b.done) / float64(b.times)
}

// RemainingIncrements returns how many calls to Next are left until 100%.
func (b *ProgressBar) RemainingIncrements() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.times - b.done
}

// OnFinish registers fn to run once the bar reaches 100%. If it already has, fn runs
// immediately.
func (b *ProgressBar) OnFinish(fn func()) error {
	if fn == nil {
		return ErrNilCallback
	}
	b.mu.Lock()
	b.onFinish = fn
	runNow := b.done == b.times && !b.finished
	if runNow {
		b.finished = true
	}
	b.mu.Unlock()

	if runNow {
		fn()
	}
	return nil
}

// render must be called with b.mu held.
func (b *ProgressBar) render(message string) {
	fmt.Fprint(b.w, "\r\x1b[2K"+b.line(message))
}

func (b *ProgressBar) line(message string) string {
	percent := int(math.Round(float64(b.done) / float64(b.times) * 100))

	color := FgYellow
	if b.done == b.times {
		color = FgGreen
	}
	pad := ""
	switch {
	case percent < 10:
		pad = "  "
	case percent < 100:
		pad = " "
	}
	if message != "" {
		message = "- " + message
	}

	filled := b.palette.Paint(strings.Repeat(filledChar, b.done), FgGreen, CodeBright)
	if b.done == 0 {
		filled = ""
	}
	blank := strings.Repeat(blankChar, b.times-b.done)

	if b.width > 0 {
		// The padded percentage is always five cells wide, then the bar and its brackets.
		avail := b.width - (5 + b.times + 3)
		if avail <= 0 {
			message = ""
		} else {
			message = runewidth.Truncate(message, avail, "…")
		}
	}

	line := b.palette.Paint(fmt.Sprintf("%d%%", percent), color, CodeBright) +
		" " + pad + "[" + filled + blank + "] " + message
	if b.done == b.times {
		line += "\n"
	}
	return line
}
