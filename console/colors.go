package console

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/pkg/errors"
	"github.com/taigrr/colorhash"
)

// SGR codes.
const (
	CodeReset     = 0
	CodeBright    = 1
	CodeDim       = 2
	CodeUnderline = 4
	CodeBlink     = 5
	CodeReverse   = 7
	CodeHidden    = 8

	FgBlack   = 30
	FgRed     = 31
	FgGreen   = 32
	FgYellow  = 33
	FgBlue    = 34
	FgMagenta = 35
	FgCyan    = 36
	FgWhite   = 37

	BgBlack   = 40
	BgRed     = 41
	BgGreen   = 42
	BgYellow  = 43
	BgBlue    = 44
	BgMagenta = 45
	BgCyan    = 46
	BgWhite   = 47
)

// Reset and Bold are the raw escape sequences most callers need.
const (
	Reset = "\x1b[0m"
	Bold  = "\x1b[1m"
)

var colorNames = map[string]int{
	"rst":        CodeReset,
	"reset":      CodeReset,
	"bright":     CodeBright,
	"dim":        CodeDim,
	"underscore": CodeUnderline,
	"ul":         CodeUnderline,
	"underline":  CodeUnderline,
	"blink":      CodeBlink,
	"reverse":    CodeReverse,
	"hidden":     CodeHidden,
	"fgblack":    FgBlack,
	"fgred":      FgRed,
	"fggreen":    FgGreen,
	"fgyellow":   FgYellow,
	"fgblue":     FgBlue,
	"fgmagenta":  FgMagenta,
	"fgcyan":     FgCyan,
	"fgwhite":    FgWhite,
	"bgblack":    BgBlack,
	"bgred":      BgRed,
	"bggreen":    BgGreen,
	"bgyellow":   BgYellow,
	"bgblue":     BgBlue,
	"bgmagenta":  BgMagenta,
	"bgcyan":     BgCyan,
	"bgwhite":    BgWhite,
}

// hashPalette holds the foreground colors HashColor chooses from. Black and white are left
// out since one of them is usually the terminal background.
var hashPalette = []int{FgRed, FgGreen, FgYellow, FgBlue, FgMagenta, FgCyan}

// Sequence returns the escape sequence for a single SGR code.
func Sequence(code int) string {
	return fmt.Sprintf("\x1b[%dm", code)
}

// Codes resolves color names to SGR codes. Each name may itself hold several
// space separated names. Names are case insensitive, duplicates collapse and the
// codes are returned in ascending order.
func Codes(names ...string) ([]int, error) {
	seen := map[int]bool{}
	var codes []int
	for _, name := range names {
		for _, field := range strings.Fields(name) {
			code, ok := colorNames[strings.ToLower(field)]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownColor, "%q", field)
			}
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	sort.Ints(codes)
	return codes, nil
}

// Colorize wraps text in the escape sequences for names followed by a reset.
//
//	s, _ := console.Colorize("done", "fggreen bright")
func Colorize(text string, names ...string) (string, error) {
	codes, err := Codes(names...)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, code := range codes {
		b.WriteString(Sequence(code))
	}
	b.WriteString(text)
	b.WriteString(Reset)
	return b.String(), nil
}

// HashColor picks a stable foreground color for s.
func HashColor(s string) int {
	h := colorhash.HashString(s) % len(hashPalette)
	if h < 0 {
		h += len(hashPalette)
	}
	return hashPalette[h]
}

// Palette paints text with SGR codes, or returns it untouched when disabled.
type Palette struct {
	enabled bool
}

var (
	// ANSI always emits escape sequences.
	ANSI = Palette{enabled: true}
	// Plain never emits escape sequences.
	Plain = Palette{}
)

// AutoPalette enables colors when f is a terminal and NO_COLOR is unset.
func AutoPalette(f *os.File) Palette {
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return Plain
	}
	return Palette{enabled: term.IsTerminal(f.Fd())}
}

// Enabled reports whether p emits escape sequences.
func (p Palette) Enabled() bool { return p.enabled }

// Paint wraps text in the given codes followed by a reset.
func (p Palette) Paint(text string, codes ...int) string {
	if !p.enabled || len(codes) == 0 {
		return text
	}
	var b strings.Builder
	for _, code := range codes {
		b.WriteString(Sequence(code))
	}
	b.WriteString(text)
	b.WriteString(Reset)
	return b.String()
}

// Hash paints text in its HashColor.
func (p Palette) Hash(text string) string {
	return p.Paint(text, HashColor(text))
}
