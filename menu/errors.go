package menu

import (
	"fmt"
	"strings"

	"github.com/dendrascience/toolbox/util"
	"github.com/pkg/errors"
)

// Sentinel errors for package menu.
var (
	// Structural errors
	ErrNilMenu = errors.New("menu must not be nil")
	ErrNoMenus = errors.New("no menus were added to the prompt, add one before opening it")

	// State errors
	ErrPromptClosed = errors.New("prompt was already closed, no more menus can be added or shown")
	ErrPromptOpen   = errors.New("prompt is already open")

	// File errors
	ErrUnsupportedFormat = errors.New("unsupported menu file format")
)

// InvalidMenuError reports every problem found in a single menu.
type InvalidMenuError struct {
	Problems []string
}

func (e *InvalidMenuError) Error() string {
	return "invalid menu: " + strings.Join(e.Problems, "; ")
}

// InvalidMenusError reports the menus that were skipped while building a prompt.
// Problems[i] belongs to the menu at Indices[i].
type InvalidMenusError struct {
	Indices  []int
	Problems [][]string
}

func (e *InvalidMenusError) Error() string {
	var b strings.Builder
	if len(e.Indices) == 1 {
		fmt.Fprintf(&b, "menu at index %d is invalid", e.Indices[0])
	} else {
		fmt.Fprintf(&b, "menus at indices %s are invalid", util.ReadableArray(e.Indices))
	}
	for i, idx := range e.Indices {
		if i < len(e.Problems) {
			fmt.Fprintf(&b, "\n  menu %d: %s", idx, strings.Join(e.Problems[i], "; "))
		}
	}
	return b.String()
}
