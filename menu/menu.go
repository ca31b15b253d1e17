package menu

import (
	"fmt"

	"github.com/dendrascience/toolbox/util"
)

// Option is one selectable entry of a Menu. Key is the exact text the user types to
// select it.
type Option struct {
	Key         string `toml:"key" yaml:"key" json:"key"`
	Description string `toml:"description" yaml:"description" json:"description"`
}

// Menu is a titled list of options presented in one prompt step.
type Menu struct {
	Title   string   `toml:"title" yaml:"title" json:"title"`
	Options []Option `toml:"options" yaml:"options" json:"options"`
}

// Result is one selection made in a prompt.
type Result struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	MenuTitle   string `json:"menuTitle"`
	OptionIndex int    `json:"optionIndex"`
	MenuIndex   int    `json:"menuIndex"`
}

// Validate returns every problem with m. An empty result means m is valid.
func (m Menu) Validate() []string {
	var p problems
	if util.IsBlank(m.Title) {
		p.add("title must not be empty")
	}
	if len(m.Options) == 0 {
		p.add("options must not be empty")
	}
	seen := make(map[string]int, len(m.Options))
	for i, opt := range m.Options {
		p.checkKey(i, opt.Key, seen)
	}
	return p.list
}

// problems collects distinct messages in the order they were found.
type problems struct {
	list []string
	seen map[string]bool
}

func (p *problems) add(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.seen == nil {
		p.seen = map[string]bool{}
	}
	if p.seen[msg] {
		return
	}
	p.seen[msg] = true
	p.list = append(p.list, msg)
}

func (p *problems) checkKey(i int, key string, seen map[string]int) {
	if key == "" {
		p.add("option %d: key must not be empty", i)
		return
	}
	if first, dup := seen[key]; dup {
		p.add("option %d: duplicate key %q (already used by option %d)", i, key, first)
		return
	}
	seen[key] = i
}
