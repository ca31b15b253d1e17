package menu

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Definition is the content of a menu file: optional prompt settings plus the menus.
//
//	exit_key = "x"
//
//	[[menus]]
//	title = "Pick a fruit"
//	  [[menus.options]]
//	  key = "1"
//	  description = "Apple"
type Definition struct {
	ExitKey         *string
	OptionSeparator *string
	CursorPrefix    *string
	RetryOnInvalid  *bool
	Menus           []Menu
}

// Options returns the prompt options for the settings present in the file.
func (d *Definition) Options() []PromptOption {
	var opts []PromptOption
	if d.ExitKey != nil {
		opts = append(opts, WithExitKey(*d.ExitKey))
	}
	if d.OptionSeparator != nil {
		opts = append(opts, WithOptionSeparator(*d.OptionSeparator))
	}
	if d.CursorPrefix != nil {
		opts = append(opts, WithCursorPrefix(*d.CursorPrefix))
	}
	if d.RetryOnInvalid != nil {
		opts = append(opts, WithRetryOnInvalid(*d.RetryOnInvalid))
	}
	return opts
}

// LoadFile reads a menu file, choosing the decoder from its extension (.toml, .yaml,
// .yml or .json). See Parse for how invalid menus are reported.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read menu file %s", path)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	def, err := Parse(data, format)
	if err != nil {
		var invalid *InvalidMenusError
		if errors.As(err, &invalid) {
			return def, err
		}
		return nil, errors.Wrapf(err, "parse menu file %s", path)
	}
	return def, nil
}

// Parse decodes a menu definition. Every menu is checked with ValidateMenu; valid menus
// are kept and, if any were not, the definition is returned along with an
// *InvalidMenusError. YAML and JSON documents may also be a bare list of menus.
func Parse(data []byte, format string) (*Definition, error) {
	var doc any
	switch strings.ToLower(format) {
	case "toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		doc = m
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decode yaml")
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "decode json")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	def := &Definition{}
	rawMenus, isList := asList(doc)
	if !isList {
		rec, ok := asRecord(doc)
		if !ok {
			return nil, errors.Errorf("menu file must hold a record or a list, got %T", doc)
		}
		var err error
		if def.ExitKey, err = stringSetting(rec, "exit_key"); err != nil {
			return nil, err
		}
		if def.OptionSeparator, err = stringSetting(rec, "option_separator"); err != nil {
			return nil, err
		}
		if def.CursorPrefix, err = stringSetting(rec, "cursor_prefix"); err != nil {
			return nil, err
		}
		if v, ok := rec["retry_on_invalid"]; ok {
			b, ok := v.(bool)
			if !ok {
				return nil, errors.Errorf("retry_on_invalid must be a boolean, got %T", v)
			}
			def.RetryOnInvalid = &b
		}
		if rawMenus, isList = asList(rec["menus"]); !isList {
			return nil, errors.New("menu file has no menus list")
		}
	}

	var invalid *InvalidMenusError
	for i, raw := range rawMenus {
		problems, err := ValidateMenu(raw)
		if err != nil {
			problems = []string{err.Error()}
		}
		if len(problems) > 0 {
			if invalid == nil {
				invalid = &InvalidMenusError{}
			}
			invalid.Indices = append(invalid.Indices, i)
			invalid.Problems = append(invalid.Problems, problems)
			continue
		}
		def.Menus = append(def.Menus, fromRecord(raw))
	}
	if invalid != nil {
		return def, invalid
	}
	return def, nil
}

func stringSetting(rec map[string]any, key string) (*string, error) {
	v, ok := rec[key]
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, errors.Errorf("%s must be text, got %T", key, v)
	}
	return &s, nil
}
