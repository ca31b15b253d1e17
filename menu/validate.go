package menu

import (
	"fmt"
	"reflect"

	"github.com/dendrascience/toolbox/util"
)

// ValidateMenu checks a menu and returns the complete list of problems found; an empty
// list means the menu is valid. Besides Menu and *Menu it accepts the generic records
// produced by decoding JSON, TOML or YAML (map[string]any and map[any]any) so files can
// be diagnosed before they are converted.
//
// A nil menu is the only hard failure and returns ErrNilMenu.
func ValidateMenu(menu any) ([]string, error) {
	switch m := menu.(type) {
	case nil:
		return nil, ErrNilMenu
	case *Menu:
		if m == nil {
			return nil, ErrNilMenu
		}
		return m.Validate(), nil
	case Menu:
		return m.Validate(), nil
	}

	if isList(menu) {
		return []string{"menu must be a record, not an array"}, nil
	}
	rec, ok := asRecord(menu)
	if !ok {
		return []string{fmt.Sprintf("menu must be a record, got %T", menu)}, nil
	}

	var p problems
	title, present := rec["title"]
	switch t := title.(type) {
	case nil:
		p.add("title is missing")
	case string:
		if util.IsBlank(t) {
			p.add("title must not be empty")
		}
	default:
		if present {
			p.add("title must be text, got %T", title)
		}
	}

	rawOptions, present := rec["options"]
	options, isSeq := asList(rawOptions)
	switch {
	case !present || rawOptions == nil:
		p.add("options are missing")
	case !isSeq:
		p.add("options must be a list, got %T", rawOptions)
	case len(options) == 0:
		p.add("options must not be empty")
	}

	seen := make(map[string]int, len(options))
	for i, raw := range options {
		if o, ok := raw.(Option); ok {
			p.checkKey(i, o.Key, seen)
			continue
		}
		if isList(raw) {
			p.add("option %d must be a record, not an array", i)
			continue
		}
		opt, ok := asRecord(raw)
		if !ok {
			p.add("option %d must be a record, got %T", i, raw)
			continue
		}
		key, keyIsText := opt["key"].(string)
		if !keyIsText {
			p.add("option %d: key must be text", i)
		}
		if _, ok := opt["description"].(string); !ok {
			p.add("option %d: description must be text", i)
		}
		if keyIsText {
			p.checkKey(i, key, seen)
		}
	}
	return p.list, nil
}

// fromRecord converts a record that passed ValidateMenu.
func fromRecord(menu any) Menu {
	switch m := menu.(type) {
	case Menu:
		return m
	case *Menu:
		return *m
	}
	rec, _ := asRecord(menu)
	out := Menu{}
	out.Title, _ = rec["title"].(string)
	options, _ := asList(rec["options"])
	for _, raw := range options {
		if o, ok := raw.(Option); ok {
			out.Options = append(out.Options, o)
			continue
		}
		opt, _ := asRecord(raw)
		key, _ := opt["key"].(string)
		desc, _ := opt["description"].(string)
		out.Options = append(out.Options, Option{Key: key, Description: desc})
	}
	return out
}

// asRecord normalizes the map types produced by the supported decoders. Only string
// keys are kept.
func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if s, ok := k.(string); ok {
				out[s] = val
			}
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	if !isList(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
