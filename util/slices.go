package util

import (
	"fmt"
	"strings"
)

const (
	// DefaultSeparator is placed between all but the last two items by ReadableArray.
	DefaultSeparator = ", "
	// DefaultLastSeparator is placed between the last two items of three or more.
	DefaultLastSeparator = " and "
)

// IsEmptyString reports whether s has no characters.
func IsEmptyString(s string) bool {
	return s == ""
}

// IsBlank reports whether s is empty or consists only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsZero reports whether v is the zero value of its type.
func IsZero[T comparable](v T) bool {
	var zero T
	return v == zero
}

// Emptiness describes how many items of a slice hold their zero value.
type Emptiness struct {
	Empty int
	Total int
}

// All reports whether every item is empty.
func (e Emptiness) All() bool { return e.Empty == e.Total }

// None reports whether no item is empty.
func (e Emptiness) None() bool { return e.Empty == 0 }

// Some reports whether only part of the items are empty.
func (e Emptiness) Some() bool { return !e.All() && !e.None() }

// ArrayEmptiness counts the zero values in items.
func ArrayEmptiness[T comparable](items []T) (Emptiness, error) {
	if len(items) == 0 {
		return Emptiness{}, ErrEmptyInput
	}
	e := Emptiness{Total: len(items)}
	for _, item := range items {
		if IsZero(item) {
			e.Empty++
		}
	}
	return e, nil
}

// AllEqual reports whether every item equals the first one.
func AllEqual[T comparable](items []T) (bool, error) {
	if len(items) == 0 {
		return false, ErrEmptyInput
	}
	for _, item := range items[1:] {
		if item != items[0] {
			return false, nil
		}
	}
	return true, nil
}

// ReadableArray joins items with DefaultSeparator and DefaultLastSeparator.
func ReadableArray[T any](items []T) string {
	return JoinReadable(items, DefaultSeparator, DefaultLastSeparator)
}

// JoinReadable joins items so they read like a sentence: "a, b and c".
// Two items are joined with separator only, one item is returned as is.
func JoinReadable[T any](items []T, separator, lastSeparator string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}

	switch len(parts) {
	case 0:
		return ""
	case 1, 2:
		return strings.Join(parts, separator)
	}
	last := len(parts) - 1
	return strings.Join(parts[:last], separator) + lastSeparator + parts[last]
}

// RemoveDuplicates returns the items of s in order, keeping the first occurrence of each.
func RemoveDuplicates[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Intner is a source of uniform integers in [0, n).
type Intner interface {
	IntN(n int) int
}

// Shuffle returns a shuffled copy of items. The input is left untouched.
func Shuffle[T any](items []T, src Intner) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
