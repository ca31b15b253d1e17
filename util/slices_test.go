package util

import (
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"
)

func TestEmptinessPredicates(t *testing.T) {
	if !IsEmptyString("") || IsEmptyString(" ") {
		t.Errorf("IsEmptyString mismatch")
	}
	if !IsBlank(" \t\n") || IsBlank(" a ") {
		t.Errorf("IsBlank mismatch")
	}
	if !IsZero(0) || IsZero(1) || !IsZero("") || IsZero("x") {
		t.Errorf("IsZero mismatch")
	}
}

func TestArrayEmptiness(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		empty int
		all   bool
		none  bool
		some  bool
	}{
		{name: "all empty", items: []string{"", "", ""}, empty: 3, all: true},
		{name: "some empty", items: []string{"", "test", ""}, empty: 2, some: true},
		{name: "none empty", items: []string{"1", "test"}, empty: 0, none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ArrayEmptiness(tt.items)
			if err != nil {
				t.Fatal(err)
			}
			if e.Empty != tt.empty || e.Total != len(tt.items) {
				t.Errorf("Expected %d/%d but got %d/%d", tt.empty, len(tt.items), e.Empty, e.Total)
			}
			if e.All() != tt.all || e.None() != tt.none || e.Some() != tt.some {
				t.Errorf("Unexpected report %+v", e)
			}
		})
	}

	if _, err := ArrayEmptiness([]int{}); err != ErrEmptyInput {
		t.Errorf("Expected %v but got %v", ErrEmptyInput, err)
	}
}

func TestAllEqual(t *testing.T) {
	tests := []struct {
		items    []int
		expected bool
	}{
		{[]int{1}, true},
		{[]int{4, 4, 4}, true},
		{[]int{4, 4, 5}, false},
	}
	for _, tt := range tests {
		got, err := AllEqual(tt.items)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.expected {
			t.Errorf("AllEqual(%v) = %v, expected %v", tt.items, got, tt.expected)
		}
	}
	if _, err := AllEqual([]string(nil)); err != ErrEmptyInput {
		t.Errorf("Expected %v but got %v", ErrEmptyInput, err)
	}
}

func TestReadableArray(t *testing.T) {
	tests := []struct {
		name     string
		items    []any
		sep      string
		last     string
		expected string
	}{
		{name: "empty", items: nil, sep: ", ", last: " and ", expected: ""},
		{name: "single", items: []any{1}, sep: ", ", last: " and ", expected: "1"},
		{name: "two items use separator", items: []any{"a", "b"}, sep: ", ", last: " and ", expected: "a, b"},
		{name: "three items", items: []any{"a", "b", "c"}, sep: ", ", last: " and ", expected: "a, b and c"},
		{name: "custom separators", items: []any{1, 2, 3, 4}, sep: "-", last: " or ", expected: "1-2-3 or 4"},
		{name: "empty separators", items: []any{1, 2, 3}, sep: "", last: "", expected: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinReadable(tt.items, tt.sep, tt.last)
			if got != tt.expected {
				t.Errorf("JoinReadable(%v) = %q, expected %q", tt.items, got, tt.expected)
			}
		})
	}

	if got := ReadableArray([]int{0, 2, 5}); got != "0, 2 and 5" {
		t.Errorf("ReadableArray = %q", got)
	}

	// The input must not be modified.
	in := []string{"x", "y", "z"}
	ReadableArray(in)
	if !reflect.DeepEqual(in, []string{"x", "y", "z"}) {
		t.Errorf("ReadableArray modified its input: %v", in)
	}
}

func TestRemoveDuplicates(t *testing.T) {
	got := RemoveDuplicates([]string{"a", "b", "a", "c", "b", "a"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("RemoveDuplicates = %v", got)
	}
	if got := RemoveDuplicates([]int{}); len(got) != 0 {
		t.Errorf("Expected empty result but got %v", got)
	}
}

func TestShuffle(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out := Shuffle(in, src)

	if !reflect.DeepEqual(in, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}) {
		t.Errorf("Shuffle modified its input: %v", in)
	}
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	if !reflect.DeepEqual(sorted, in) {
		t.Errorf("Shuffle lost items: %v", out)
	}

	again := Shuffle(in, rand.New(rand.NewPCG(1, 2)))
	if !reflect.DeepEqual(out, again) {
		t.Errorf("Expected equal sources to shuffle equally: %v != %v", out, again)
	}
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		name                          string
		value, min1, max1, min2, max2 float64
		expected                      float64
	}{
		{"zero based", 5, 0, 10, 0, 100, 50},
		{"shifted", 15, 10, 20, 100, 200, 150},
		{"inverted target", 0, 0, 10, 10, -10, 10},
		{"extrapolated", 20, 0, 10, 0, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapRange(tt.value, tt.min1, tt.max1, tt.min2, tt.max2)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("MapRange = %v, expected %v", got, tt.expected)
			}
		})
	}

	if _, err := MapRange(1, 0, 0, 0, 10); err != ErrDivisionByZero {
		t.Errorf("Expected %v but got %v", ErrDivisionByZero, err)
	}
	if _, err := MapRange(1, 5, 5, 1, 10); err != ErrDivisionByZero {
		t.Errorf("Expected %v but got %v", ErrDivisionByZero, err)
	}
}
