package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time                          { return c.t }
func (c fixedClock) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestLogToFile(t *testing.T) {
	clock := fixedClock{t: time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)}
	stamp := "[" + clock.t.Format(TimestampLayout) + "]  "

	testCases := []struct {
		Name     string
		Seed     string
		Opts     LogOptions
		Content  string
		Expected string
	}{
		{Name: "append with timestamp", Seed: "old\n", Opts: LogOptions{Timestamp: true, Clock: clock}, Content: "hello", Expected: "old\n" + stamp + "hello\n"},
		{Name: "append without timestamp", Seed: "old\n", Opts: LogOptions{}, Content: "hello", Expected: "old\nhello\n"},
		{Name: "overwrite", Seed: "old\n", Opts: LogOptions{Overwrite: true}, Content: "fresh", Expected: "fresh\n"},
		{Name: "overwrite with timestamp", Seed: "old\n", Opts: LogOptions{Overwrite: true, Timestamp: true, Clock: clock}, Content: "fresh", Expected: stamp + "fresh\n"},
		{Name: "new file", Opts: LogOptions{}, Content: "first", Expected: "first\n"},
	}
	for _, c := range testCases {
		t.Run(c.Name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.log")
			if c.Seed != "" {
				if err := os.WriteFile(path, []byte(c.Seed), 0644); err != nil {
					t.Fatal(err)
				}
			}
			if err := LogToFile(path, c.Content, c.Opts); err != nil {
				t.Fatalf("LogToFile returned error: %v", err)
			}
			if got := readFile(t, path); got != c.Expected {
				t.Errorf("Expected %q but got %q", c.Expected, got)
			}
		})
	}
}

func TestLogToFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := LogToFile(filepath.Join(dir, "a.log"), "", LogOptions{}); err != ErrEmptyContent {
		t.Errorf("Expected %v but got %v", ErrEmptyContent, err)
	}
	if err := LogToFile("", "x", LogOptions{}); err != ErrEmptyPath {
		t.Errorf("Expected %v but got %v", ErrEmptyPath, err)
	}
	if err := LogToFile(filepath.Join(dir, "missing", "a.log"), "x", LogOptions{}); err == nil {
		t.Errorf("Expected an error for a missing parent directory")
	}
}

func TestFileLoggerMultipleLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi.log")
	l, err := NewFileLogger(path, LogOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"one", "two", "three"} {
		if err := l.Log(line); err != nil {
			t.Fatalf("Log(%q) returned error: %v", line, err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Expected second Close to be a no-op but got %v", err)
	}
	if err := l.Log("late"); err != ErrLoggerClosed {
		t.Errorf("Expected %v but got %v", ErrLoggerClosed, err)
	}
	if got := readFile(t, path); got != "one\ntwo\nthree\n" {
		t.Errorf("Unexpected file content %q", got)
	}
}
