package menu

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dendrascience/toolbox/console"
	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest"
)

// scriptedReader answers ReadLine from a fixed list and returns io.EOF afterwards.
type scriptedReader struct {
	mu      sync.Mutex
	answers []string
	reads   int
}

func (r *scriptedReader) ReadLine(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.reads >= len(r.answers) {
		return "", io.EOF
	}
	answer := r.answers[r.reads]
	r.reads++
	return answer, nil
}

type bufferSink struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	clears int
}

func (s *bufferSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *bufferSink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	return nil
}

func (s *bufferSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *bufferSink) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func fruitMenus() []Menu {
	return []Menu{
		{Title: "Fruit", Options: []Option{{Key: "1", Description: "Apple"}, {Key: "2", Description: "Banana"}}},
		{Title: "Size", Options: []Option{{Key: "s", Description: "Small"}, {Key: "m", Description: "Medium"}, {Key: "l", Description: "Large"}}},
	}
}

func newTestPrompt(t *testing.T, menus []Menu, answers []string, opts ...PromptOption) (*Prompt, *bufferSink) {
	t.Helper()
	sink := &bufferSink{}
	base := []PromptOption{
		WithInput(&scriptedReader{answers: answers}),
		WithOutput(sink),
		WithPalette(console.Plain),
		WithLogger(zaptest.NewLogger(t)),
	}
	p, err := New(menus, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return p, sink
}

func mustOpen(t *testing.T, p *Prompt) {
	t.Helper()
	if err := p.Open(context.Background()); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
}

func TestPromptSelectsOnePerMenu(t *testing.T) {
	var finished [][]Result
	p, _ := newTestPrompt(t, fruitMenus(), []string{"2", "l"},
		WithOnFinished(func(r []Result) { finished = append(finished, r) }))

	if p.State() != StateCreated || p.CurrentMenu() != -1 || p.Result() != nil {
		t.Fatalf("Unexpected initial prompt: state %s, menu %d, result %v", p.State(), p.CurrentMenu(), p.Result())
	}

	mustOpen(t, p)

	expected := []Result{
		{Key: "2", Description: "Banana", MenuTitle: "Fruit", OptionIndex: 1, MenuIndex: 0},
		{Key: "l", Description: "Large", MenuTitle: "Size", OptionIndex: 2, MenuIndex: 1},
	}
	if got := p.Result(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v but got %v", expected, got)
	}
	if p.State() != StateFinished || p.CurrentMenu() != -1 {
		t.Errorf("Expected a finished prompt but got state %s, menu %d", p.State(), p.CurrentMenu())
	}
	if len(finished) != 1 || !reflect.DeepEqual(finished[0], expected) {
		t.Errorf("Expected one finish callback with %v but got %v", expected, finished)
	}

	if got := p.Close(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected Close to return %v but got %v", expected, got)
	}
	if p.State() != StateFinished {
		t.Errorf("Expected Close to keep the finished state but got %s", p.State())
	}
}

func TestPromptRender(t *testing.T) {
	testCases := []struct {
		Name     string
		Menu     Menu
		Answer   string
		Options  []PromptOption
		Expected string
	}{
		{
			Name:     "aligned keys and exit",
			Menu:     Menu{Title: "Pick", Options: []Option{{Key: "1", Description: "Apple"}, {Key: "10", Description: "Banana"}}},
			Answer:   "10",
			Options:  []PromptOption{WithExitKey("x")},
			Expected: "\n\n\nPick\n‾‾‾‾\n1)   Apple\n10)  Banana\n\nx)   Exit\n\n\n─► ",
		},
		{
			Name:     "custom separator without prefix",
			Menu:     Menu{Title: "A", Options: []Option{{Key: "k", Description: "d"}}},
			Answer:   "k",
			Options:  []PromptOption{WithOptionSeparator(":"), WithCursorPrefix("")},
			Expected: "\n\n\nA\n‾\nk:  d\n\n\n",
		},
	}
	for _, c := range testCases {
		t.Run(c.Name, func(t *testing.T) {
			p, sink := newTestPrompt(t, []Menu{c.Menu}, []string{c.Answer}, c.Options...)
			mustOpen(t, p)
			if got := sink.String(); got != c.Expected {
				t.Errorf("Expected %q but got %q", c.Expected, got)
			}
		})
	}
}

func TestPromptRenderColors(t *testing.T) {
	menus := []Menu{{Title: "A", Options: []Option{{Key: "k", Description: "d"}}}}
	p, sink := newTestPrompt(t, menus, []string{"k"}, WithPalette(console.ANSI), WithExitKey("q"))
	mustOpen(t, p)

	out := sink.String()
	for _, want := range []string{"\x1b[1m\x1b[36mA\x1b[0m", "\x1b[32mk\x1b[0m)", "\x1b[31mq\x1b[0m)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q but got %q", want, out)
		}
	}
}

func TestPromptRetries(t *testing.T) {
	p, sink := newTestPrompt(t, fruitMenus()[:1], []string{"", "zzz", "1"})
	mustOpen(t, p)

	out := sink.String()
	for _, want := range []string{
		"❗️ > Please type one of the green options and press enter\n\n\n",
		`❗️ > Invalid option "zzz" selected`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q but got %q", want, out)
		}
	}
	if n := strings.Count(out, "Fruit\n"); n != 3 {
		t.Errorf("Expected the menu to be shown 3 times but got %d", n)
	}
	if results := p.Result(); len(results) != 1 || results[0].Key != "1" {
		t.Errorf("Expected a single selection of key 1 but got %v", results)
	}
}

func TestPromptNoRetrySkipsEmptyAnswers(t *testing.T) {
	p, sink := newTestPrompt(t, fruitMenus(), []string{"", "bad", "m"}, WithRetryOnInvalid(false))
	mustOpen(t, p)

	// The empty answer skips the first menu, the unknown one still retries.
	expected := []Result{{Key: "m", Description: "Medium", MenuTitle: "Size", OptionIndex: 1, MenuIndex: 1}}
	if got := p.Result(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v but got %v", expected, got)
	}
	out := sink.String()
	if !strings.Contains(out, `Invalid option "bad" selected`) {
		t.Errorf("Expected feedback for the unknown answer but got %q", out)
	}
	if strings.Contains(out, "Please type") {
		t.Errorf("Expected no feedback for the empty answer but got %q", out)
	}
}

func TestPromptExitKey(t *testing.T) {
	p, _ := newTestPrompt(t, fruitMenus(), []string{"x", "s"}, WithExitKey("x"))
	mustOpen(t, p)
	if results := p.Result(); len(results) != 1 || results[0].MenuIndex != 1 || results[0].Key != "s" {
		t.Errorf("Expected the exit key to skip only the first menu but got %v", results)
	}

	// Without an exit key "x" is just an unknown answer.
	p, sink := newTestPrompt(t, fruitMenus()[:1], []string{"x", "1"})
	mustOpen(t, p)
	if out := sink.String(); !strings.Contains(out, `Invalid option "x" selected`) || strings.Contains(out, "Exit") {
		t.Errorf("Expected no exit key but got %q", out)
	}
}

func TestPromptAddMenuWhileOpen(t *testing.T) {
	var p *Prompt
	added := false
	p, _ = newTestPrompt(t, fruitMenus()[:1], []string{"1", "y"},
		WithOnOptionSelected(func(r Result) {
			if added {
				return
			}
			added = true
			if err := p.AddMenu(Menu{Title: "More", Options: []Option{{Key: "y", Description: "Yes"}}}); err != nil {
				t.Errorf("AddMenu returned error: %v", err)
			}
		}))
	mustOpen(t, p)

	results := p.Result()
	if len(results) != 2 || results[1].MenuTitle != "More" || results[1].MenuIndex != 1 {
		t.Errorf("Expected the added menu to be answered second but got %v", results)
	}
}

func TestPromptAddMenu(t *testing.T) {
	p, _ := newTestPrompt(t, nil, nil)
	if err := p.Open(context.Background()); err != ErrNoMenus {
		t.Errorf("Expected %v but got %v", ErrNoMenus, err)
	}

	err := p.AddMenu(Menu{Title: "", Options: nil})
	var invalid *InvalidMenuError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected an *InvalidMenuError but got %v", err)
	}
	expected := []string{"title must not be empty", "options must not be empty"}
	if !reflect.DeepEqual(invalid.Problems, expected) {
		t.Errorf("Expected problems %v but got %v", expected, invalid.Problems)
	}
	if p.Menus() != 0 {
		t.Errorf("Expected the invalid menu to be rejected but got %d menus", p.Menus())
	}

	if err := p.AddMenu(fruitMenus()[0]); err != nil {
		t.Errorf("AddMenu returned error: %v", err)
	}
	if p.Menus() != 1 {
		t.Errorf("Expected 1 menu but got %d", p.Menus())
	}
}

func TestPromptClosed(t *testing.T) {
	p, _ := newTestPrompt(t, fruitMenus(), nil)

	first := p.Close()
	if second := p.Close(); !reflect.DeepEqual(first, second) {
		t.Errorf("Expected repeated Close to return %v but got %v", first, second)
	}
	if p.CurrentMenu() != -1 || p.State() != StateClosed {
		t.Errorf("Expected a closed prompt but got state %s, menu %d", p.State(), p.CurrentMenu())
	}

	err := p.AddMenu(Menu{Title: "test", Options: []Option{{Key: "t", Description: "g"}}})
	if err == nil || !strings.HasPrefix(err.Error(), "prompt was already closed") {
		t.Errorf("Expected a closed prompt error but got %v", err)
	}
	if p.Menus() != 2 {
		t.Errorf("Expected the menus to stay untouched but got %d", p.Menus())
	}
	if err := p.Open(context.Background()); err != ErrPromptClosed {
		t.Errorf("Expected %v but got %v", ErrPromptClosed, err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 1s")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPromptCloseDuringRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	sink := &bufferSink{}
	finished := make(chan []Result, 1)
	p, err := New(fruitMenus(),
		WithInput(console.NewLineReader(pr)),
		WithOutput(sink),
		WithPalette(console.Plain),
		WithOnFinished(func(r []Result) { finished <- r }))
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Open(context.Background()) }()

	if _, err := io.WriteString(pw, "1\n"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return p.CurrentMenu() == 1 })

	results := p.Close()
	if err := <-done; err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if len(results) != 1 || p.State() != StateClosed || p.CurrentMenu() != -1 {
		t.Errorf("Unexpected closed prompt: results %v, state %s, menu %d", results, p.State(), p.CurrentMenu())
	}
	if sink.Clears() != 1 {
		t.Errorf("Expected the screen to be cleared once but got %d", sink.Clears())
	}
	if got := <-finished; !reflect.DeepEqual(got, results) {
		t.Errorf("Expected the finish callback to get %v but got %v", results, got)
	}

	// Input arriving after close is not applied.
	go io.WriteString(pw, "s\n")
	time.Sleep(10 * time.Millisecond)
	if got := p.Close(); !reflect.DeepEqual(got, results) {
		t.Errorf("Expected %v but got %v", results, got)
	}
}

func TestConsecutivePromptsShareInput(t *testing.T) {
	in := console.NewLineReader(strings.NewReader("1\ns\n"))
	menus := fruitMenus()

	var results [][]Result
	for i := range menus {
		p, err := New(menus[i:i+1], WithInput(in), WithOutput(&bufferSink{}), WithPalette(console.Plain))
		if err != nil {
			t.Fatal(err)
		}
		if err := p.Open(context.Background()); err != nil {
			t.Fatalf("prompt %d: Open returned error: %v", i, err)
		}
		results = append(results, p.Result())
	}

	if len(results[0]) != 1 || results[0][0].Key != "1" {
		t.Errorf("Expected the first prompt to select 1 but got %v", results[0])
	}
	if len(results[1]) != 1 || results[1][0].Key != "s" {
		t.Errorf("Expected the second prompt to select s but got %v", results[1])
	}
}

func TestPromptDefaultInputIsShared(t *testing.T) {
	first, err := New(fruitMenus(), WithOutput(&bufferSink{}), WithPalette(console.Plain))
	if err != nil {
		t.Fatal(err)
	}
	second, err := New(fruitMenus(), WithOutput(&bufferSink{}), WithPalette(console.Plain))
	if err != nil {
		t.Fatal(err)
	}
	stdin := LineReader(console.Stdin())
	if first.cfg.in != stdin || second.cfg.in != stdin {
		t.Errorf("Expected every prompt to read from console.Stdin()")
	}
}

func TestPromptReadErrorCloses(t *testing.T) {
	p, _ := newTestPrompt(t, fruitMenus(), []string{"1"})
	if err := p.Open(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("Expected %v but got %v", io.EOF, err)
	}
	if p.State() != StateClosed || len(p.Result()) != 1 {
		t.Errorf("Expected a closed prompt with one result but got state %s, results %v", p.State(), p.Result())
	}
}

func TestPromptContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, _ := newTestPrompt(t, fruitMenus(), []string{"1"})
	if err := p.Open(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected %v but got %v", context.Canceled, err)
	}
	if p.State() != StateClosed {
		t.Errorf("Expected state %s but got %s", StateClosed, p.State())
	}
}

// blockingReader signals ready on the first read and answers "1" once released.
type blockingReader struct {
	ready   chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingReader) ReadLine(ctx context.Context) (string, error) {
	r.once.Do(func() { close(r.ready) })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-r.release:
		return "1", nil
	}
}

func TestPromptUsesConsoleLease(t *testing.T) {
	var out bytes.Buffer
	co := console.NewCoordinator(&out)
	reader := &blockingReader{ready: make(chan struct{}), release: make(chan struct{})}
	p, err := New(fruitMenus()[:1],
		WithInput(reader),
		WithConsole(co),
		WithPalette(console.Plain))
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Open(context.Background()) }()
	<-reader.ready

	if owner := co.Owner(); owner != "menu prompt" {
		t.Errorf("Expected the prompt to own the console but got %q", owner)
	}
	if _, err := co.Acquire("other"); !errors.Is(err, console.ErrOutputBusy) {
		t.Errorf("Expected %v but got %v", console.ErrOutputBusy, err)
	}
	io.WriteString(co, "background log\n")
	if strings.Contains(out.String(), "background log") {
		t.Errorf("Expected background output to be held while the prompt is open")
	}

	close(reader.release)
	if err := <-done; err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if co.Owner() != "" {
		t.Errorf("Expected the lease to be released but owner is %q", co.Owner())
	}
	if !strings.HasSuffix(out.String(), "background log\n") {
		t.Errorf("Expected held output to be flushed but got %q", out.String())
	}
	if len(p.Result()) != 1 {
		t.Errorf("Expected one result but got %v", p.Result())
	}
}

func TestNewReportsInvalidMenus(t *testing.T) {
	menus := []Menu{
		fruitMenus()[0],
		{Title: "", Options: []Option{{Key: "a", Description: "A"}}},
		{Title: "Dup", Options: []Option{{Key: "a", Description: "A"}, {Key: "a", Description: "B"}}},
	}
	p, err := New(menus, WithOutput(&bufferSink{}), WithInput(&scriptedReader{}))
	if p == nil {
		t.Fatal("Expected a prompt even with invalid menus")
	}
	var invalid *InvalidMenusError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected an *InvalidMenusError but got %v", err)
	}
	if !reflect.DeepEqual(invalid.Indices, []int{1, 2}) {
		t.Errorf("Expected indices [1 2] but got %v", invalid.Indices)
	}
	if p.Menus() != 1 {
		t.Errorf("Expected 1 valid menu but got %d", p.Menus())
	}
	for _, want := range []string{"menus at indices 1, 2 are invalid", `duplicate key "a"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to contain %q but got %q", want, err.Error())
		}
	}
}

func TestStateString(t *testing.T) {
	testCases := []struct {
		State    State
		Expected string
	}{
		{StateCreated, "created"},
		{StateOpen, "open"},
		{StateFinished, "finished"},
		{StateClosed, "closed"},
		{State(42), "unknown"},
	}
	for _, c := range testCases {
		if got := c.State.String(); got != c.Expected {
			t.Errorf("Expected %q but got %q", c.Expected, got)
		}
	}
}
