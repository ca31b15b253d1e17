package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/toolbox/console"
	"github.com/dendrascience/toolbox/menu"
	"github.com/dendrascience/toolbox/shutdown"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMenuCmd creates the menu subcommand, which runs an interactive prompt from a
// menu file and prints the selections.
func NewMenuCmd(e *env) *cobra.Command {
	var (
		format  string
		exitKey string
	)

	cmd := &cobra.Command{
		Use:   "menu FILE",
		Short: "Run an interactive menu prompt",
		Long: `Show the menus defined in FILE one after another and record one answer per menu.

FILE is a TOML, YAML or JSON document, chosen by its extension. Settings in the
file (exit_key, option_separator, cursor_prefix, retry_on_invalid) override the
[prompt] section of the config file. Invalid menus are reported and skipped.

The selections are printed when every menu was answered, when input ends, or
when the prompt is interrupted with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return errors.Errorf("unknown output format %q", format)
			}
			opts := []menu.PromptOption{}
			if cmd.Flags().Changed("exit-key") {
				opts = append(opts, menu.WithExitKey(exitKey))
			}
			return runMenu(cmd, e, args[0], format, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format for the selections (text or json)")
	cmd.Flags().StringVar(&exitKey, "exit-key", "", "Override the exit key; empty disables it")

	return cmd
}

func runMenu(cmd *cobra.Command, e *env, path, format string, extra []menu.PromptOption) error {
	def, err := menu.LoadFile(path)
	var invalid *menu.InvalidMenusError
	if errors.As(err, &invalid) {
		e.logger.Warn("menu file contains invalid menus", zap.String("path", path), zap.Ints("indices", invalid.Indices))
		fmt.Fprintln(cmd.ErrOrStderr(), e.palette.Paint(invalid.Error(), console.FgYellow))
	} else if err != nil {
		return err
	}

	opts := append(e.cfg.Prompt.Options(), def.Options()...)
	opts = append(opts, extra...)
	opts = append(opts,
		menu.WithInput(lineReader(cmd.InOrStdin())),
		menu.WithConsole(e.console),
		menu.WithPalette(e.palette),
		menu.WithLogger(e.logger),
	)
	p, err := menu.New(def.Menus, opts...)
	if err != nil && !errors.As(err, &invalid) {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The first signal closes the prompt; the selections made so far are printed
	// below and the process then exits with the signal status.
	interrupted := make(chan int, 1)
	sc := shutdown.New(
		shutdown.WithExitCode(130),
		shutdown.WithExitFunc(func(code int) { interrupted <- code }),
		shutdown.WithLogger(e.logger),
	)
	sc.OnShutdown(func() { p.Close() })
	go sc.Listen(ctx)

	err = p.Open(ctx)
	sc.Block()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if err := printResults(cmd.OutOrStdout(), p.Result(), format); err != nil {
		return err
	}
	select {
	case code := <-interrupted:
		e.exit(code)
	default:
	}
	return nil
}

// lineReader returns the shared stdin reader for os.Stdin so lines scanned ahead are
// never stranded in a reader of an earlier prompt.
func lineReader(in io.Reader) *console.LineReader {
	if in == os.Stdin {
		return console.Stdin()
	}
	return console.NewLineReader(in)
}

func printResults(w io.Writer, results []menu.Result, format string) error {
	if format == "json" {
		if results == nil {
			results = []menu.Result{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No options selected")
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", r.MenuTitle, r.Key, r.Description); err != nil {
			return err
		}
	}
	return nil
}
