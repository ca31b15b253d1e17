package cmd

import (
	"fmt"
	"strings"

	"github.com/dendrascience/toolbox/console"
	"github.com/spf13/cobra"
)

// NewColorCmd creates the color subcommand.
func NewColorCmd() *cobra.Command {
	var (
		colors string
		hash   bool
	)

	cmd := &cobra.Command{
		Use:   "color TEXT...",
		Short: "Print text with ANSI colors",
		Long: `Print TEXT wrapped in the ANSI sequences named by --colors.

--colors takes a space separated list such as "fgred bright underline".
With --hash the color is derived from the text itself, so the same text
always gets the same color. Colors are written even when the output is
not a terminal.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if hash {
				fmt.Fprintln(cmd.OutOrStdout(), console.ANSI.Hash(text))
				return nil
			}
			colored, err := console.Colorize(text, colors)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), colored)
			return nil
		},
	}

	cmd.Flags().StringVarP(&colors, "colors", "c", "reset", "Color and style names")
	cmd.Flags().BoolVar(&hash, "hash", false, "Pick the color from the text")

	return cmd
}

// NewPauseCmd creates the pause subcommand.
func NewPauseCmd(e *env) *cobra.Command {
	var (
		text     string
		errorLog string
	)

	cmd := &cobra.Command{
		Use:   "pause",
		Short: "Wait for a key press",
		Long: `Print a message and wait until a key is pressed.

On a terminal any single key continues; otherwise the next input is
consumed. Ctrl+C aborts with an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := console.Pause(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), text)
			if err != nil {
				var opts []console.ErrorOption
				if errorLog != "" {
					opts = append(opts, console.WithErrorLog(errorLog))
				}
				console.PrintError(cmd.ErrOrStderr(), err.Error(), e.palette, opts...)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", console.DefaultPauseText, "Message to show")
	cmd.Flags().StringVar(&errorLog, "error-log", "", "Also append errors to this file")

	return cmd
}
