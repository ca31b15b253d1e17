package cmd

import (
	"strings"

	"github.com/dendrascience/toolbox/util"
	"github.com/spf13/cobra"
)

// NewLogCmd creates the log subcommand, which appends a line to a plain text log file.
func NewLogCmd() *cobra.Command {
	var (
		overwrite bool
		timestamp bool
	)

	cmd := &cobra.Command{
		Use:   "log FILE CONTENT...",
		Short: "Append a line to a log file",
		Long: `Write CONTENT as one line to FILE, creating the file if needed.

The words of CONTENT are joined with single spaces. With --timestamp the
line is prefixed with the current time.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return util.LogToFile(args[0], strings.Join(args[1:], " "), util.LogOptions{
				Overwrite: overwrite,
				Timestamp: timestamp,
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the file instead of appending")
	cmd.Flags().BoolVarP(&timestamp, "timestamp", "t", false, "Prefix the line with the current time")

	return cmd
}
