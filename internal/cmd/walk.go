package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dendrascience/toolbox/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewWalkCmd creates the walk subcommand.
// It lists or counts the files of a directory tree.
func NewWalkCmd(e *env) *cobra.Command {
	var (
		path   string
		count  bool
		limit  int
		serial bool
	)

	cmd := &cobra.Command{
		Use:   "walk [PATH]",
		Short: "List or count the files in a directory tree",
		Long: `List every file below PATH, one absolute path per line.

Directories are read concurrently. With --count only the number of
files is printed; combined with --limit counting stops as soon as the
limit is exceeded, which keeps checks on very large trees cheap.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			if count {
				return runCount(cmd, e, path, limit)
			}
			return runWalk(cmd, e, path, serial)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to walk")
	cmd.Flags().BoolVarP(&count, "count", "c", false, "Print the number of files instead of their paths")
	cmd.Flags().IntVarP(&limit, "limit", "l", -1, "Stop counting once the count exceeds this limit (-1 for no limit)")
	cmd.Flags().BoolVar(&serial, "serial", false, "Read directories one at a time")

	return cmd
}

func runWalk(cmd *cobra.Command, e *env, path string, serial bool) error {
	var (
		files []string
		err   error
	)
	if serial {
		files, err = util.ReadDirRecursiveSync(path)
	} else {
		files, err = util.ReadDirRecursive(cmd.Context(), path)
	}
	if err != nil {
		return err
	}
	e.logger.Debug("walked directory", zap.String("path", path), zap.Int("files", len(files)))

	out := cmd.OutOrStdout()
	for _, f := range files {
		ext := strings.TrimPrefix(filepath.Ext(f), ".")
		if ext == "" {
			fmt.Fprintln(out, f)
			continue
		}
		// Files sharing an extension share a color.
		fmt.Fprintln(out, strings.TrimSuffix(f, ext)+e.palette.Hash(ext))
	}
	return nil
}

func runCount(cmd *cobra.Command, e *env, path string, limit int) error {
	count, overage, err := util.CountFiles(path, limit)
	if err != nil {
		return err
	}
	e.logger.Debug("counted files", zap.String("path", path), zap.Int("count", count), zap.Bool("overage", overage))
	if overage {
		fmt.Fprintf(cmd.OutOrStdout(), "More than %d files\n", limit)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total files: %d\n", count)
	return nil
}
