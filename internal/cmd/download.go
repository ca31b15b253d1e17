package cmd

import (
	"fmt"
	"time"

	"github.com/dendrascience/toolbox/console"
	"github.com/dendrascience/toolbox/internal/config"
	"github.com/dendrascience/toolbox/netutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// progressSteps is the number of cells in the download progress bar.
const progressSteps = 20

// NewDownloadCmd creates the download subcommand.
func NewDownloadCmd(e *env) *cobra.Command {
	var (
		dir      string
		name     string
		interval time.Duration
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Download a file",
		Long: `Download URL into a directory, following redirects.

A progress bar is shown while the body is copied when the server
reports the size. A partially written file is removed when the
download fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = e.cfg.Net.DownloadDir
			}
			opts := netutil.DownloadOptions{
				FileName: name,
				Interval: interval,
				Logger:   e.logger,
			}
			if !quiet {
				report, err := newDownloadReporter(cmd, e)
				if err != nil {
					return err
				}
				opts.Progress = report
			}
			path, err := netutil.Download(cmd.Context(), args[0], dir, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", config.DefaultDownloadDir, "Destination directory")
	cmd.Flags().StringVarP(&name, "name", "n", netutil.DefaultFileName, "Name of the written file")
	cmd.Flags().DurationVar(&interval, "interval", netutil.DefaultProgressInterval, "How often progress is reported")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not show progress")

	return cmd
}

// newDownloadReporter maps byte progress onto a fixed number of bar increments.
// Without a known total only the byte count is logged.
func newDownloadReporter(cmd *cobra.Command, e *env) (func(netutil.Progress), error) {
	bar, err := console.NewProgressBar(cmd.ErrOrStderr(), progressSteps, "starting", console.WithProgressPalette(e.palette))
	if err != nil {
		return nil, err
	}
	shown := 0
	return func(p netutil.Progress) {
		frac := p.Fraction()
		if frac < 0 {
			e.logger.Debug("download progress", zap.String("kb", p.CurrentKB()))
			return
		}
		target := int(frac * progressSteps)
		for shown < target {
			shown++
			bar.Next(fmt.Sprintf("%s of %s MB", p.CurrentMB(), p.TotalMB()))
		}
	}, nil
}
