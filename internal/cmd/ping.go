package cmd

import (
	"fmt"
	"time"

	"github.com/dendrascience/toolbox/console"
	"github.com/dendrascience/toolbox/netutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentPings bounds the number of requests in flight.
const maxConcurrentPings = 8

// NewPingCmd creates the ping subcommand.
func NewPingCmd(e *env) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping URL...",
		Short: "Check how web servers answer",
		Long: `Send a GET request to every URL and report the status code, the status
message, the response time and the content type.

The URLs are checked concurrently and reported in the order given. The
command fails if any URL could not be reached at all; error status codes
are reported but are not a failure.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("timeout") {
				timeout = e.cfg.Net.PingTimeout
			}
			return runPing(cmd, e, args, timeout)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", netutil.DefaultPingTimeout, "Request timeout")

	return cmd
}

func runPing(cmd *cobra.Command, e *env, urls []string, timeout time.Duration) error {
	results := make([]*netutil.PingResult, len(urls))
	errs := make([]error, len(urls))

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentPings)
	for i, u := range urls {
		g.Go(func() error {
			results[i], errs[i] = netutil.Ping(cmd.Context(), u, timeout)
			return nil
		})
	}
	g.Wait()

	out := cmd.OutOrStdout()
	var firstErr error
	for i, u := range urls {
		if errs[i] != nil {
			e.logger.Warn("ping failed", zap.String("url", u), zap.Error(errs[i]))
			fmt.Fprintf(out, "%s %s\n", u, e.palette.Paint("unreachable", console.FgRed))
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		r := results[i]
		code := console.FgGreen
		if r.StatusCode >= 400 {
			code = console.FgRed
		} else if r.StatusCode >= 300 {
			code = console.FgYellow
		}
		status := e.palette.Paint(fmt.Sprintf("%d %s", r.StatusCode, r.StatusMessage), code)
		fmt.Fprintf(out, "%s %s %s %s\n", u, status, r.ResponseTime.Round(time.Millisecond), r.ContentType)
	}
	return firstErr
}
