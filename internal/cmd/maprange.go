package cmd

import (
	"fmt"
	"strconv"

	"github.com/dendrascience/toolbox/util"
	"github.com/dendrascience/toolbox/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewMapRangeCmd creates the maprange subcommand.
func NewMapRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maprange VALUE FROM_MIN FROM_MAX TO_MIN TO_MAX",
		Short: "Map a number from one range onto another",
		Long: `Map VALUE linearly from [FROM_MIN, FROM_MAX] onto [TO_MIN, TO_MAX].

Values outside the source range are extrapolated, not clamped.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := make([]float64, len(args))
			for i, arg := range args {
				f, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return errors.Wrapf(err, "parse %q", arg)
				}
				v[i] = f
			}
			mapped, err := util.MapRange(v[0], v[1], v[2], v[3], v[4])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(mapped, 'f', -1, 64))
			return nil
		},
	}
}

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion(cmd.OutOrStdout(), "toolbox")
		},
	}
}
