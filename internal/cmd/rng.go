package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dendrascience/toolbox/rng"
	"github.com/dendrascience/toolbox/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRngCmd creates the rng subcommand and its children.
func NewRngCmd(e *env) *cobra.Command {
	var (
		count int
		seed  string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "rng",
		Short: "Generate a reproducible sequence of digits",
		Long: `Generate COUNT pseudo-random digits from a seed.

The same seed always yields the same digits. Without --seed a random
seed is generated and printed alongside the digits so the run can be
repeated later.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := rng.GenerateSeededNumbers(count, seed)
			if err != nil {
				return err
			}
			e.logger.Debug("generated sequence", zap.String("seed", seq.Seed), zap.Int("count", len(seq.Numbers)))
			if quiet {
				fmt.Fprintln(cmd.OutOrStdout(), seq.Joined)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seed: %s\nDigits: %s\n", seq.Seed, seq.Joined)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", rng.DefaultCount, "Number of digits to generate")
	cmd.Flags().StringVarP(&seed, "seed", "s", "", "Seed made of the digits 0-9")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the digits")

	cmd.AddCommand(newRngIntCmd(), newRngShuffleCmd())

	return cmd
}

func newRngIntCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "int MIN MAX",
		Short: "Print a random integer between MIN and MAX inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds := make([]int, 2)
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return errors.Wrapf(err, "parse bound %q", arg)
				}
				bounds[i] = v
			}
			n, err := rng.RandRange(bounds[0], bounds[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newRngShuffleCmd() *cobra.Command {
	var unique bool

	cmd := &cobra.Command{
		Use:   "shuffle ITEM...",
		Short: "Print the items in random order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := args
			if unique {
				items = util.RemoveDuplicates(items)
			}
			shuffled := util.Shuffle(items, rng.Default())
			fmt.Fprintln(cmd.OutOrStdout(), util.ReadableArray(shuffled))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unique, "unique", "u", false, "Drop repeated items before shuffling")

	return cmd
}

// NewSeedCmd creates the seed subcommand, which prints a random seed.
func NewSeedCmd() *cobra.Command {
	var (
		digits   int
		validate string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate or validate a seed",
		Long: `Print a random seed of exactly DIGITS decimal digits.

Seeds never start with 0 so they keep their length when read back as a
number. With --validate the given seed is checked instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("validate") {
				ok, err := rng.ValidateSeed(validate)
				if err != nil {
					return err
				}
				if !ok {
					return errors.Wrapf(rng.ErrInvalidSeed, "seed %q", validate)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid seed\n", validate)
				return nil
			}
			seed, err := rng.RandomSeed(digits)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), seed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&digits, "digits", "d", rng.DefaultSeedDigits, "Number of digits in the seed")
	cmd.Flags().StringVar(&validate, "validate", "", "Validate SEED instead of generating one")

	return cmd
}

// NewUUIDCmd creates the uuid subcommand.
func NewUUIDCmd() *cobra.Command {
	var (
		format string
		count  int
	)

	cmd := &cobra.Command{
		Use:   "uuid",
		Short: "Generate UUIDs",
		Long: `Print random version 4 UUIDs.

With --format every x in the pattern is replaced by a random hex digit and
every y by one of 8, 9, a or b, for example "xxxx-yxxx".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.Errorf("count must be at least 1, got %d", count)
			}
			ids := make([]string, 0, count)
			for range count {
				if format == "" {
					ids = append(ids, rng.NewUUID())
					continue
				}
				id, err := rng.GenerateUUID(format)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ids, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Pattern of x and y placeholders")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of UUIDs to print")

	return cmd
}
