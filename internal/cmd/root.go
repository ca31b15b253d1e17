package cmd

import (
	"github.com/dendrascience/toolbox/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the toolbox CLI.
// It sets up all subcommands, command groups, and the shared configuration.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newEnv())
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toolbox",
		Short: "toolbox - Interactive menus, seeded random numbers and small utilities",
		Long: `toolbox bundles the helpers behind interactive console scripts.

It drives menu prompts defined in TOML, YAML or JSON files, generates
reproducible digit sequences from a seed, and ships a handful of file,
network and console utilities.

Use subcommands to perform different operations:
  - menu: Run an interactive menu prompt from a menu file
  - rng, seed, uuid: Random and seeded value generation
  - walk, tree, log: File utilities
  - ping, download: Network utilities
  - color, pause: Console utilities`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.configPath, "config", "", "Path to a TOML config file (default $HOME/.toolbox.toml)")
	rootCmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&e.noColor, "no-color", false, "Disable colored output")

	groupInteractive := "interactive"
	groupRandom := "random"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupInteractive,
		Title: "Interactive Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupRandom,
		Title: "Random Values",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	menuCmd := NewMenuCmd(e)
	pauseCmd := NewPauseCmd(e)
	rngCmd := NewRngCmd(e)
	seedCmd := NewSeedCmd()
	uuidCmd := NewUUIDCmd()
	walkCmd := NewWalkCmd(e)
	treeCmd := NewTreeCmd(e)
	logCmd := NewLogCmd()
	pingCmd := NewPingCmd(e)
	downloadCmd := NewDownloadCmd(e)
	colorCmd := NewColorCmd()
	mapRangeCmd := NewMapRangeCmd()
	versionCmd := NewVersionCmd()

	menuCmd.GroupID = groupInteractive
	pauseCmd.GroupID = groupInteractive
	rngCmd.GroupID = groupRandom
	seedCmd.GroupID = groupRandom
	uuidCmd.GroupID = groupRandom
	walkCmd.GroupID = groupUtilities
	treeCmd.GroupID = groupUtilities
	logCmd.GroupID = groupUtilities
	pingCmd.GroupID = groupUtilities
	downloadCmd.GroupID = groupUtilities
	colorCmd.GroupID = groupUtilities
	mapRangeCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(rngCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(uuidCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(mapRangeCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
