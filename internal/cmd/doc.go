// Package cmd provides the command-line interface implementation for toolbox.
//
// This package contains all the subcommand implementations for the toolbox CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, shared config and logger setup
//   - menu, pause: Interactive console commands
//   - rng, seed, uuid: Random and seeded value generation
//   - walk, tree, log, maprange: File and number utilities
//   - ping, download: Network utilities
//   - color, version: Output helpers
//
// Each command is implemented with its own constructor function that returns a
// *cobra.Command. Commands that need configuration, the logger or the shared console
// receive the env built by the root command before they run.
package cmd
