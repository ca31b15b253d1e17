// Package main provides the toolbox command-line interface.
//
// toolbox bundles the helpers behind interactive console scripts: menu prompts loaded
// from TOML, YAML or JSON files, reproducible digit sequences from a seed, and small
// file, network and console utilities.
//
// The main binary supports multiple subcommands:
//   - menu: Run an interactive menu prompt
//   - rng, seed, uuid: Generate random and seeded values
//   - walk, tree, log: Work with files and directory trees
//   - ping, download: Check and fetch URLs
//   - color, pause: Console helpers
package main
