// Package console holds the terminal facing pieces of toolbox: ANSI colors, an exclusive
// output coordinator, a cancellable line reader, a progress bar and a pause helper.
//
// Output ownership:
//
// A Coordinator wraps the process's shared output. Code that needs the screen to itself,
// such as an open menu prompt, calls Acquire and draws through the returned Lease. Anything
// written through the Coordinator meanwhile is held back and flushed on Release, so other
// writers never interleave with the prompt and nothing needs to patch os.Stdout.
//
//	co := console.NewCoordinator(os.Stdout)
//	lease, err := co.Acquire("menu")
//	if err != nil {
//		return err
//	}
//	defer lease.Release()
//
// Colors are written with a Palette. Use AutoPalette to drop escape sequences when the
// output is not a terminal or NO_COLOR is set.
package console
