// Package menu implements an interactive terminal prompt that walks the user through a
// sequence of menus and records one selection per menu.
//
// A Prompt moves through four states:
//
//	created -> open -> finished
//	                -> closed
//
// Open renders the current menu, waits for one line of input and applies it:
//   - the exit key (if configured) skips the menu
//   - an empty answer shows the menu again with a hint, or skips it when
//     WithRetryOnInvalid(false) was given
//   - a matching key records a Result and moves on
//   - any other answer shows the menu again with an "Invalid option" hint
//
// Once every menu was answered the prompt is finished and the OnFinished callback
// receives the results. Close stops a prompt early from any goroutine; it cancels the
// pending read and returns what was collected so far. Menus may be added while the prompt
// is open.
//
// Menus can be loaded from TOML, YAML or JSON files with LoadFile. ValidateMenu reports
// every problem with a menu, including menus decoded into generic maps.
package menu
