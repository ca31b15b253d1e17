// Package util provides small general purpose helpers used across toolbox.
//
// Key Components:
//
// Slices and Strings:
//   - Typed emptiness predicates (IsEmptyString, IsBlank, IsZero) in place of one
//     catch-all "is empty" check
//   - ArrayEmptiness and AllEqual reports over comparable slices
//   - ReadableArray / JoinReadable for "a, b and c" style output
//   - RemoveDuplicates (first occurrence wins) and Shuffle (Fisher-Yates)
//
// Numbers:
//   - MapRange transforms a value between two numerical ranges
//
// Directory Traversal:
//   - ReadDirRecursive walks a tree concurrently with bounded parallelism
//   - ReadDirRecursiveSync walks a tree on the calling goroutine
//   - CountFiles counts files below a directory and stops early past a limit
//
// File Logging:
//   - FileLogger appends (or overwrites) plain text lines, optionally prefixed with a
//     timestamp, using a zap core so writes are synced and serialized
//
// Functions in this package return sentinel errors from errors.go where callers are
// expected to branch on the failure.
package util
