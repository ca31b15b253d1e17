// Package rng provides random and seeded number generation for toolbox.
//
// The seeded generator produces reproducible sequences of decimal digits from a numeric
// seed using a small linear congruential recurrence:
//
//	seed = (seed*9301 + 49297) % 233280
//
// Each step yields one digit in [0, 9). The same seed and count always produce the same
// digits, which makes the output suitable for fixtures and shareable "random" values.
//
// Seeds:
//   - GenerateRandomSeed / RandomSeed create seeds that never start with 0
//   - ValidateSeed only checks that a seed consists of the digits 0-9
//
// The non-seeded helpers (RandRange, GenerateUUID, Shuffle sources) draw from a Source,
// which defaults to a time-seeded PCG generator. Use New with a fixed source in tests.
package rng
