package rng

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultSeedDigits is the length of generated seeds.
	DefaultSeedDigits = 10
	// DefaultCount is the number of digits generated when no count is given.
	DefaultCount = 16

	// maxInt64Digits is the longest seed that always fits an int64.
	maxInt64Digits = 18

	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Seedish is any value a seed can be given as.
type Seedish interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~string
}

// Sequence is the result of a seeded generation.
type Sequence struct {
	// Numbers holds the generated digits in order.
	Numbers []int
	// Seed is the seed that produced Numbers, as text.
	Seed string
	// Joined is Numbers concatenated.
	Joined string
}

// Int64 parses Joined as an int64. It reports false when the sequence is too long.
func (s *Sequence) Int64() (int64, bool) {
	v, err := strconv.ParseInt(s.Joined, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Integer returns Joined as an arbitrary precision integer.
func (s *Sequence) Integer() *big.Int {
	v, ok := new(big.Int).SetString(s.Joined, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}

// RandomSeed returns a random seed of exactly digitCount decimal digits that does not
// start with 0. A digitCount of 0 means DefaultSeedDigits.
func (g *Generator) RandomSeed(digitCount int) (string, error) {
	if digitCount == 0 {
		digitCount = DefaultSeedDigits
	}
	if digitCount < 0 {
		return "", errors.Wrapf(ErrInvalidDigitCount, "got %d", digitCount)
	}

	digits := make([]byte, digitCount)
	for i := range digits {
		digits[i] = byte('0' + g.intN(10))
	}
	if digits[0] == '0' {
		digits[0] = byte('1' + g.intN(9))
	}
	return string(digits), nil
}

// GenerateRandomSeed returns a random seed of digitCount digits as an integer.
// digitCount must be between 1 and 18; 0 means DefaultSeedDigits.
func (g *Generator) GenerateRandomSeed(digitCount int) (int64, error) {
	if digitCount > maxInt64Digits {
		return 0, errors.Wrapf(ErrInvalidDigitCount, "got %d, at most %d digits fit an integer", digitCount, maxInt64Digits)
	}
	seed, err := g.RandomSeed(digitCount)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(seed, 10, 64)
}

// SeededNumbers generates count digits from seed. An empty seed is replaced by a
// random one and a count of 0 means DefaultCount.
func (g *Generator) SeededNumbers(count int, seed string) (*Sequence, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", count)
	}
	if count == 0 {
		count = DefaultCount
	}
	if seed == "" {
		var err error
		if seed, err = g.RandomSeed(DefaultSeedDigits); err != nil {
			return nil, err
		}
	}

	if ok, err := validateSeedText(seed); err != nil {
		return nil, err
	} else if !ok {
		return nil, errors.Wrapf(ErrInvalidSeed, "seed %q", seed)
	}

	state := reduceSeed(seed)
	numbers := make([]int, count)
	var joined strings.Builder
	joined.Grow(count)
	for i := range numbers {
		state = (state*lcgMultiplier + lcgIncrement) % lcgModulus
		numbers[i] = digitFor(state)
	}
	// A leading 0 would get lost when the digits are read as an integer.
	if numbers[0] == 0 {
		numbers[0] = 1
	}
	for _, n := range numbers {
		joined.WriteByte(byte('0' + n))
	}

	return &Sequence{
		Numbers: numbers,
		Seed:    seed,
		Joined:  joined.String(),
	}, nil
}

// digitFor maps an LCG state onto [0, 9) using the same floating point steps as the
// reference fixtures: floor(min + state/modulus*(max-min)).
func digitFor(state int64) int {
	const min, max = 0.0, 9.0
	rnd := float64(state) / lcgModulus
	return int(math.Floor(min + rnd*(max-min)))
}

// reduceSeed returns seed mod the LCG modulus. The first recurrence step only depends on
// this residue, so seeds of any length work with exact integer arithmetic.
func reduceSeed(seed string) int64 {
	var r int64
	for i := 0; i < len(seed); i++ {
		r = (r*10 + int64(seed[i]-'0')) % lcgModulus
	}
	return r
}

func validateSeedText(seed string) (bool, error) {
	if seed == "" {
		return false, ErrInvalidArgument
	}
	if strings.ContainsAny(seed, "\r\n") {
		return false, nil
	}
	for i := 0; i < len(seed); i++ {
		if seed[i] < '0' || seed[i] > '9' {
			return false, nil
		}
	}
	return true, nil
}

func seedText[S Seedish](seed S) string {
	var zero S
	if seed == zero {
		return ""
	}
	return fmt.Sprint(seed)
}

// ValidateSeed reports whether seed consists only of the digits 0-9. Leading zeros are
// accepted. The zero value (0 or "") returns ErrInvalidArgument, matching
// GenerateSeededNumbers, which treats it as "no seed".
func ValidateSeed[S Seedish](seed S) (bool, error) {
	return validateSeedText(seedText(seed))
}

// RandomSeed returns a random seed of digitCount digits from the default generator.
func RandomSeed(digitCount int) (string, error) {
	return defaultGenerator.RandomSeed(digitCount)
}

// GenerateRandomSeed returns a random integer seed from the default generator.
func GenerateRandomSeed(digitCount int) (int64, error) {
	return defaultGenerator.GenerateRandomSeed(digitCount)
}

// GenerateSeededNumbers generates count digits from seed. The zero value of seed
// (0 or "") picks a random seed from the default generator.
func GenerateSeededNumbers[S Seedish](count int, seed S) (*Sequence, error) {
	return defaultGenerator.SeededNumbers(count, seedText(seed))
}
