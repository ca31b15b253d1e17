package rng

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Source is a uniform random source. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Generator draws random values from a Source. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	src Source
}

// New returns a Generator backed by src.
func New(src Source) *Generator {
	return &Generator{src: src}
}

var defaultGenerator = New(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Unix()))))

// Default returns the package level generator.
func Default() *Generator {
	return defaultGenerator
}

func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.src.IntN(n)
}

// IntN returns a uniform value in [0, n). It panics if n <= 0, like rand.IntN.
func (g *Generator) IntN(n int) int {
	return g.intN(n)
}

// RandRange returns a uniform integer in [min, max], both boundaries inclusive.
func (g *Generator) RandRange(min, max int) (int, error) {
	if min > max {
		return 0, errors.Wrapf(ErrOutOfRange, "min %d, max %d", min, max)
	}
	return min + g.intN(max-min+1), nil
}

// GenerateUUID fills a format string with random hex digits. Every 'x' becomes a random
// nibble and every 'y' a nibble from the set 8, 9, a, b. Other characters are kept, so
// "xxxx-yyyy" yields something like "3f0c-9ab8".
func (g *Generator) GenerateUUID(format string) (string, error) {
	if format == "" {
		return "", ErrInvalidFormat
	}

	const hex = "0123456789abcdef"
	var b strings.Builder
	b.Grow(len(format))
	for _, c := range format {
		switch c {
		case 'x':
			b.WriteByte(hex[g.intN(16)])
		case 'y':
			b.WriteByte(hex[g.intN(16)&0x3|0x8])
		default:
			b.WriteRune(c)
		}
	}
	return b.String(), nil
}

// RandRange returns a uniform integer in [min, max] from the default generator.
func RandRange(min, max int) (int, error) {
	return defaultGenerator.RandRange(min, max)
}

// GenerateUUID fills format with random hex digits from the default generator.
func GenerateUUID(format string) (string, error) {
	return defaultGenerator.GenerateUUID(format)
}

// NewUUID returns a random RFC 4122 version 4 UUID.
func NewUUID() string {
	return uuid.NewString()
}
