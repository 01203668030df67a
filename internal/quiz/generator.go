package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// ErrInvalidConfig is returned for ranges that cannot produce a question.
var ErrInvalidConfig = errors.New("invalid quiz config")

// Rand is the random source a Generator draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Config controls operand and decoy ranges.
type Config struct {
	OperandMin int
	OperandMax int

	DecoyMin int
	DecoyMax int

	// OptionCount is the number of options shown, answer included.
	OptionCount int

	// MaxDraws caps the random decoy draws. Once reached, the remaining
	// slots are filled from unused decoy values in ascending order.
	MaxDraws int
}

// DefaultConfig returns the ranges of the Fun Math game: operands 1-10,
// decoys 1-20, four options.
func DefaultConfig() Config {
	return Config{
		OperandMin:  1,
		OperandMax:  10,
		DecoyMin:    1,
		DecoyMax:    20,
		OptionCount: 4,
		MaxDraws:    64,
	}
}

// Validate checks that every draw range is non-empty and that the decoy
// range can always supply enough distinct values.
func (c Config) Validate() error {
	switch {
	case c.OperandMin > c.OperandMax:
		return fmt.Errorf("%w: operand range [%d,%d] is empty", ErrInvalidConfig, c.OperandMin, c.OperandMax)
	case c.DecoyMin > c.DecoyMax:
		return fmt.Errorf("%w: decoy range [%d,%d] is empty", ErrInvalidConfig, c.DecoyMin, c.DecoyMax)
	case c.OptionCount < 2:
		return fmt.Errorf("%w: need at least 2 options, got %d", ErrInvalidConfig, c.OptionCount)
	case c.DecoyMax-c.DecoyMin+1 < c.OptionCount:
		return fmt.Errorf("%w: decoy range [%d,%d] too small for %d options",
			ErrInvalidConfig, c.DecoyMin, c.DecoyMax, c.OptionCount)
	case c.MaxDraws < 1:
		return fmt.Errorf("%w: max draws must be positive, got %d", ErrInvalidConfig, c.MaxDraws)
	}
	return nil
}

// Generator produces addition questions from an injected random source.
// It is safe for concurrent use.
type Generator struct {
	cfg Config

	mu  sync.Mutex
	rng Rand
}

// NewGenerator validates cfg and returns a Generator drawing from rng.
func NewGenerator(cfg Config, rng Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	return &Generator{cfg: cfg, rng: rng}, nil
}

// NewSeeded returns a default Generator over a PCG source seeded with seed.
func NewSeeded(seed uint64) *Generator {
	g, _ := NewGenerator(DefaultConfig(), rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate produces the next question.
func (g *Generator) Generate() Question {
	g.mu.Lock()
	defer g.mu.Unlock()
	return generate(g.cfg, g.rng)
}

// Generate produces a question with the default ranges from r.
func Generate(r Rand) Question {
	return generate(DefaultConfig(), r)
}

func generate(cfg Config, r Rand) Question {
	a := between(r, cfg.OperandMin, cfg.OperandMax)
	b := between(r, cfg.OperandMin, cfg.OperandMax)
	answer := a + b

	options := make([]int, 1, cfg.OptionCount)
	options[0] = answer
	seen := map[int]bool{answer: true}

	for draws := 0; len(options) < cfg.OptionCount && draws < cfg.MaxDraws; draws++ {
		v := between(r, cfg.DecoyMin, cfg.DecoyMax)
		if seen[v] {
			continue
		}
		seen[v] = true
		options = append(options, v)
	}

	for v := cfg.DecoyMin; len(options) < cfg.OptionCount && v <= cfg.DecoyMax; v++ {
		if !seen[v] {
			seen[v] = true
			options = append(options, v)
		}
	}

	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{A: a, B: b, Answer: answer, Options: options}
}

// between returns a uniform draw from [lo, hi].
func between(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
