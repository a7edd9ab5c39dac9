// Package username produces human-readable handles such as "BraveOtter"
// and finds one that is not yet taken.
package username

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
)

const (
	DefaultMaxLen        = 15
	DefaultAttempts      = 10
	DefaultFallbackTries = 100
)

var ErrExhausted = errors.New("no free username found")

// TakenFunc reports whether a candidate is already in use.
type TakenFunc func(ctx context.Context, candidate string) (bool, error)

var adjectives = []string{
	"Able", "Bold", "Brave", "Bright", "Calm", "Clever", "Cosmic", "Crisp",
	"Eager", "Fancy", "Gentle", "Happy", "Jolly", "Keen", "Kind", "Lively",
	"Lucky", "Mellow", "Mighty", "Nimble", "Quick", "Quiet", "Rapid", "Shiny",
	"Silent", "Smart", "Sunny", "Swift", "Tidy", "Witty", "Zesty", "Vivid",
}

var nouns = []string{
	"Badger", "Bear", "Comet", "Crane", "Dingo", "Eagle", "Falcon", "Fox",
	"Gecko", "Heron", "Koala", "Lemur", "Lynx", "Maple", "Moose", "Otter",
	"Panda", "Pine", "Quail", "Raven", "River", "Robin", "Seal", "Sparrow",
	"Tiger", "Walrus", "Willow", "Wolf", "Yak", "Zebra", "Orca", "Owl",
}

type Generator struct {
	MaxLen        int
	Attempts      int
	FallbackTries int

	intn func(n int) int
}

func NewGenerator() *Generator {
	return &Generator{
		MaxLen:        DefaultMaxLen,
		Attempts:      DefaultAttempts,
		FallbackTries: DefaultFallbackTries,
		intn:          rand.IntN,
	}
}

// NewSeeded returns a generator with a deterministic word sequence.
func NewSeeded(seed uint64) *Generator {
	g := NewGenerator()
	g.intn = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).IntN
	return g
}

// Candidate returns one random adjective+noun handle of at most MaxLen chars.
func (g *Generator) Candidate() string {
	name := adjectives[g.intn(len(adjectives))] + nouns[g.intn(len(nouns))]
	if limit := g.maxLen(); len(name) > limit {
		name = name[:limit]
	}
	return name
}

// Unique tries Attempts random candidates, then appends increasing numeric
// suffixes to a final base candidate, truncating it to stay within MaxLen.
func (g *Generator) Unique(ctx context.Context, taken TakenFunc) (string, error) {
	for i := 0; i < g.Attempts; i++ {
		c := g.Candidate()
		used, err := taken(ctx, c)
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		if !used {
			return c, nil
		}
	}

	base := g.Candidate()
	limit := g.maxLen()
	for n := 1; n <= g.FallbackTries; n++ {
		suffix := strconv.Itoa(n)
		if len(suffix) > limit {
			break
		}
		stem := base
		if len(stem)+len(suffix) > limit {
			stem = stem[:limit-len(suffix)]
		}
		c := stem + suffix
		used, err := taken(ctx, c)
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		if !used {
			return c, nil
		}
	}
	return "", ErrExhausted
}

func (g *Generator) maxLen() int {
	if g.MaxLen <= 0 {
		return DefaultMaxLen
	}
	return g.MaxLen
}
