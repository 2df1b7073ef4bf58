// Package bot provides reference agents for the OFC engine: a random agent
// that plays any legal move and a greedy agent that scores each placement
// against a set of board-reading rules.
package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/rules"
)

// Agent kinds accepted by New.
const (
	Random = "random"
	Greedy = "greedy"
)

type factory func(rng *rand.Rand, logger *log.Logger, r *rules.Rules) game.Agent

var registry = map[string]factory{
	Random: func(rng *rand.Rand, logger *log.Logger, _ *rules.Rules) game.Agent {
		return NewRandBot(rng, logger)
	},
	Greedy: func(_ *rand.Rand, logger *log.Logger, r *rules.Rules) game.Agent {
		return NewGreedyBot(logger, r)
	},
}

// Names lists the available agent kinds.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New builds an agent by kind.
func New(kind string, rng *rand.Rand, logger *log.Logger, r *rules.Rules) (game.Agent, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", kind, Names())
	}
	return f(rng, logger.WithPrefix(kind), r), nil
}

// lockedRand serialises access to a shared rng. A timed-out agent call may
// still be running when the next one starts.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rng.Shuffle(n, swap)
}
