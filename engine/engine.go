package engine

import (
	"errors"

	"golang.org/x/exp/rand"

	"gears/agent"
	"gears/experiments/metrics"
	"gears/game"
	"gears/meta"
)

var (
	ErrStepBudgetExceeded = errors.New("step budget exceeded")
	ErrAgentMissing       = errors.New("no agent for player")
	ErrRoundOverflow      = errors.New("round counter past the last round")
	ErrNotFinished        = errors.New("game did not finish")
)

// Update is one accepted move and the fingerprint of the state it produced.
type Update struct {
	Step  int
	Round int
	Phase game.Phase
	Move  game.Move
	Hash  game.StateHash
}

// Engine drives one game to completion. It may be run once.
type Engine struct {
	State  *game.GameState
	Agents map[game.PlayerID]agent.Agent

	rng       *rand.Rand
	maxSteps  int
	strict    bool
	record    bool
	collector metrics.Collector

	updates   []Update
	snapshots []game.Snapshot
}

type Option func(e *Engine)

// WithRand shares rng with the agents. Defaults to a source seeded with the
// game seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithMaxSteps bounds the number of agent calls.
func WithMaxSteps(steps int) Option {
	return func(e *Engine) {
		e.maxSteps = steps
	}
}

// WithStrictValidation checks state consistency after every accepted move and
// aborts on the first violation.
func WithStrictValidation() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// WithUpdates keeps a log of every accepted move.
func WithUpdates() Option {
	return func(e *Engine) {
		e.record = true
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		if c != nil {
			e.collector = c
		}
	}
}

func defaults(e *Engine) {
	e.maxSteps = meta.MAX_STEPS
	e.collector = metrics.NewDummyCollector()
}

// Updates returns the move log recorded with WithUpdates.
func (e *Engine) Updates() []Update {
	return e.updates
}

// Snapshots returns one snapshot per completed round.
func (e *Engine) Snapshots() []game.Snapshot {
	return e.snapshots
}
