package agent

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"gears/game"
)

// Agent makes decisions for one seat. The harness calls the callback of the
// current phase whenever the agent holds the turn; the agent issues zero or
// more moves through the move API and must eventually end its turn. Rejected
// moves leave the state unchanged, so agents may simply try again.
type Agent interface {
	ID() game.PlayerID
	ActPolicy(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error
	ActInvention(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error
	ActBuild(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error
	ActCleanup(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error
}

// Factory builds an agent for a seat.
type Factory func(pid game.PlayerID) Agent

var registry = map[string]Factory{
	"random":    func(pid game.PlayerID) Agent { return NewRandomAgent(pid) },
	"heuristic": func(pid game.PlayerID) Agent { return NewHeuristicAgent(pid) },
	"mcts":      func(pid game.PlayerID) Agent { return NewMCTSAgent(pid) },
}

// New returns the agent registered under name.
func New(name string, pid game.PlayerID) (Agent, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q (known: %v)", name, Names())
	}
	return factory(pid), nil
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q (known: %v)", name, Names())
	}
	return factory, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// endTurn swallows rejections of a closing move: the harness will call the
// agent again if the turn did not end.
func endTurn(err error) error {
	if err != nil && !game.IsRejected(err) {
		return err
	}
	return nil
}

// affordable returns the market cards pid could pay for with budget.
func affordable(gs *game.GameState, pid game.PlayerID, budget int) (tech, wonders []*game.Card) {
	for _, c := range gs.Market.TechMarket {
		if c.Cost <= budget {
			tech = append(tech, c)
		}
	}
	for _, w := range gs.Market.WonderMarket {
		if w.Cost <= budget && !gs.HasWonderInEra(pid, w.Era) {
			wonders = append(wonders, w)
		}
	}
	return tech, wonders
}
