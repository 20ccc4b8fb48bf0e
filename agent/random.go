package agent

import (
	"golang.org/x/exp/rand"

	"gears/game"
)

// RandomAgent is the baseline: coin-flip policy moves, random reveals and
// random affordable purchases with an occasional early stop.
type RandomAgent struct {
	id game.PlayerID
}

func NewRandomAgent(pid game.PlayerID) *RandomAgent {
	return &RandomAgent{id: pid}
}

func (a *RandomAgent) ID() game.PlayerID {
	return a.id
}

func (a *RandomAgent) ActPolicy(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	if rng.Float64() < 0.5 {
		if err := moves.InvestAndMove(1); err == nil {
			return nil
		}
	}
	return endTurn(moves.EndPolicyTurn())
}

func (a *RandomAgent) ActInvention(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	remaining := gs.InventRemaining[a.id]
	for i := 0; i < remaining; i++ {
		t := game.BuildTypes[rng.Intn(len(game.BuildTypes))]
		_ = moves.InventType(t)
	}
	if gs.Phase == game.InventionPhase && gs.CurrentPlayer() == a.id {
		return endTurn(moves.EndInventionTurn())
	}
	return nil
}

func (a *RandomAgent) ActBuild(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	for safety := 50; safety > 0 && gs.BuildRemaining[a.id] > 0; safety-- {
		tech, wonders := affordable(gs, a.id, gs.BuildBudget[a.id])
		if len(tech)+len(wonders) == 0 {
			break
		}
		if i := rng.Intn(len(tech) + len(wonders)); i < len(tech) {
			_ = moves.BuildFromMarket(tech[i].ID)
		} else {
			_ = moves.BuildWonderFromMarket(wonders[i-len(tech)].ID)
		}
		if rng.Float64() < 0.15 {
			break
		}
	}
	return endTurn(moves.EndBuildTurn())
}

func (a *RandomAgent) ActCleanup(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	return endTurn(moves.FinalizeCleanup())
}
