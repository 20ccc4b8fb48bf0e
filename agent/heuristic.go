package agent

import (
	"sort"

	"golang.org/x/exp/rand"

	"gears/game"
)

// HeuristicAgent spends a random share of its leaders on the ring, reveals
// the build types the market lacks, and buys by VP per cost, wonders first.
type HeuristicAgent struct {
	id game.PlayerID
}

func NewHeuristicAgent(pid game.PlayerID) *HeuristicAgent {
	return &HeuristicAgent{id: pid}
}

func (a *HeuristicAgent) ID() game.PlayerID {
	return a.id
}

func (a *HeuristicAgent) ActPolicy(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	free := gs.Players[a.id].FreeLeadersAvailable()
	if free <= 0 {
		return endTurn(moves.EndPolicyTurn())
	}
	if err := moves.InvestAndMove(1 + rng.Intn(free)); err != nil {
		return endTurn(moves.EndPolicyTurn())
	}
	return nil
}

func (a *HeuristicAgent) ActInvention(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	for gs.Phase == game.InventionPhase && gs.CurrentPlayer() == a.id && gs.InventRemaining[a.id] > 0 {
		revealed := false
		for _, t := range a.scarcest(gs, rng) {
			if gs.Market.HasTechOfType(t) {
				revealed = moves.InventType(t) == nil
				break
			}
		}
		if !revealed {
			break
		}
	}
	if gs.Phase == game.InventionPhase && gs.CurrentPlayer() == a.id {
		return endTurn(moves.EndInventionTurn())
	}
	return nil
}

// scarcest orders build types by how few of them sit in the market. Equal
// counts are ordered randomly.
func (a *HeuristicAgent) scarcest(gs *game.GameState, rng *rand.Rand) []game.BuildType {
	counts := make(map[game.BuildType]int, len(game.BuildTypes))
	for _, c := range gs.Market.TechMarket {
		counts[c.BuildType]++
	}
	types := append([]game.BuildType{}, game.BuildTypes...)
	rng.Shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})
	sort.SliceStable(types, func(i, j int) bool {
		return counts[types[i]] < counts[types[j]]
	})
	return types
}

func (a *HeuristicAgent) ActBuild(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	for gs.BuildRemaining[a.id] > 0 {
		tech, wonders := affordable(gs, a.id, gs.BuildBudget[a.id])
		var err error
		switch {
		case len(wonders) > 0:
			sortByValue(wonders)
			err = moves.BuildWonderFromMarket(wonders[0].ID)
		case len(tech) > 0:
			sortByValue(tech)
			err = moves.BuildFromMarket(tech[0].ID)
		default:
			return endTurn(moves.EndBuildTurn())
		}
		if err != nil {
			break
		}
	}
	return endTurn(moves.EndBuildTurn())
}

// sortByValue puts the best VP per cost first, then the cheaper card, then
// the lower id.
func sortByValue(cards []*game.Card) {
	ratio := func(c *game.Card) float64 {
		return float64(c.VP) / float64(max(1, c.Cost))
	}
	sort.SliceStable(cards, func(i, j int) bool {
		ri, rj := ratio(cards[i]), ratio(cards[j])
		if ri != rj {
			return ri > rj
		}
		if cards[i].Cost != cards[j].Cost {
			return cards[i].Cost < cards[j].Cost
		}
		return cards[i].ID < cards[j].ID
	})
}

func (a *HeuristicAgent) ActCleanup(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	return endTurn(moves.FinalizeCleanup())
}
