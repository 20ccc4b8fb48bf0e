package game

import (
	"sort"

	"gears/utils"
)

// Result is the final standing of a game.
type Result struct {
	Scores  map[PlayerID]int
	Ranking []PlayerID // best first, ties broken by final turn order
	Winner  PlayerID
	Tied    []PlayerID // every player sharing the top score, in tie-break order
}

func (r Result) Copy() Result {
	scores := make(map[PlayerID]int, len(r.Scores))
	for k, v := range r.Scores {
		scores[k] = v
	}
	return Result{
		Scores:  scores,
		Ranking: utils.Clone(r.Ranking),
		Winner:  r.Winner,
		Tied:    utils.Clone(r.Tied),
	}
}

// VictoryPoints sums printed VP over built and face-down cards. Pending cards
// do not count.
func VictoryPoints(p *PlayerState, cards map[string]*Card) int {
	vp := 0
	for _, id := range p.Built {
		if c := cards[id]; c != nil {
			vp += c.VP
		}
	}
	for _, id := range p.BuiltFaceDown {
		if c := cards[id]; c != nil {
			vp += c.VP
		}
	}
	return vp
}

// Score ranks players by VP. Equal scores go to whoever comes first in the
// last computed round order, i.e. closest to the start marker.
func Score(gs *GameState) Result {
	scores := make(map[PlayerID]int, len(gs.Players))
	for _, pid := range gs.Order {
		scores[pid] = VictoryPoints(gs.Players[pid], gs.Cards)
	}

	ranking := utils.Clone(gs.RoundOrder)
	sort.SliceStable(ranking, func(i, j int) bool {
		return scores[ranking[i]] > scores[ranking[j]]
	})

	result := Result{Scores: scores, Ranking: ranking}
	if len(ranking) == 0 {
		return result
	}
	result.Winner = ranking[0]
	for _, pid := range ranking {
		if scores[pid] == scores[result.Winner] {
			result.Tied = append(result.Tied, pid)
		}
	}
	return result
}
