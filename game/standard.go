package game

import "gears/meta"

type StandardRules struct {
	NumRounds      int
	Leaders        int
	MinFree        int
	BuildSlots     int
	ExtraPolicies  int
	EraStartRounds [3]int // first round of era 1, 2 and 3
	RoundEffects   bool
}

// NewStandardRules starts eras at rounds 3, 6 and 9.
func NewStandardRules() *StandardRules {
	return &StandardRules{
		NumRounds:      meta.ROUNDS,
		Leaders:        meta.TOTAL_LEADERS,
		MinFree:        meta.MIN_FREE_LEADERS,
		BuildSlots:     meta.MAX_BUILD_SLOTS,
		ExtraPolicies:  meta.EXTRA_POLICY_SLOTS,
		EraStartRounds: [3]int{3, 6, 9},
	}
}

// NewEarlyEraRules starts eras at rounds 2, 5 and 8, as some revisions of the
// game did.
func NewEarlyEraRules() *StandardRules {
	r := NewStandardRules()
	r.EraStartRounds = [3]int{2, 5, 8}
	return r
}

func (sr *StandardRules) Rounds() int {
	return sr.NumRounds
}

func (sr *StandardRules) TotalLeaders() int {
	return sr.Leaders
}

func (sr *StandardRules) MinFreeLeaders() int {
	return sr.MinFree
}

func (sr *StandardRules) MaxBuildSlots() int {
	return sr.BuildSlots
}

func (sr *StandardRules) PolicySlots(numPlayers int) int {
	return numPlayers + sr.ExtraPolicies
}

func (sr *StandardRules) EraOfRound(round int) Era {
	switch {
	case round >= sr.EraStartRounds[2]:
		return Era3
	case round >= sr.EraStartRounds[1]:
		return Era2
	case round >= sr.EraStartRounds[0]:
		return Era1
	default:
		return NoEra
	}
}

func (sr *StandardRules) BoardRoundEffects() bool {
	return sr.RoundEffects
}
