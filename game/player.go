package game

import "gears/utils"

type PlayerID string

// Resource is a gear/food pair.
type Resource struct {
	Gear int
	Food int
}

// Labor tracks labor requirement and reduction.
type Labor struct {
	Required  int
	Reduction int
}

// PlayerState is one seat's board, resources and leader bookkeeping.
// Built, BuiltFaceDown and PendingBuilt are disjoint lists of card ids.
type PlayerState struct {
	ID PlayerID

	Built         []string // face-up, producing
	BuiltFaceDown []string // flipped, printed VP still counts
	PendingBuilt  []string // bought this round, settled at cleanup

	Base       Resource // persistent production from face-up cards
	RoundDelta Resource // reset every round

	Labor           Labor
	RoundLaborDelta Labor

	TotalLeaders  int
	LockedLeaders int

	RoundBuildActionsBonus  int
	RoundInventActionsBonus int

	PolicyPos   int // ring slot, -1 until placed
	PolicySpent int // leaders committed to the ring this round
}

func newPlayerState(id PlayerID, totalLeaders int) *PlayerState {
	return &PlayerState{
		ID:            id,
		Built:         []string{},
		BuiltFaceDown: []string{},
		PendingBuilt:  []string{},
		Base:          Resource{Gear: 3, Food: 2},
		Labor:         Labor{Required: 3},
		TotalLeaders:  totalLeaders,
		LockedLeaders: 3,
		PolicyPos:     -1,
	}
}

func (p *PlayerState) Copy() *PlayerState {
	cp := *p
	cp.Built = utils.Clone(p.Built)
	cp.BuiltFaceDown = utils.Clone(p.BuiltFaceDown)
	cp.PendingBuilt = utils.Clone(p.PendingBuilt)
	return &cp
}

// AvailableCost is the joint gear/food construction budget, capped by the
// scarcer of the two.
func (p *PlayerState) AvailableCost() int {
	gear := p.Base.Gear + p.RoundDelta.Gear
	food := p.Base.Food + p.RoundDelta.Food
	return max(0, min(gear, food))
}

// FreeLeadersRaw counts leaders that are neither on the ring nor locked.
func (p *PlayerState) FreeLeadersRaw() int {
	return max(0, p.TotalLeaders-1-p.LockedLeaders)
}

// FreeLeadersAvailable subtracts this round's policy spending.
func (p *PlayerState) FreeLeadersAvailable() int {
	return max(0, p.FreeLeadersRaw()-p.PolicySpent)
}

func (p *PlayerState) BuildActionsThisRound() int {
	return p.FreeLeadersAvailable() + p.RoundBuildActionsBonus
}

func (p *PlayerState) InventActionsThisRound() int {
	return p.FreeLeadersAvailable() + p.RoundInventActionsBonus
}

// Owned returns every card id on the player's board, pending cards included.
func (p *PlayerState) Owned() []string {
	all := make([]string, 0, len(p.Built)+len(p.BuiltFaceDown)+len(p.PendingBuilt))
	all = append(all, p.Built...)
	all = append(all, p.BuiltFaceDown...)
	return append(all, p.PendingBuilt...)
}

func (p *PlayerState) resetRoundBuffers() {
	p.RoundDelta = Resource{}
	p.RoundLaborDelta = Labor{}
	p.RoundBuildActionsBonus = 0
	p.RoundInventActionsBonus = 0
}

// BoardSize counts the cards occupying board slots, face-down ones included.
func (p *PlayerState) BoardSize() int {
	return len(p.Built) + len(p.BuiltFaceDown)
}

// settlePending moves pending cards onto the board while slots remain.
func (p *PlayerState) settlePending(maxBuildSlots int) {
	for len(p.PendingBuilt) > 0 && p.BoardSize() < maxBuildSlots {
		p.Built = append(p.Built, p.PendingBuilt[0])
		p.PendingBuilt = p.PendingBuilt[1:]
	}
}

// RecomputePersistentProduction re-sums base resources and labor from the
// permanent effects of face-up cards. Face-down cards produce nothing.
func RecomputePersistentProduction(p *PlayerState, cards map[string]*Card) {
	p.Base = Resource{}
	p.Labor = Labor{}
	for _, id := range p.Built {
		ApplyCard(p, cards[id], false)
	}
	p.Base.Gear = max(0, p.Base.Gear)
	p.Base.Food = max(0, p.Base.Food)
	p.Labor.Required = max(0, p.Labor.Required)
	p.Labor.Reduction = max(0, p.Labor.Reduction)
}
