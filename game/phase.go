package game

type Phase int

const (
	PolicyPhase Phase = iota
	InventionPhase
	BuildPhase
	CleanupPhase
	GameOverPhase
)

var phaseNames = map[Phase]string{
	PolicyPhase:    "policy",
	InventionPhase: "invention",
	BuildPhase:     "build",
	CleanupPhase:   "cleanup",
	GameOverPhase:  "gameover",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// transitions is the phase graph. Cleanup loops back to policy until the last
// round is done, at which point the game moves to GameOverPhase instead.
var transitions = map[Phase]Phase{
	PolicyPhase:    InventionPhase,
	InventionPhase: BuildPhase,
	BuildPhase:     CleanupPhase,
	CleanupPhase:   PolicyPhase,
}

// vocabulary lists the moves each phase accepts.
var vocabulary = map[Phase][]MoveType{
	PolicyPhase:    {InvestAndMove, EndPolicyTurn},
	InventionPhase: {InventType, EndInventionTurn},
	BuildPhase:     {BuildFromMarket, BuildWonderFromMarket, Demolish, EndBuildTurn},
	CleanupPhase:   {ToggleFace, FinalizeCleanup},
}

type phaseHooks struct {
	onBegin func(gs *GameState)
	onEnd   func(gs *GameState)
}

var hooks = map[Phase]phaseHooks{
	PolicyPhase:    {onBegin: (*GameState).beginPolicy, onEnd: (*GameState).endPolicy},
	InventionPhase: {onBegin: (*GameState).beginInvention},
	BuildPhase:     {onBegin: (*GameState).beginBuild},
	CleanupPhase:   {onBegin: (*GameState).beginCleanup, onEnd: (*GameState).endCleanup},
}

// MoveTypes returns the vocabulary of phase p.
func MoveTypes(p Phase) []MoveType {
	return append([]MoveType{}, vocabulary[p]...)
}

func allowed(p Phase, t MoveType) bool {
	for _, v := range vocabulary[p] {
		if v == t {
			return true
		}
	}
	return false
}

func (gs *GameState) beginPolicy() {
	for _, pid := range gs.Order {
		gs.Players[pid].PolicySpent = 0
	}
}

// endPolicy applies round-scoped effects and fixes this round's turn order.
func (gs *GameState) endPolicy() {
	for _, pid := range gs.Order {
		p := gs.Players[pid]
		p.resetRoundBuffers()
		ApplyCard(p, gs.Ring.PolicyAt(p.PolicyPos), true)
		if gs.Rules.BoardRoundEffects() {
			for _, id := range p.Built {
				ApplyCard(p, gs.Cards[id], true)
			}
		}
	}
	gs.RoundOrder = gs.Ring.TurnOrder(gs.Players, gs.Order)
}

func (gs *GameState) beginInvention() {
	for _, pid := range gs.Order {
		gs.InventRemaining[pid] = gs.Players[pid].InventActionsThisRound()
	}
}

func (gs *GameState) beginBuild() {
	for _, pid := range gs.Order {
		p := gs.Players[pid]
		gs.BuildRemaining[pid] = p.BuildActionsThisRound()
		gs.BuildBudget[pid] = p.AvailableCost()
	}
}

func (gs *GameState) beginCleanup() {
	for _, pid := range gs.Order {
		gs.settle(gs.Players[pid])
	}
}

func (gs *GameState) endCleanup() {
	for _, pid := range gs.Order {
		p := gs.Players[pid]
		p.settlePending(gs.Rules.MaxBuildSlots())
		RecomputePersistentProduction(p, gs.Cards)
	}

	prevEra := gs.Rules.EraOfRound(gs.Round)
	nextEra := gs.Rules.EraOfRound(gs.Round + 1)
	gs.Market.Rotate(prevEra, nextEra)
	gs.Round++

	for _, pid := range gs.Order {
		gs.Players[pid].resetRoundBuffers()
		gs.InventRemaining[pid] = 0
		gs.BuildRemaining[pid] = 0
		gs.BuildBudget[pid] = 0
	}
	for _, pid := range gs.Order {
		gs.enforce(gs.Players[pid])
	}
}

// settle flushes pending builds and re-runs production and labor upkeep.
func (gs *GameState) settle(p *PlayerState) {
	p.settlePending(gs.Rules.MaxBuildSlots())
	RecomputePersistentProduction(p, gs.Cards)
	gs.enforce(p)
}

func (gs *GameState) enforce(p *PlayerState) EnforceReport {
	report := RecomputeLaborAndEnforceFreeLeaders(p, gs.Cards, gs.Rules, gs.flip)
	if len(report.Flipped) > 0 || len(report.Overflow) > 0 {
		// flipped and overflowed cards stop producing
		RecomputePersistentProduction(p, gs.Cards)
	}
	gs.Shortfall[p.ID] = report.Shortfall
	if len(report.Flipped) > 0 || len(report.Overflow) > 0 || report.Shortfall > 0 {
		gs.Enforcements = append(gs.Enforcements, EnforcementRecord{
			Round:         gs.Round,
			Phase:         gs.Phase,
			Player:        p.ID,
			EnforceReport: report,
		})
	}
	return report
}

// endTurn pops the head of the phase queue and advances the phase once
// every player in the round order has passed.
func (gs *GameState) endTurn() {
	if len(gs.Queue) > 0 {
		gs.Queue = gs.Queue[1:]
	}
	if len(gs.Queue) > 0 {
		return
	}
	if h := hooks[gs.Phase]; h.onEnd != nil {
		h.onEnd(gs)
	}
	next := transitions[gs.Phase]
	if gs.Phase == CleanupPhase && gs.Round > gs.Rules.Rounds() {
		gs.Phase = GameOverPhase
		result := Score(gs)
		gs.Outcome = &result
		return
	}
	gs.enterPhase(next)
}

func (gs *GameState) enterPhase(p Phase) {
	gs.Phase = p
	if h := hooks[p]; h.onBegin != nil {
		h.onBegin(gs)
	}
	gs.Queue = append([]PlayerID{}, gs.RoundOrder...)
}
