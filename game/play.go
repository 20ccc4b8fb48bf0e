package game

import "gears/utils"

// Apply validates m against the current state and applies it in place. A
// rejected move returns a *RejectedError and leaves the state untouched.
func (gs *GameState) Apply(m Move) error {
	if gs.Phase == GameOverPhase {
		return reject(m, ErrGameOver)
	}
	if m.Player == "" {
		m.Player = gs.CurrentPlayer()
	}
	if !allowed(gs.Phase, m.Type) {
		return reject(m, ErrWrongPhase)
	}
	if m.Player != gs.CurrentPlayer() {
		return reject(m, ErrNotYourTurn)
	}

	var err error
	switch m.Type {
	case InvestAndMove:
		err = gs.investAndMove(m)
	case EndPolicyTurn:
		gs.endTurn()
	case InventType:
		err = gs.inventType(m)
	case EndInventionTurn:
		err = gs.endInventionTurn(m)
	case BuildFromMarket:
		err = gs.buildFromMarket(m)
	case BuildWonderFromMarket:
		err = gs.buildWonderFromMarket(m)
	case Demolish:
		err = gs.demolish(m)
	case EndBuildTurn:
		gs.BuildRemaining[m.Player] = 0
		gs.endTurn()
	case ToggleFace:
		err = gs.toggleFace(m)
	case FinalizeCleanup:
		gs.settle(gs.Players[m.Player])
		gs.endTurn()
	}
	if err != nil {
		return reject(m, err)
	}

	gs.MoveCount++
	gs.LastMove = &m
	for _, fn := range gs.observers {
		fn(m, gs)
	}
	return nil
}

// Play is the pure form of Apply: it applies m to a copy and returns it. On
// rejection the receiver is returned with the error.
func (gs *GameState) Play(m Move) (*GameState, error) {
	next := gs.Copy()
	if err := next.Apply(m); err != nil {
		return gs, err
	}
	return next, nil
}

func (gs *GameState) investAndMove(m Move) error {
	p := gs.Players[m.Player]
	if m.Steps < 1 {
		return ErrInvalidSteps
	}
	if m.Steps > p.FreeLeadersAvailable() {
		return ErrNotEnoughLeaders
	}
	gs.Ring.MoveAndCountSkips(gs.Players, m.Player, m.Steps)
	p.PolicySpent += m.Steps
	gs.endTurn()
	return nil
}

func (gs *GameState) inventType(m Move) error {
	if gs.InventRemaining[m.Player] <= 0 {
		return ErrNoActionsLeft
	}
	if !gs.Market.HasTechOfType(m.BuildType) {
		return ErrNoMatchingCard
	}
	gs.Market.Reveal(m.BuildType)
	gs.InventRemaining[m.Player]--
	if gs.InventRemaining[m.Player] <= 0 {
		gs.endTurn()
	}
	return nil
}

// endInventionTurn is refused while actions remain, unless nothing is left to
// reveal.
func (gs *GameState) endInventionTurn(m Move) error {
	if gs.InventRemaining[m.Player] > 0 && gs.canReveal() {
		return ErrActionsRemaining
	}
	gs.InventRemaining[m.Player] = 0
	gs.endTurn()
	return nil
}

func (gs *GameState) canReveal() bool {
	for _, t := range BuildTypes {
		if gs.Market.HasTechOfType(t) {
			return true
		}
	}
	return false
}

func (gs *GameState) checkPurchase(pid PlayerID, c *Card) error {
	if gs.BuildRemaining[pid] <= 0 {
		return ErrNoActionsLeft
	}
	if c.Cost > gs.BuildBudget[pid] {
		return ErrInsufficientBudget
	}
	return nil
}

func (gs *GameState) buildFromMarket(m Move) error {
	i := indexOfID(gs.Market.TechMarket, m.CardID)
	if i < 0 {
		return ErrCardNotFound
	}
	if err := gs.checkPurchase(m.Player, gs.Market.TechMarket[i]); err != nil {
		return err
	}
	c, _ := gs.Market.TakeTech(m.CardID)
	gs.purchase(m.Player, c)
	return nil
}

func (gs *GameState) buildWonderFromMarket(m Move) error {
	i := indexOfID(gs.Market.WonderMarket, m.CardID)
	if i < 0 {
		return ErrCardNotFound
	}
	w := gs.Market.WonderMarket[i]
	if err := gs.checkPurchase(m.Player, w); err != nil {
		return err
	}
	if gs.HasWonderInEra(m.Player, w.Era) {
		return ErrDuplicateEraWonder
	}
	c, _ := gs.Market.TakeWonder(m.CardID)
	gs.purchase(m.Player, c)
	return nil
}

func (gs *GameState) purchase(pid PlayerID, c *Card) {
	p := gs.Players[pid]
	p.PendingBuilt = append(p.PendingBuilt, c.ID)
	gs.BuildRemaining[pid]--
	gs.BuildBudget[pid] -= c.Cost
}

func (gs *GameState) demolish(m Move) error {
	if gs.BuildRemaining[m.Player] <= 0 {
		return ErrNoActionsLeft
	}
	c, ok := gs.Cards[m.CardID]
	if !ok {
		return ErrCardNotFound
	}
	if c.IsWonder() {
		return ErrWonderLocked
	}
	p := gs.Players[m.Player]
	var removed bool
	if p.Built, removed = utils.Remove(p.Built, m.CardID); !removed {
		if p.BuiltFaceDown, removed = utils.Remove(p.BuiltFaceDown, m.CardID); !removed {
			return ErrCardNotFound
		}
	}
	gs.BuildRemaining[m.Player]--
	// free leaders are enforced at cleanup, not mid-build
	RecomputePersistentProduction(p, gs.Cards)
	return nil
}

func (gs *GameState) toggleFace(m Move) error {
	c, ok := gs.Cards[m.CardID]
	if !ok {
		return ErrCardNotFound
	}
	if c.IsWonder() {
		return ErrWonderLocked
	}
	p := gs.Players[m.Player]
	var moved bool
	if p.Built, moved = utils.Remove(p.Built, m.CardID); moved {
		p.BuiltFaceDown = append(p.BuiltFaceDown, m.CardID)
	} else if p.BuiltFaceDown, moved = utils.Remove(p.BuiltFaceDown, m.CardID); moved {
		p.Built = append(p.Built, m.CardID)
	} else {
		return ErrCardNotFound
	}
	RecomputePersistentProduction(p, gs.Cards)
	gs.enforce(p)
	return nil
}

// LegalMoveTypes returns the move types the current player may attempt now.
func (gs *GameState) LegalMoveTypes() []MoveType {
	if gs.Phase == GameOverPhase {
		return nil
	}
	return MoveTypes(gs.Phase)
}
