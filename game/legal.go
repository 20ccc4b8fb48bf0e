package game

// LegalMoves enumerates every move the current player could make that Apply
// would accept. The order is deterministic. Demolish and face toggles are
// included only when withBoardEdits is set since they rarely help and blow up
// the branching factor.
func (gs *GameState) LegalMoves(withBoardEdits bool) []Move {
	pid := gs.CurrentPlayer()
	if pid == "" {
		return nil
	}
	p := gs.Players[pid]

	var moves []Move
	switch gs.Phase {
	case PolicyPhase:
		for steps := 1; steps <= p.FreeLeadersAvailable(); steps++ {
			moves = append(moves, Move{Type: InvestAndMove, Player: pid, Steps: steps})
		}
		moves = append(moves, Move{Type: EndPolicyTurn, Player: pid})

	case InventionPhase:
		if gs.InventRemaining[pid] > 0 {
			for _, t := range BuildTypes {
				if gs.Market.HasTechOfType(t) {
					moves = append(moves, Move{Type: InventType, Player: pid, BuildType: t})
				}
			}
		}
		if len(moves) == 0 {
			moves = append(moves, Move{Type: EndInventionTurn, Player: pid})
		}

	case BuildPhase:
		if remaining, budget := gs.BuildRemaining[pid], gs.BuildBudget[pid]; remaining > 0 {
			for _, c := range gs.Market.TechMarket {
				if c.Cost <= budget {
					moves = append(moves, Move{Type: BuildFromMarket, Player: pid, CardID: c.ID})
				}
			}
			for _, w := range gs.Market.WonderMarket {
				if w.Cost <= budget && !gs.HasWonderInEra(pid, w.Era) {
					moves = append(moves, Move{Type: BuildWonderFromMarket, Player: pid, CardID: w.ID})
				}
			}
			if withBoardEdits {
				for _, id := range append(append([]string{}, p.Built...), p.BuiltFaceDown...) {
					if !gs.Cards[id].IsWonder() {
						moves = append(moves, Move{Type: Demolish, Player: pid, CardID: id})
					}
				}
			}
		}
		moves = append(moves, Move{Type: EndBuildTurn, Player: pid})

	case CleanupPhase:
		if withBoardEdits {
			for _, id := range append(append([]string{}, p.Built...), p.BuiltFaceDown...) {
				if !gs.Cards[id].IsWonder() {
					moves = append(moves, Move{Type: ToggleFace, Player: pid, CardID: id})
				}
			}
		}
		moves = append(moves, Move{Type: FinalizeCleanup, Player: pid})
	}
	return moves
}
