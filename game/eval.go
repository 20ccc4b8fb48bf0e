package game

// EvaluateVP compares pid's victory points against the strongest opponent.
func EvaluateVP(gs *GameState, pid PlayerID) float64 {
	return gs.relativeScore(pid, func(p *PlayerState) float64 {
		return float64(VictoryPoints(p, gs.Cards))
	})
}

// EvaluateEconomy blends VP with the engine that produces future VP: the
// construction budget, free leaders and pending builds.
func EvaluateEconomy(gs *GameState, pid PlayerID) float64 {
	vpScore := EvaluateVP(gs, pid)
	costScore := gs.relativeScore(pid, func(p *PlayerState) float64 {
		return float64(p.AvailableCost())
	})
	leaderScore := gs.relativeScore(pid, func(p *PlayerState) float64 {
		return float64(p.FreeLeadersRaw())
	})
	pendingScore := gs.relativeScore(pid, func(p *PlayerState) float64 {
		vp := 0
		for _, id := range p.PendingBuilt {
			vp += gs.Cards[id].VP
		}
		return float64(vp)
	})

	// VP dominates, the rest breaks near-ties
	return (3*vpScore + costScore + leaderScore + pendingScore) / 6
}

// relativeScore measures metric for pid against the best opponent.
func (gs *GameState) relativeScore(pid PlayerID, metric func(p *PlayerState) float64) float64 {
	self := gs.Players[pid]
	if self == nil {
		return 0
	}
	best := 0.0
	for _, id := range gs.Order {
		if id == pid {
			continue
		}
		if v := metric(gs.Players[id]); v > best {
			best = v
		}
	}
	return normalize(metric(self), best)
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
