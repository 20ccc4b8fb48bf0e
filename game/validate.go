package game

import "fmt"

// Validate checks the structural invariants every reachable state satisfies:
// each card sits in exactly one place, leaders are conserved, nobody holds two
// wonders of one era and boards respect the slot limit. A failure is an engine
// bug and is reported as *ConsistencyError.
func (gs *GameState) Validate() error {
	var violations []string
	where := make(map[string]string)
	place := func(id, loc string) {
		if prev, ok := where[id]; ok {
			violations = append(violations, fmt.Sprintf("card %s in both %s and %s", id, prev, loc))
			return
		}
		where[id] = loc
	}
	placeCards := func(cs []*Card, loc string) {
		for _, c := range cs {
			place(c.ID, loc)
		}
	}

	placeCards(gs.Market.TechDeck, "tech deck")
	placeCards(gs.Market.TechFaceUp, "tech face-up")
	placeCards(gs.Market.TechMarket, "tech market")
	placeCards(gs.Market.WonderMarket, "wonder market")
	for _, era := range Eras {
		placeCards(gs.Market.WondersByEra[era], fmt.Sprintf("era %d pool", era))
	}

	for _, pid := range gs.Order {
		p := gs.Players[pid]
		for _, id := range p.Built {
			place(id, fmt.Sprintf("player %s built", pid))
		}
		for _, id := range p.BuiltFaceDown {
			place(id, fmt.Sprintf("player %s face-down", pid))
		}
		for _, id := range p.PendingBuilt {
			place(id, fmt.Sprintf("player %s pending", pid))
		}

		if p.TotalLeaders != gs.Rules.TotalLeaders() {
			violations = append(violations, fmt.Sprintf("player %s has %d leaders, want %d", pid, p.TotalLeaders, gs.Rules.TotalLeaders()))
		}
		// more locked than available is the surfaced shortfall state, not a leak
		overLocked := p.LockedLeaders > p.TotalLeaders-1
		if p.LockedLeaders < 0 || (overLocked && gs.Shortfall[pid] == 0 && gs.Rules.MinFreeLeaders() > 0) {
			violations = append(violations, fmt.Sprintf("player %s leaders do not add up: locked %d free %d total %d shortfall %d", pid, p.LockedLeaders, p.FreeLeadersRaw(), p.TotalLeaders, gs.Shortfall[pid]))
		}
		if n := len(p.Built) + len(p.BuiltFaceDown); n > gs.Rules.MaxBuildSlots() {
			violations = append(violations, fmt.Sprintf("player %s has %d cards on a %d slot board", pid, n, gs.Rules.MaxBuildSlots()))
		}

		eras := make(map[Era]int)
		for _, id := range p.Owned() {
			c, ok := gs.Cards[id]
			if !ok {
				violations = append(violations, fmt.Sprintf("player %s owns unknown card %s", pid, id))
				continue
			}
			if c.IsWonder() {
				eras[c.Era]++
			}
		}
		for era, n := range eras {
			if n > 1 {
				violations = append(violations, fmt.Sprintf("player %s holds %d wonders of era %d", pid, n, era))
			}
		}

		if p.PolicyPos < 0 || p.PolicyPos >= gs.Ring.Len() {
			violations = append(violations, fmt.Sprintf("player %s off the ring at %d", pid, p.PolicyPos))
		}
	}

	slots := make(map[int]PlayerID)
	for _, pid := range gs.Order {
		pos := gs.Players[pid].PolicyPos
		if other, ok := slots[pos]; ok {
			violations = append(violations, fmt.Sprintf("players %s and %s share ring slot %d", other, pid, pos))
		}
		slots[pos] = pid
	}

	if len(violations) > 0 {
		return &ConsistencyError{Violations: violations}
	}
	return nil
}
