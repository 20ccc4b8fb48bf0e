package game

// FlipPolicy picks the face-up card to flip when a player's free leaders drop
// below the minimum. It returns the index into p.Built, or false when nothing
// can be flipped.
type FlipPolicy func(p *PlayerState, cards map[string]*Card) (int, bool)

// FlipMostRecent pops the most recently built face-up card. It is greedy and
// not VP-aware, but it is deterministic.
func FlipMostRecent(p *PlayerState, _ map[string]*Card) (int, bool) {
	if len(p.Built) == 0 {
		return 0, false
	}
	return len(p.Built) - 1, true
}

// EnforceReport describes what one enforcement pass changed.
type EnforceReport struct {
	Flipped   []string // moved face-down, in flip order
	Overflow  []string // moved back to pending because the board was full
	Shortfall int      // free leaders still missing after flipping
}

// RecomputeLaborAndEnforceFreeLeaders derives LockedLeaders from labor and
// then repairs the free-leader minimum by flipping cards, one locked leader
// released per flip. Face-up cards beyond the board capacity go back to
// pending.
func RecomputeLaborAndEnforceFreeLeaders(p *PlayerState, cards map[string]*Card, rules Rules, flip FlipPolicy) EnforceReport {
	if flip == nil {
		flip = FlipMostRecent
	}
	var report EnforceReport

	required := max(0, p.Labor.Required+p.RoundLaborDelta.Required)
	reduced := max(0, p.Labor.Reduction+p.RoundLaborDelta.Reduction)
	p.LockedLeaders = max(0, required-reduced)

	minFree := rules.MinFreeLeaders()
	for p.FreeLeadersRaw() < minFree {
		i, ok := flip(p, cards)
		if !ok || i < 0 || i >= len(p.Built) {
			break
		}
		id := p.Built[i]
		p.Built = append(p.Built[:i], p.Built[i+1:]...)
		p.BuiltFaceDown = append(p.BuiltFaceDown, id)
		p.LockedLeaders = max(0, p.LockedLeaders-1)
		report.Flipped = append(report.Flipped, id)
	}
	report.Shortfall = max(0, minFree-p.FreeLeadersRaw())

	if excess := p.BoardSize() - rules.MaxBuildSlots(); excess > 0 {
		cut := max(0, len(p.Built)-excess)
		report.Overflow = append([]string{}, p.Built[cut:]...)
		p.Built = p.Built[:cut]
		p.PendingBuilt = append(p.PendingBuilt, report.Overflow...)
	}
	return report
}
