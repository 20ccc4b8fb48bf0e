package game

import "sort"

// Ring is the circular policy track. Its length never changes during a game.
type Ring struct {
	Policies    []*Card
	StartMarker int
}

func (r *Ring) Len() int {
	return len(r.Policies)
}

// PolicyAt returns the policy card at slot i, or nil when i is off the ring.
func (r *Ring) PolicyAt(i int) *Card {
	if i < 0 || i >= len(r.Policies) {
		return nil
	}
	return r.Policies[i]
}

// occupiedBy returns the player whose token sits on slot, ignoring self.
func occupiedBy(players map[PlayerID]*PlayerState, slot int, self PlayerID) bool {
	for id, p := range players {
		if id != self && p.PolicyPos == slot {
			return true
		}
	}
	return false
}

// MoveAndCountSkips advances the player's token by steps landable slots.
// Slots held by other tokens are passed over and counted; the start marker
// then regresses by the number of skips. It returns the skip count.
func (r *Ring) MoveAndCountSkips(players map[PlayerID]*PlayerState, pid PlayerID, steps int) int {
	p := players[pid]
	n := r.Len()
	if p == nil || n == 0 {
		return 0
	}
	pos := p.PolicyPos
	skips := 0
	for s := 0; s < steps; s++ {
		for {
			pos = (pos + 1) % n
			if !occupiedBy(players, pos, pid) {
				break
			}
			skips++
		}
	}
	p.PolicyPos = pos
	if skips > 0 {
		r.StartMarker = ((r.StartMarker-skips%n)%n + n) % n
	}
	return skips
}

// Distance is the clockwise distance from the start marker to slot.
func (r *Ring) Distance(slot int) int {
	n := r.Len()
	if n == 0 {
		return 0
	}
	return ((slot-r.StartMarker)%n + n) % n
}

// TurnOrder sorts seats by clockwise distance from the start marker, closest
// first. Ties keep seating order.
func (r *Ring) TurnOrder(players map[PlayerID]*PlayerState, seating []PlayerID) []PlayerID {
	order := append([]PlayerID{}, seating...)
	sort.SliceStable(order, func(i, j int) bool {
		return r.Distance(players[order[i]].PolicyPos) < r.Distance(players[order[j]].PolicyPos)
	})
	return order
}

func (r *Ring) Copy() Ring {
	return Ring{
		Policies:    append([]*Card{}, r.Policies...),
		StartMarker: r.StartMarker,
	}
}
