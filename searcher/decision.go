package searcher

import (
	"math"
	"sync"
)

// decision is a search tree node. Its statistics are kept from the point of
// view of mover, the player whose move led here, so a parent can pick the
// child that is best for itself.
type decision struct {
	sync.RWMutex
	parent     *decision
	mover      string
	player     string // to move at this node
	hash       uint64
	unexplored []Move
	explored   []Move
	children   []*decision
	rewards    float64
	visits     int
}

func newDecision(parent *decision, mover string, state State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		mover:      mover,
		player:     state.Player(),
		hash:       state.Hash(),
		unexplored: moves,
		explored:   make([]Move, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level. It returns the child and its state, and
// whether the caller should keep descending (false once a node was added or a
// terminal node reached).
func (d *decision) SelectOrExpand(state State) (*decision, State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		next := state.Play(move)
		child := newDecision(d, d.player, next)
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) pickChild() int {
	normalizer := C_SQUARED * math.Log(float64(max(1, d.visits)))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.score(normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss adds a virtual loss so concurrent descents spread out.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += LOSS
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= LOSS
	d.visits--
}

func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

// Backup records a playout result and returns the parent.
func (d *decision) Backup(reward func(player string) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root nodes carry a virtual loss
		d.reverseLoss()
	}
	d.rewards += reward(d.mover)
	d.visits++

	return d.parent
}

func (d *decision) Visits() int {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy returns each explored move's share of the visits.
func (d *decision) Policy() map[Move]float64 {
	d.RLock()
	defer d.RUnlock()

	total := 0
	visits := make([]int, len(d.children))
	for i, child := range d.children {
		visits[i] = child.Visits()
		total += visits[i]
	}
	policy := make(map[Move]float64, len(d.children))
	for i, move := range d.explored {
		if total > 0 {
			policy[move] = float64(visits[i]) / float64(total)
		}
	}
	return policy
}

// bestMove is the most visited move; ties keep the earlier move.
func (d *decision) bestMove() (Move, bool) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return nil, false
	}
	bestIndex := 0
	maxVisits := d.children[0].Visits()
	for i, child := range d.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.explored[bestIndex], true
}
