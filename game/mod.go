package game

// Evaluate scores a state between -1 and 1 from pid's point of view, positive
// meaning pid is ahead. Searchers use it at their rollout cutoff.
type Evaluate func(gs *GameState, pid PlayerID) float64
