package searcher

import "math"

// Move is an opaque move value. It must be comparable since moves key the
// search policy.
type Move any

// State is what a game exposes to be searched. Play must not modify the
// receiver.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() uint64
	// Winner returns the winning player once the game is over and "" before.
	Winner() string
}

// Evaluate scores a non-terminal state between -1 and 1 from player's point of
// view.
type Evaluate func(state State, player string) float64

// Hyperparameters for MCTS

const C_SQUARED = 2.0 // exploration constant

const WIN = 1.0
const LOSS = 0.0

// MaxCutoff lets rollouts run to the end of the game.
const MaxCutoff = math.MaxInt

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

// rewarder maps a finished playout to per-player rewards.
func rewarder(winner string) func(player string) float64 {
	return func(player string) float64 {
		if player == winner {
			return WIN
		}
		return LOSS
	}
}

// evaluator maps a cut-off playout to per-player rewards in [LOSS, WIN].
func evaluator(state State, evaluate Evaluate) func(player string) float64 {
	return func(player string) float64 {
		score := max(-1, min(1, evaluate(state, player)))
		return LOSS + (WIN-LOSS)*(score+1)/2
	}
}
