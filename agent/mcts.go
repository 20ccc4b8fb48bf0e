package agent

import (
	"golang.org/x/exp/rand"

	"gears/game"
	"gears/searcher"
)

// searchState exposes a game state to the searcher. Board edits are left out
// of the move set.
type searchState struct {
	gs *game.GameState
}

func (s searchState) Player() string {
	return string(s.gs.CurrentPlayer())
}

func (s searchState) LegalMoves() []searcher.Move {
	legal := s.gs.LegalMoves(false)
	moves := make([]searcher.Move, len(legal))
	for i, m := range legal {
		moves[i] = m
	}
	return moves
}

func (s searchState) Play(move searcher.Move) searcher.State {
	next, _ := s.gs.Play(move.(game.Move))
	return searchState{gs: next}
}

func (s searchState) Hash() uint64 {
	return uint64(s.gs.Hash())
}

func (s searchState) Winner() string {
	result, ok := s.gs.Result()
	if !ok {
		return ""
	}
	return string(result.Winner)
}

func evaluateWith(evaluate game.Evaluate) searcher.Evaluate {
	return func(state searcher.State, player string) float64 {
		return evaluate(state.(searchState).gs, game.PlayerID(player))
	}
}

type MCTSOption func(a *MCTSAgent)

// WithSearch sets the search budget: goroutines, episodes per move and the
// rollout cutoff depth.
func WithSearch(goroutines, episodes, cutoff int) MCTSOption {
	return func(a *MCTSAgent) {
		if goroutines > 0 {
			a.goroutines = goroutines
		}
		if episodes > 0 {
			a.episodes = episodes
		}
		if cutoff > 0 {
			a.cutoff = cutoff
		}
	}
}

func WithEvaluation(evaluate game.Evaluate) MCTSOption {
	return func(a *MCTSAgent) {
		if evaluate != nil {
			a.evaluate = evaluate
		}
	}
}

// MCTSAgent picks every move with a Monte Carlo tree search whose rollouts
// are cut off and scored by an evaluation function. With one goroutine it is
// reproducible for a given random source.
type MCTSAgent struct {
	id         game.PlayerID
	goroutines int
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
}

func NewMCTSAgent(pid game.PlayerID, opts ...MCTSOption) *MCTSAgent {
	a := &MCTSAgent{
		id:         pid,
		goroutines: 1,
		episodes:   64,
		cutoff:     24,
		evaluate:   game.EvaluateEconomy,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *MCTSAgent) ID() game.PlayerID {
	return a.id
}

// act searches and plays moves while the agent holds the turn in phase.
func (a *MCTSAgent) act(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	phase := gs.Phase
	for gs.Phase == phase && gs.CurrentPlayer() == a.id {
		mcts := searcher.NewMCTS(a.goroutines,
			searcher.WithEpisodes(a.episodes),
			searcher.WithCutoff(a.cutoff),
			searcher.WithSeed(rng.Uint64()),
			searcher.WithEvaluationFn(evaluateWith(a.evaluate)),
		)
		move, ok := mcts.FindNextMove(searchState{gs: gs})
		if !ok {
			return nil
		}
		if err := moves.Apply(move.(game.Move)); err != nil {
			return endTurn(err)
		}
	}
	return nil
}

func (a *MCTSAgent) ActPolicy(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	return a.act(gs, moves, rng)
}

func (a *MCTSAgent) ActInvention(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	return a.act(gs, moves, rng)
}

func (a *MCTSAgent) ActBuild(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	return a.act(gs, moves, rng)
}

func (a *MCTSAgent) ActCleanup(gs *game.GameState, moves *game.MoveAPI, rng *rand.Rand) error {
	return endTurn(moves.FinalizeCleanup())
}
