package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gears/agent"
	"gears/experiments/metrics"
	"gears/game"
)

func newEngine(t *testing.T, seed uint64, players int, name string, opts ...Option) *Engine {
	t.Helper()
	gs, err := game.NewGame(players, game.WithSeed(seed))
	require.NoError(t, err)
	agents := make([]agent.Agent, 0, players)
	for _, pid := range gs.Order {
		a, err := agent.New(name, pid)
		require.NoError(t, err)
		agents = append(agents, a)
	}
	e, err := LocalEngine(gs, agents, opts...)
	require.NoError(t, err)
	return e
}

// stubAgent ends every turn and lets a test tamper with the state first.
type stubAgent struct {
	id     game.PlayerID
	err    error
	stall  bool
	tamper func(gs *game.GameState)
}

func (a *stubAgent) ID() game.PlayerID { return a.id }

func (a *stubAgent) act(gs *game.GameState, moves *game.MoveAPI) error {
	if a.err != nil {
		return a.err
	}
	if a.stall {
		return nil
	}
	if a.tamper != nil {
		a.tamper(gs)
	}
	legal := gs.LegalMoves(false)
	return moves.Apply(legal[len(legal)-1])
}

func (a *stubAgent) ActPolicy(gs *game.GameState, moves *game.MoveAPI, _ *rand.Rand) error {
	return a.act(gs, moves)
}

func (a *stubAgent) ActInvention(gs *game.GameState, moves *game.MoveAPI, _ *rand.Rand) error {
	return a.act(gs, moves)
}

func (a *stubAgent) ActBuild(gs *game.GameState, moves *game.MoveAPI, _ *rand.Rand) error {
	return a.act(gs, moves)
}

func (a *stubAgent) ActCleanup(gs *game.GameState, moves *game.MoveAPI, _ *rand.Rand) error {
	return a.act(gs, moves)
}

func stubEngine(t *testing.T, stubs ...*stubAgent) *Engine {
	t.Helper()
	gs, err := game.NewGame(2, game.WithSeed(3))
	require.NoError(t, err)
	agents := make([]agent.Agent, len(stubs))
	for i, s := range stubs {
		agents[i] = s
	}
	e, err := LocalEngine(gs, agents)
	require.NoError(t, err)
	return e
}

func TestLocalEngine(t *testing.T) {
	/*
		Cases:
		- agents for unknown players are refused
		- two agents for one seat are refused
	*/

	gs, err := game.NewGame(2, game.WithSeed(1))
	require.NoError(t, err)

	t.Run("unknown player", func(t *testing.T) {
		_, err := LocalEngine(gs, []agent.Agent{agent.NewRandomAgent("7")})
		require.Error(t, err)
	})

	t.Run("duplicate seat", func(t *testing.T) {
		_, err := LocalEngine(gs, []agent.Agent{agent.NewRandomAgent("0"), agent.NewHeuristicAgent("0")})
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	/*
		Cases:
		- random and heuristic games finish under strict validation with a ranked result
		- the collector sees every move and every round
		- the update log hashes match the final state
		- one snapshot per round
	*/

	for _, name := range []string{"random", "heuristic"} {
		t.Run(name, func(t *testing.T) {
			e := newEngine(t, 42, 4, name, WithStrictValidation(), WithUpdates(), WithCollector(metrics.NewCollector()))
			result, metric, err := e.Run()
			require.NoError(t, err)

			gs := e.State
			require.True(t, gs.IsOver(), "game over")
			require.Len(t, result.Ranking, 4, "everyone ranked")
			require.Equal(t, result.Ranking[0], result.Winner, "winner ranks first")
			require.Equal(t, gs.Rules.Rounds(), metric.Rounds, "rounds played")
			require.Len(t, metric.PerRound, gs.Rules.Rounds(), "round rows")
			require.Equal(t, gs.MoveCount, metric.Moves, "moves collected")

			updates := e.Updates()
			require.Len(t, updates, gs.MoveCount, "every move logged")
			require.Equal(t, gs.Hash(), updates[len(updates)-1].Hash, "last update matches final state")
			require.Len(t, e.Snapshots(), gs.Rules.Rounds(), "snapshot per round")
		})
	}

	t.Run("same seed same game", func(t *testing.T) {
		first := newEngine(t, 9, 3, "random")
		r1, _, err := first.Run()
		require.NoError(t, err)
		second := newEngine(t, 9, 3, "random")
		r2, _, err := second.Run()
		require.NoError(t, err)

		require.Equal(t, first.Snapshots(), second.Snapshots(), "round snapshots")
		require.Equal(t, r1.Scores, r2.Scores, "scores")
	})
}

func TestRunErrors(t *testing.T) {
	/*
		Cases:
		- a seat without an agent fails with ErrAgentMissing
		- an agent that never moves exhausts the step budget
		- a tiny budget is exceeded by a normal game
		- agent errors are wrapped, not swallowed
		- tampering that breaks leader conservation is caught by strict validation
		- a round counter pushed past the end fails with ErrRoundOverflow
	*/

	t.Run("agent missing", func(t *testing.T) {
		e := stubEngine(t, &stubAgent{id: "1"})
		_, _, err := e.Run()
		require.ErrorIs(t, err, ErrAgentMissing)
	})

	t.Run("stalling agent", func(t *testing.T) {
		e := stubEngine(t, &stubAgent{id: "0", stall: true}, &stubAgent{id: "1"})
		WithMaxSteps(50)(e)
		_, _, err := e.Run()
		require.ErrorIs(t, err, ErrStepBudgetExceeded)
	})

	t.Run("tiny budget", func(t *testing.T) {
		e := newEngine(t, 1, 2, "random", WithMaxSteps(5))
		_, _, err := e.Run()
		require.ErrorIs(t, err, ErrStepBudgetExceeded)
	})

	t.Run("agent error", func(t *testing.T) {
		boom := errors.New("boom")
		e := stubEngine(t, &stubAgent{id: "0", err: boom}, &stubAgent{id: "1"})
		_, _, err := e.Run()
		require.ErrorIs(t, err, boom)
	})

	t.Run("consistency violation", func(t *testing.T) {
		cheat := &stubAgent{id: "0", tamper: func(gs *game.GameState) {
			gs.Players["0"].TotalLeaders++
		}}
		e := stubEngine(t, cheat, &stubAgent{id: "1"})
		WithStrictValidation()(e)
		_, _, err := e.Run()
		var ce *game.ConsistencyError
		require.ErrorAs(t, err, &ce)
	})

	t.Run("round overflow", func(t *testing.T) {
		warp := &stubAgent{id: "0", tamper: func(gs *game.GameState) {
			gs.Round = gs.Rules.Rounds() + 2
		}}
		e := stubEngine(t, warp, &stubAgent{id: "1"})
		_, _, err := e.Run()
		require.ErrorIs(t, err, ErrRoundOverflow)
	})
}
