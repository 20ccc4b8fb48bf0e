package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"gears/agent"
	"gears/experiments/metrics"
	"gears/game"
)

// LocalEngine seats agents by their ids. Seats left without an agent make Run
// fail with ErrAgentMissing once they get the turn.
func LocalEngine(state *game.GameState, agents []agent.Agent, opts ...Option) (*Engine, error) {
	if state == nil {
		return nil, fmt.Errorf("no game state")
	}
	seated := make(map[game.PlayerID]agent.Agent, len(agents))
	for _, a := range agents {
		pid := a.ID()
		if state.Player(pid) == nil {
			return nil, fmt.Errorf("agent for unknown player %q", pid)
		}
		if _, ok := seated[pid]; ok {
			return nil, fmt.Errorf("two agents for player %q", pid)
		}
		seated[pid] = a
	}

	e := &Engine{
		State:  state,
		Agents: seated,
	}
	defaults(e)
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = game.NewRand(state.Seed)
	}
	return e, nil
}

// Run executes the game loop until the game is over. Each step hands the turn
// to the agent of the current player, which may issue any number of moves.
func (e *Engine) Run() (game.Result, metrics.GameMetric, error) {
	gs := e.State
	log.Info().Msgf("game %d starting with %d players", gs.Seed, len(gs.Order))

	e.collector.Start(gs)
	round, phase := gs.Round, gs.Phase
	enforcements := len(gs.Enforcements)
	var violation error
	gs.Observe(func(m game.Move, s *game.GameState) {
		e.collector.AddMove(m, s)
		if e.record {
			e.updates = append(e.updates, Update{
				Step:  s.MoveCount,
				Round: s.Round,
				Phase: s.Phase,
				Move:  m,
				Hash:  s.Hash(),
			})
		}
		for _, rec := range s.Enforcements[enforcements:] {
			if rec.Shortfall > 0 {
				log.Warn().Msgf("player %s is %d free leaders short in round %d %s", rec.Player, rec.Shortfall, rec.Round, rec.Phase)
			}
		}
		enforcements = len(s.Enforcements)
		if s.Phase != phase {
			log.Debug().Msgf("round %d: %s -> %s", s.Round, phase, s.Phase)
			phase = s.Phase
		}
		if s.Round != round {
			e.collector.EndRound(round, s)
			e.snapshots = append(e.snapshots, s.Snapshot())
			round = s.Round
		}
		if e.strict && violation == nil {
			if err := s.Validate(); err != nil {
				violation = fmt.Errorf("after %s by %s: %w", m, m.Player, err)
			}
		}
	})

	for step := 0; !gs.IsOver(); step++ {
		if step >= e.maxSteps {
			return e.abort(fmt.Errorf("%w: %d steps, stopped in round %d %s", ErrStepBudgetExceeded, step, gs.Round, gs.Phase))
		}

		pid := gs.CurrentPlayer()
		a, ok := e.Agents[pid]
		if !ok {
			return e.abort(fmt.Errorf("%w %q", ErrAgentMissing, pid))
		}

		before := gs.MoveCount
		stepRound, stepPhase := gs.Round, gs.Phase
		if err := e.dispatch(a, pid); err != nil {
			return e.abort(fmt.Errorf("player %s in round %d %s: %w", pid, stepRound, stepPhase, err))
		}
		if violation != nil {
			return e.abort(violation)
		}
		if gs.MoveCount == before {
			log.Debug().Msgf("player %s made no accepted move in round %d %s", pid, stepRound, stepPhase)
		}
		if gs.Round > gs.Rules.Rounds()+1 {
			return e.abort(fmt.Errorf("%w: round %d", ErrRoundOverflow, gs.Round))
		}
	}

	result, ok := gs.Result()
	if !ok {
		return e.abort(ErrNotFinished)
	}
	metric := e.collector.Complete(gs)
	log.Info().Msgf("game %d over after %d moves: winner %s with %d VP", gs.Seed, gs.MoveCount, result.Winner, result.Scores[result.Winner])
	return result, metric, nil
}

func (e *Engine) dispatch(a agent.Agent, pid game.PlayerID) error {
	gs := e.State
	moves := gs.Moves(pid)
	switch gs.Phase {
	case game.PolicyPhase:
		return a.ActPolicy(gs, moves, e.rng)
	case game.InventionPhase:
		return a.ActInvention(gs, moves, e.rng)
	case game.BuildPhase:
		return a.ActBuild(gs, moves, e.rng)
	case game.CleanupPhase:
		return a.ActCleanup(gs, moves, e.rng)
	default:
		return fmt.Errorf("no agent callback for phase %s", gs.Phase)
	}
}

func (e *Engine) abort(err error) (game.Result, metrics.GameMetric, error) {
	log.Error().Err(err).Msgf("game %d aborted", e.State.Seed)
	return game.Result{}, metrics.GameMetric{}, err
}
