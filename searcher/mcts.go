package searcher

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS is a tree-parallel UCT search with virtual loss. Rollouts pick random
// legal moves and are scored by the evaluation function once they hit the
// cutoff depth.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       uint64
	evaluate   Evaluate
	root       *decision
	metrics    MetricsCollector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

// WithSeed seeds the rollout policies. A single goroutine with a fixed episode
// count then searches deterministically.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithEvaluationFn(evaluate Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(1, goroutines),
		cutoff:     MaxCutoff,
		evaluate:   func(State, string) float64 { return 0 },
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit share of each root move.
func (m *MCTS) Simulate(state State) (map[Move]float64, SearchMetrics) {
	m.root = newDecision(nil, "", state)

	m.metrics.Start()
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

// FindNextMove returns the most visited root move, or false when state has
// no legal moves.
func (m *MCTS) FindNextMove(state State) (Move, bool) {
	if len(state.LegalMoves()) == 1 {
		return state.LegalMoves()[0], true
	}
	_, metric := m.Simulate(state)
	log.Debug().Msgf("searched %d episodes (%d full playouts) in %v", metric.Episodes, metric.FullPlayouts, metric.Duration)
	return m.root.bestMove()
}

func (m *MCTS) iterate(state State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for range task {
				m.metrics.AddEpisode(m.simulate(state, rng))
			}
		}(rand.New(rand.NewSource(m.seed + uint64(i))))
	}

	wg.Wait()
}

func (m *MCTS) countdown(state State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.metrics.AddEpisode(m.simulate(state, rng))
				}
			}
		}(rand.New(rand.NewSource(m.seed + uint64(i))))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// simulate runs one episode and reports whether the playout reached the end.
func (m *MCTS) simulate(state State, rng *rand.Rand) bool {
	newNode, newState := selectThenExpand(m.root, state)
	reward, full := rollout(newState, m.cutoff, m.evaluate, rng)
	backup(newNode, reward)
	return full
}

func selectThenExpand(root *decision, state State) (*decision, State) {
	node, state, descend := root.SelectOrExpand(state)
	for descend {
		node, state, descend = node.SelectOrExpand(state)
	}
	return node, state
}

func rollout(state State, cutoff int, evaluate Evaluate, rng *rand.Rand) (func(string) float64, bool) {
	depth := 0
	moves := state.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && depth < cutoff {
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		return rewarder(state.Winner()), true
	}
	return evaluator(state, evaluate), false
}

func backup(newNode *decision, reward func(string) float64) {
	node := newNode
	for node != nil {
		node = node.Backup(reward)
	}
}
