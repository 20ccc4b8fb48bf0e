package experiments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"gears/agent"
	"gears/engine"
	"gears/experiments/metrics"
	"gears/game"
)

// AgentConfig describes the agent of one seat. Search parameters only apply
// to the mcts agent.
type AgentConfig struct {
	Name       string `yaml:"name"`
	Goroutines int    `yaml:"goroutines"`
	Episodes   int    `yaml:"episodes"`
	Cutoff     int    `yaml:"cutoff"`
}

func (c AgentConfig) build(pid game.PlayerID) (agent.Agent, error) {
	if c.Name == "mcts" && (c.Goroutines > 0 || c.Episodes > 0 || c.Cutoff > 0) {
		return agent.NewMCTSAgent(pid, agent.WithSearch(c.Goroutines, c.Episodes, c.Cutoff)), nil
	}
	return agent.New(c.Name, pid)
}

type BatchConfig struct {
	Games    int
	SeedBase uint64
	Players  int
	Seats    []AgentConfig // cycled over the seating order, random agents when empty
	Workers  int           // games run concurrently, at least 1
	Rules    game.Rules
	Catalog  *game.Catalog
	Strict   bool
	MaxSteps int
}

func (cfg BatchConfig) seat(i int) AgentConfig {
	if len(cfg.Seats) == 0 {
		return AgentConfig{Name: "random"}
	}
	return cfg.Seats[i%len(cfg.Seats)]
}

// GameRun is the outcome of one seeded game.
type GameRun struct {
	Metric    metrics.GameMetric
	Result    game.Result
	Snapshots []game.Snapshot
}

// RunGame plays one game. The setup shuffles and all agents draw from a
// single source seeded with seed, so equal seeds give equal games.
func RunGame(cfg BatchConfig, seed uint64) (GameRun, error) {
	rng := game.NewRand(seed)
	gs, err := game.NewGame(cfg.Players,
		game.WithSeed(seed),
		game.WithRand(rng),
		game.WithRules(cfg.Rules),
		game.WithCatalog(cfg.Catalog),
	)
	if err != nil {
		return GameRun{}, err
	}

	agents := make([]agent.Agent, 0, len(gs.Order))
	for i, pid := range gs.Order {
		a, err := cfg.seat(i).build(pid)
		if err != nil {
			return GameRun{}, err
		}
		agents = append(agents, a)
	}

	opts := []engine.Option{engine.WithRand(rng), engine.WithCollector(metrics.NewCollector())}
	if cfg.Strict {
		opts = append(opts, engine.WithStrictValidation())
	}
	if cfg.MaxSteps > 0 {
		opts = append(opts, engine.WithMaxSteps(cfg.MaxSteps))
	}
	e, err := engine.LocalEngine(gs, agents, opts...)
	if err != nil {
		return GameRun{}, err
	}

	result, metric, err := e.Run()
	if err != nil {
		return GameRun{}, err
	}
	return GameRun{Metric: metric, Result: result, Snapshots: e.Snapshots()}, nil
}

// RunBatch plays cfg.Games games with seeds SeedBase, SeedBase+1, ... The
// returned metrics are in seed order whatever the worker count. The first
// failing game aborts the batch.
func RunBatch(cfg BatchConfig) ([]metrics.GameMetric, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("batch needs at least one game, got %d", cfg.Games)
	}
	workers := max(1, min(cfg.Workers, cfg.Games))
	log.Info().Msgf("starting batch of %d games with %d players from seed %d...", cfg.Games, cfg.Players, cfg.SeedBase)

	games := make([]metrics.GameMetric, cfg.Games)
	errs := make([]error, cfg.Games)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seed := cfg.SeedBase + uint64(i)
				run, err := RunGame(cfg, seed)
				if err != nil {
					errs[i] = fmt.Errorf("game %d with seed %d: %w", i+1, seed, err)
					continue
				}
				games[i] = run.Metric
				log.Info().Msgf("completed game %d of %d with winners %v", i+1, cfg.Games, run.Metric.WinnerIDs)
			}
		}()
	}
	for i := 0; i < cfg.Games; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	log.Info().Msgf("completed batch of %d games", cfg.Games)
	return games, nil
}

// WriteResults stores a batch under dir/name/<timestamp>: csv tables, the raw
// game metrics as JSON lines (zstd when compress is set) and the summary.
func WriteResults(dir, name string, games []metrics.GameMetric, summary Summary, compress bool) (string, error) {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", err
	}

	if err := writer.WriteGameMetrics(games); err != nil {
		return "", fmt.Errorf("failed to store game metrics: %w", err)
	}
	if err := writer.WriteRoundMetrics(games); err != nil {
		return "", fmt.Errorf("failed to store round metrics: %w", err)
	}
	if err := writer.WriteHistogram(summary.Histogram); err != nil {
		return "", fmt.Errorf("failed to store action histogram: %w", err)
	}
	log.Info().Msg("stored csv tables")

	file := "games.jsonl"
	if compress {
		file += ".zst"
	}
	jsonl, err := metrics.NewJSONLWriter(filepath.Join(writer.Dir(), file))
	if err != nil {
		return "", err
	}
	for _, g := range games {
		if err := jsonl.Write(g); err != nil {
			_ = jsonl.Close()
			return "", fmt.Errorf("failed to write game metric: %w", err)
		}
	}
	if err := jsonl.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", file, err)
	}
	log.Info().Msgf("stored %s", file)

	b, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(writer.Dir(), "summary.json"), b, 0644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	log.Info().Msg("stored summary")

	return writer.Dir(), nil
}
